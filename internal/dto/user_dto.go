package dto

import "github.com/google/uuid"

// DirectoryUserDTO is the slim shape the assignee picker consumes.
type DirectoryUserDTO struct {
	Id       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
}
