package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	CreatedOn    time.Time
}
