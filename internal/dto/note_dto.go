package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Tags          []string    `json:"tags"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	IsComplete    bool        `json:"isComplete"`
	AssignedUsers []uuid.UUID `json:"assignedUsers"`
}

// UpdateNoteRequest uses pointer fields so absent keys leave the stored
// value untouched.
type UpdateNoteRequest struct {
	Id            uuid.UUID    `json:"-"`
	Title         *string      `json:"title"`
	Content       *string      `json:"content"`
	Tags          *[]string    `json:"tags"`
	IsPinned      *bool        `json:"isPinned"`
	IsComplete    *bool        `json:"isComplete"`
	Status        *string      `json:"status"`
	Priority      *string      `json:"priority"`
	AssignedUsers *[]uuid.UUID `json:"assignedUsers"`
}

func (r *UpdateNoteRequest) HasChanges() bool {
	return r.Title != nil || r.Content != nil || r.Tags != nil ||
		r.IsPinned != nil || r.IsComplete != nil || r.Status != nil ||
		r.Priority != nil || r.AssignedUsers != nil
}

type UpdateNotePinnedRequest struct {
	IsPinned *bool `json:"isPinned" validate:"required"`
}

type NoteResponse struct {
	Id            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Tags          []string           `json:"tags"`
	IsPinned      bool               `json:"isPinned"`
	IsComplete    bool               `json:"isComplete"`
	Status        string             `json:"status"`
	Priority      string             `json:"priority"`
	AssignedUsers []DirectoryUserDTO `json:"assignedUsers"`
	CreatedOn     time.Time          `json:"createdOn"`
	CompletedTime *time.Time         `json:"completedTime"`
}
