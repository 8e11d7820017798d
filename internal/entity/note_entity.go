package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string
type TaskPriority string

const (
	StatusTodo       TaskStatus = "To-Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusReview     TaskStatus = "Review"
	StatusComplete   TaskStatus = "Complete"

	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func ParseStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusReview, StatusComplete:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func ParsePriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return TaskPriority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Rank orders priorities for the board: High sorts first.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Note struct {
	Id            uuid.UUID
	Title         string
	Content       string
	Tags          []string
	IsPinned      bool
	IsComplete    bool
	Status        TaskStatus
	Priority      TaskPriority
	AssignedUsers []uuid.UUID
	UserId        uuid.UUID
	CreatedOn     time.Time
	CompletedTime *time.Time
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Tags = append([]string(nil), n.Tags...)
	cp.AssignedUsers = append([]uuid.UUID(nil), n.AssignedUsers...)
	if n.CompletedTime != nil {
		t := *n.CompletedTime
		cp.CompletedTime = &t
	}
	return &cp
}
