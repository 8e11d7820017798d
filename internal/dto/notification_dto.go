package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationTaskAssigned  NotificationKind = "task_assigned"
	NotificationTaskUpdated   NotificationKind = "task_updated"
	NotificationTaskCompleted NotificationKind = "task_completed"
)

// NotificationMessage is the payload carried on the in-process notification
// topic. The consumer resolves RecipientId to an email address on its side.
type NotificationMessage struct {
	Kind          NotificationKind `json:"kind"`
	RecipientId   uuid.UUID        `json:"recipientId"`
	TaskId        uuid.UUID        `json:"taskId"`
	TaskTitle     string           `json:"taskTitle"`
	ActorName     string           `json:"actorName"`
	CreatedOn     time.Time        `json:"createdOn"`
	CompletedTime *time.Time       `json:"completedTime,omitempty"`
}
