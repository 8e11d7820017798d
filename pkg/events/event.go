package events

import "time"

// Event is the contract for every lifecycle event put on the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TASK_ASSIGNED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain value implementation of Event.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Task lifecycle event codes published on the bus.
const (
	TaskAssigned  = "TASK_ASSIGNED"
	TaskCompleted = "TASK_COMPLETED"
	TaskDeleted   = "TASK_DELETED"
)

// NewTaskEvent builds a lifecycle event stamped with the current time.
func NewTaskEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
