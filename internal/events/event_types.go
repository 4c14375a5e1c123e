package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContentChanged EventType = "content_changed"
	EventNeedSubmitted  EventType = "need_submitted"
)

// Action names the mutation that produced a content change.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Resource  string      `json:"resource"`
	Key       string      `json:"key"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContentChangedPayload describes a mutation on a managed entity.
type ContentChangedPayload struct {
	Action Action `json:"action"`
}

// NeedSubmittedPayload carries contact details for a submitted need.
type NeedSubmittedPayload struct {
	Title   string `json:"title"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}
