package events

import "time"

type EventType string

const (
	EventTypeStored  EventType = "stored"
	EventTypeRemoved EventType = "removed"
	EventTypeError   EventType = "error"
	EventTypeInfo    EventType = "info"
)

type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Type      EventType              `json:"type"`
	TypeName  string                 `json:"typeName,omitempty"`
	Operation string                 `json:"operation,omitempty"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type EventFilters struct {
	TypeName string
	Type     EventType
	Since    time.Time
	Until    time.Time
	Limit    int
	Offset   int
}
