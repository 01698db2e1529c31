package events

import "time"

// EventStorage records what happened to styles. It is an operation log, not a
// history: events never carry style content.
type EventStorage interface {
	// StoreEvent stores a single event
	StoreEvent(event Event) error

	// ListEvents lists events matching the provided filters, newest first
	ListEvents(filters EventFilters) ([]Event, error)

	// GetEventsByTypeName retrieves events for one feature type
	GetEventsByTypeName(typeName string, limit int) ([]Event, error)

	// GetRecentErrors retrieves recent error events
	GetRecentErrors(limit int) ([]Event, error)

	// CleanupOldEvents removes events older than the specified time
	CleanupOldEvents(before time.Time) error
}

// Ensure *Storage implements EventStorage interface
var _ EventStorage = (*Storage)(nil)
