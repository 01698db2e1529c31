package events

import "github.com/go-logr/logr"

// StoreEventSafe records event if storage is configured. A failure to record
// is logged and otherwise ignored.
func StoreEventSafe(storage EventStorage, logger logr.Logger, event Event) {
	if storage == nil {
		return
	}
	if err := storage.StoreEvent(event); err != nil {
		logger.V(1).Info("failed to store event",
			"error", err,
			"type", event.Type,
			"typeName", event.TypeName,
			"message", event.Message)
	}
}
