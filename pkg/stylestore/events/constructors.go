package events

import "time"

func Stored(typeName, location string) Event {
	return Event{
		Type:      EventTypeStored,
		TypeName:  typeName,
		Operation: "store",
		Message:   "style stored",
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"location": location,
		},
	}
}

func Removed(typeName, location string) Event {
	return Event{
		Type:      EventTypeRemoved,
		TypeName:  typeName,
		Operation: "remove",
		Message:   "style removed",
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"location": location,
		},
	}
}

func Failed(typeName, operation string, err error) Event {
	event := Event{
		Type:      EventTypeError,
		TypeName:  typeName,
		Operation: operation,
		Message:   operation + " failed",
		Timestamp: time.Now(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	return event
}

func Info(typeName, operation, message string) Event {
	return Event{
		Type:      EventTypeInfo,
		TypeName:  typeName,
		Operation: operation,
		Message:   message,
		Timestamp: time.Now(),
	}
}
