package events

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/garunski/stylestore/pkg/stylestore/database"
	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

const (
	allPrefix     = "events/all/"
	byStylePrefix = "events/by-style/"
	byTypePrefix  = "events/by-type/"
	DefaultLimit  = 100
)

type Storage struct {
	db     *database.DB
	logger logr.Logger
}

func NewStorage(db *database.DB, logger logr.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

func eventSuffix(event Event) string {
	return fmt.Sprintf("%020d/%s", event.Timestamp.UnixNano(), event.ID)
}

// eventKeys returns the primary key followed by the index keys of event.
func eventKeys(event Event) []string {
	suffix := eventSuffix(event)
	keys := []string{allPrefix + suffix}
	if event.TypeName != "" {
		keys = append(keys, byStylePrefix+event.TypeName+"/"+suffix)
	}
	keys = append(keys, byTypePrefix+string(event.Type)+"/"+suffix)
	return keys
}

// StoreEvent writes the event and its index entries in one transaction.
func (s *Storage) StoreEvent(event Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %w", apperrors.ErrEventStore, err)
	}

	items := make(map[string][]byte, 3)
	for _, key := range eventKeys(event) {
		items[key] = data
	}
	if err := s.db.BatchSet(items); err != nil {
		return fmt.Errorf("%w: failed to store event: %w", apperrors.ErrEventStore, err)
	}
	return nil
}

func (s *Storage) ListEvents(filters EventFilters) ([]Event, error) {
	var prefix string

	if filters.TypeName != "" {
		prefix = byStylePrefix + filters.TypeName + "/"
	} else if filters.Type != "" {
		prefix = byTypePrefix + string(filters.Type) + "/"
	} else {
		prefix = allPrefix
	}

	allItems, err := s.db.List(prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list events: %w", apperrors.ErrEventStore, err)
	}

	var events []Event
	for key, data := range allItems {
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			s.logger.Error(err, "failed to unmarshal event", "key", key)
			continue
		}

		if filters.TypeName != "" && event.TypeName != filters.TypeName {
			continue
		}
		if filters.Type != "" && event.Type != filters.Type {
			continue
		}
		if !filters.Since.IsZero() && event.Timestamp.Before(filters.Since) {
			continue
		}
		if !filters.Until.IsZero() && event.Timestamp.After(filters.Until) {
			continue
		}

		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(events) {
		return []Event{}, nil
	}
	if offset > 0 {
		events = events[offset:]
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

func (s *Storage) GetEventsByTypeName(typeName string, limit int) ([]Event, error) {
	return s.ListEvents(EventFilters{
		TypeName: typeName,
		Limit:    limit,
	})
}

func (s *Storage) GetRecentErrors(limit int) ([]Event, error) {
	return s.ListEvents(EventFilters{
		Type:  EventTypeError,
		Limit: limit,
	})
}
