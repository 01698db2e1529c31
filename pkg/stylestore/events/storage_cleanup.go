package events

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

const DefaultBatchSize = 1000

func (s *Storage) CleanupOldEvents(before time.Time) error {
	deletedCount := 0
	beforeTimestamp := before.UnixNano()

	allItems, err := s.db.List(allPrefix)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to list events for cleanup")
	}

	var keysToDelete []string
	corrupt := make(map[string]bool)
	for key, data := range allItems {
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			keysToDelete = append(keysToDelete, key)
			corrupt[strings.TrimPrefix(key, allPrefix)] = true
			continue
		}

		if event.Timestamp.UnixNano() < beforeTimestamp {
			keysToDelete = append(keysToDelete, eventKeys(event)...)
		}
	}

	if len(corrupt) > 0 {
		indexKeys, err := s.corruptIndexKeys(corrupt)
		if err != nil {
			return err
		}
		keysToDelete = append(keysToDelete, indexKeys...)
	}

	for i := 0; i < len(keysToDelete); i += DefaultBatchSize {
		end := i + DefaultBatchSize
		if end > len(keysToDelete) {
			end = len(keysToDelete)
		}

		batch := keysToDelete[i:end]
		if err := s.db.BatchDelete(batch); err != nil {
			s.logger.Error(err, "failed to batch delete events", "count", len(batch))

			for _, key := range batch {
				if err := s.db.Delete(key); err != nil {
					s.logger.V(1).Info("failed to delete event key", "key", key, "error", err)
				} else {
					deletedCount++
				}
			}
			continue
		}
		deletedCount += len(batch)
	}

	s.logger.Info("Cleaned up old events", "deletedKeys", deletedCount, "before", before)
	return nil
}

// corruptIndexKeys finds the index entries of primary records that no longer
// unmarshal. Their type name and kind are unknown, so both index prefixes are
// scanned for the shared <timestamp>/<id> suffix.
func (s *Storage) corruptIndexKeys(suffixes map[string]bool) ([]string, error) {
	var keys []string
	for _, prefix := range []string{byStylePrefix, byTypePrefix} {
		indexKeys, err := s.db.Keys(prefix)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to list event index for cleanup")
		}
		for _, key := range indexKeys {
			if suffixes[indexSuffix(key)] {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

// indexSuffix returns the last two segments of an index key.
func indexSuffix(key string) string {
	last := strings.LastIndex(key, "/")
	if last <= 0 {
		return ""
	}
	prev := strings.LastIndex(key[:last], "/")
	return key[prev+1:]
}
