package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-logr/logr"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/events"
	"github.com/garunski/stylestore/pkg/stylestore/location"
	"github.com/garunski/stylestore/pkg/stylestore/medium"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

type Store struct {
	resolver   location.Resolver
	codec      style.Codec
	medium     medium.Medium
	eventStore events.EventStorage
	locks      *keyLocks
	logger     logr.Logger
}

type Option func(*Store)

// WithEventStore records an event for every store, remove and failure.
func WithEventStore(eventStore events.EventStorage) Option {
	return func(s *Store) {
		s.eventStore = eventStore
	}
}

func New(resolver location.Resolver, codec style.Codec, m medium.Medium, logger logr.Logger, opts ...Option) *Store {
	s := &Store{
		resolver: resolver,
		codec:    codec,
		medium:   m,
		locks:    newKeyLocks(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) HasStyle(typeName string) (bool, error) {
	loc, err := s.resolver.Resolve(typeName)
	if err != nil {
		return false, err
	}

	unlock := s.locks.RLock(loc)
	defer unlock()

	exists, err := s.medium.Exists(loc)
	if err != nil {
		s.fail(typeName, "has", err)
		return false, storageError(err, "check style %q", typeName)
	}
	return exists, nil
}

func (s *Store) GetStyle(typeName string) (*style.Style, error) {
	loc, err := s.resolver.Resolve(typeName)
	if err != nil {
		return nil, err
	}

	data, err := s.read(loc)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: style %q: %w", apperrors.ErrNotFound, typeName, err)
		}
		s.fail(typeName, "get", err)
		return nil, storageError(err, "read style %q", typeName)
	}

	st, err := s.codec.Decode(data)
	if err != nil {
		s.fail(typeName, "decode", err)
		return nil, fmt.Errorf("style %q at %s: %w", typeName, loc, err)
	}
	return st, nil
}

func (s *Store) read(loc string) ([]byte, error) {
	unlock := s.locks.RLock(loc)
	defer unlock()
	return s.medium.Read(loc)
}

func (s *Store) RemoveStyle(typeName string) error {
	loc, err := s.resolver.Resolve(typeName)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(loc)
	defer unlock()

	if err := s.medium.Remove(loc); err != nil {
		s.fail(typeName, "remove", err)
		return storageError(err, "remove style %q", typeName)
	}

	s.logger.V(1).Info("removed style", "typeName", typeName, "location", loc)
	events.StoreEventSafe(s.eventStore, s.logger, events.Removed(typeName, loc))
	return nil
}

func (s *Store) StoreStyle(typeName string, st *style.Style) error {
	loc, err := s.resolver.Resolve(typeName)
	if err != nil {
		return err
	}

	data, err := s.codec.Encode(st)
	if err != nil {
		s.fail(typeName, "encode", err)
		return fmt.Errorf("style %q: %w", typeName, err)
	}

	unlock := s.locks.Lock(loc)
	defer unlock()

	if err := s.medium.Replace(loc, data); err != nil {
		s.fail(typeName, "store", err)
		return storageError(err, "store style %q", typeName)
	}

	s.logger.V(1).Info("stored style", "typeName", typeName, "location", loc, "bytes", len(data))
	events.StoreEventSafe(s.eventStore, s.logger, events.Stored(typeName, loc))
	return nil
}

// ListStyles returns the sorted type names that currently have a style. It
// needs a medium that can enumerate records and a resolver that can map a
// location back to its type name.
func (s *Store) ListStyles() ([]string, error) {
	lister, ok := s.medium.(medium.Lister)
	if !ok {
		return nil, fmt.Errorf("%w: medium %T cannot list styles", apperrors.ErrUnsupported, s.medium)
	}
	reverser, ok := s.resolver.(location.Reverser)
	if !ok {
		return nil, fmt.Errorf("%w: resolver %T cannot map locations to type names", apperrors.ErrUnsupported, s.resolver)
	}

	locs, err := lister.List()
	if err != nil {
		return nil, storageError(err, "list styles")
	}

	names := make([]string, 0, len(locs))
	for _, loc := range locs {
		if name, ok := reverser.TypeName(loc); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close releases the medium if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.medium.(medium.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) fail(typeName, operation string, err error) {
	s.logger.Error(err, "style operation failed", "typeName", typeName, "operation", operation)
	events.StoreEventSafe(s.eventStore, s.logger, events.Failed(typeName, operation, err))
}

// storageError keeps media errors that already carry the storage kind and
// tags anything else with it.
func storageError(err error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, apperrors.ErrStorage) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorage, msg, err)
}
