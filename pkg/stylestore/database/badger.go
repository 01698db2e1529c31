package database

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

// ErrNotFound is joined with apperrors.ErrNotFound when a key is absent.
var ErrNotFound = errors.New("key not found")

const (
	valueLogFileSize = 64 << 20
	numMemtables     = 3
)

// DB is a badger key-value store shared by the badger style medium and the
// event log. Every method runs in its own transaction.
type DB struct {
	db     *badger.DB
	logger logr.Logger
}

func NewDB(path string, logger logr.Logger) (*DB, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("%w: storage create directory: failed to create DB directory at %s: %w", apperrors.ErrStorage, path, err)
	}

	opts := badger.DefaultOptions(path).
		WithLogger(newBadgerLogger(logger)).
		WithValueLogFileSize(valueLogFileSize).
		WithNumMemtables(numMemtables)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: storage open database: failed to open BadgerDB at %s: %w", apperrors.ErrStorage, path, err)
	}

	return &DB{
		db:     db,
		logger: logger,
	}, nil
}

func (d *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: key %s: %w", apperrors.ErrNotFound, key, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: storage get %s: %w", apperrors.ErrStorage, key, err)
	}

	return value, nil
}

// Has reports whether key exists without copying its value.
func (d *DB) Has(key string) (bool, error) {
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: storage has %s: %w", apperrors.ErrStorage, key, err)
	}
	return true, nil
}

func (d *DB) update(operation string, key string, fn func(*badger.Txn) error) error {
	err := d.db.Update(fn)
	if err != nil {
		return fmt.Errorf("%w: storage %s %s: %w", apperrors.ErrStorage, operation, key, err)
	}
	return nil
}

func (d *DB) Set(key string, value []byte) error {
	return d.update("set", key, func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (d *DB) Delete(key string) error {
	return d.update("delete", key, func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (d *DB) List(prefix string) (map[string][]byte, error) {
	results := make(map[string][]byte)
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			results[string(item.KeyCopy(nil))] = value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: storage list %s: %w", apperrors.ErrStorage, prefix, err)
	}
	return results, nil
}

// Keys returns the keys under prefix in lexicographic order without reading values.
func (d *DB) Keys(prefix string) ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: storage keys %s: %w", apperrors.ErrStorage, prefix, err)
	}
	return keys, nil
}

func (d *DB) BatchSet(items map[string][]byte) error {
	txn := d.db.NewTransaction(true)
	defer txn.Discard()

	for key, value := range items {
		if err := txn.Set([]byte(key), value); err != nil {
			return fmt.Errorf("%w: storage batch set %s: %w", apperrors.ErrStorage, key, err)
		}
	}

	if err := txn.Commit(); err != nil {
		return fmt.Errorf("%w: storage batch set commit: %w", apperrors.ErrStorage, err)
	}

	return nil
}

func (d *DB) BatchDelete(keys []string) error {
	txn := d.db.NewTransaction(true)
	defer txn.Discard()

	for _, key := range keys {
		if err := txn.Delete([]byte(key)); err != nil {
			d.logger.V(1).Info("failed to delete key in batch", "key", key, "error", err)
		}
	}

	if err := txn.Commit(); err != nil {
		return fmt.Errorf("%w: storage batch delete commit: %w", apperrors.ErrStorage, err)
	}

	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// NewTestDB creates an in-memory database that is closed when the test ends
func NewTestDB(t testing.TB) (*DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create test DB: %w", err)
	}
	testDB := &DB{db: db, logger: logr.Discard()}
	if t != nil {
		t.Cleanup(func() { testDB.Close() })
	}
	return testDB, nil
}
