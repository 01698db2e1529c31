package medium

import (
	"github.com/garunski/stylestore/pkg/stylestore/database"
)

// Badger stores records as keys in a badger database. Every call is a single
// badger transaction, which makes Replace atomic.
type Badger struct {
	db     *database.DB
	prefix string
}

// NewBadger wraps db. prefix bounds List and should match the key resolver's
// prefix so records never collide with other data in the same database.
func NewBadger(db *database.DB, prefix string) *Badger {
	return &Badger{db: db, prefix: prefix}
}

func (b *Badger) Exists(location string) (bool, error) {
	return b.db.Has(location)
}

func (b *Badger) Read(location string) ([]byte, error) {
	return b.db.Get(location)
}

func (b *Badger) Replace(location string, data []byte) error {
	return b.db.Set(location, data)
}

func (b *Badger) Remove(location string) error {
	return b.db.Delete(location)
}

func (b *Badger) List() ([]string, error) {
	return b.db.Keys(b.prefix)
}

var (
	_ Medium = (*Badger)(nil)
	_ Lister = (*Badger)(nil)
)
