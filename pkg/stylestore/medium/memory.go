package medium

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

// Memory is an ephemeral medium. Values are copied on the way in and out so
// callers can never alias stored bytes.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[string][]byte),
	}
}

func (m *Memory) Exists(location string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[location]
	return ok, nil
}

func (m *Memory) Read(location string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.records[location]
	if !ok {
		return nil, fmt.Errorf("%w: memory read %s", apperrors.ErrNotFound, location)
	}

	return copyBytes(val), nil
}

func (m *Memory) Replace(location string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[location] = copyBytes(data)
	return nil
}

func (m *Memory) Remove(location string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, location)
	return nil
}

func (m *Memory) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locations := make([]string, 0, len(m.records))
	for k := range m.records {
		locations = append(locations, k)
	}
	sort.Strings(locations)
	return locations, nil
}

var (
	_ Medium = (*Memory)(nil)
	_ Lister = (*Memory)(nil)
)
