package store

import "sync"

type keyLock struct {
	mu   sync.RWMutex
	refs int
}

// keyLocks hands out one RWMutex per location. Entries live only while some
// caller holds or waits on them.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (k *keyLocks) acquire(key string) *keyLock {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	return l
}

func (k *keyLocks) release(key string, l *keyLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// Lock takes the write lock for key and returns its release function.
func (k *keyLocks) Lock(key string) func() {
	l := k.acquire(key)
	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.release(key, l)
	}
}

// RLock takes the read lock for key and returns its release function.
func (k *keyLocks) RLock(key string) func() {
	l := k.acquire(key)
	l.mu.RLock()
	return func() {
		l.mu.RUnlock()
		k.release(key, l)
	}
}

func (k *keyLocks) len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
