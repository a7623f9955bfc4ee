package locking

import (
	"sync"
	"time"
)

// KeyedLock serialises mutating operations per entity key (mission id,
// employee matricule, vehicle/driver id) when the backing store alone is not
// enough to order them. Acquisition waits at most the configured bound so
// contended callers can fail fast and retry with backoff.
type KeyedLock struct {
	mu      sync.Mutex
	entries map[string]*entry
	wait    time.Duration
}

type entry struct {
	ch   chan struct{}
	refs int
}

// New builds a keyed lock with the provided maximum wait per acquisition.
func New(wait time.Duration) *KeyedLock {
	if wait <= 0 {
		wait = 2 * time.Second
	}
	return &KeyedLock{
		entries: make(map[string]*entry),
		wait:    wait,
	}
}

// Acquire takes the lock for key, waiting up to the configured bound.
// It returns false when the wait expired, leaving the lock untouched.
func (l *KeyedLock) Acquire(key string) bool {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case e.ch <- struct{}{}:
		return true
	case <-timer.C:
		l.release(key, false)
		return false
	}
}

// AcquireAll takes locks for every key in order, releasing everything already
// held when any single acquisition times out. Keys must be pre-sorted by the
// caller when multiple entity classes are involved, keeping lock order stable.
func (l *KeyedLock) AcquireAll(keys []string) bool {
	for i, key := range keys {
		if !l.Acquire(key) {
			for j := 0; j < i; j++ {
				l.Release(keys[j])
			}
			return false
		}
	}
	return true
}

// Release frees the lock for key.
func (l *KeyedLock) Release(key string) {
	l.release(key, true)
}

// ReleaseAll frees locks in reverse acquisition order.
func (l *KeyedLock) ReleaseAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.Release(keys[i])
	}
}

func (l *KeyedLock) release(key string, held bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return
	}
	if held {
		select {
		case <-e.ch:
		default:
		}
	}
	e.refs--
	if e.refs <= 0 {
		delete(l.entries, key)
	}
}
