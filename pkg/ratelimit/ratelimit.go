// Package ratelimit is the counting store behind the sensitive-endpoint
// limiter. The store is injected rather than being a module-level map, so a
// multi-process deployment can swap in a shared implementation. The bundled
// MemoryStore is per-process.
package ratelimit

import (
	"sync"
	"time"
)

// Store counts hits per key inside a rolling window. Incr returns the count
// including the current hit and the instant the window resets.
type Store interface {
	Incr(key string, window time.Duration) (count int, reset time.Time)
}

type entry struct {
	count int
	reset time.Time
}

// MemoryStore keeps counters in process memory. Expired entries are reaped
// lazily on access, so there is no background goroutine to manage.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*entry), now: time.Now}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Incr(key string, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || !now.Before(e.reset) {
		e = &entry{reset: now.Add(window)}
		s.entries[key] = e
	}
	e.count++

	// Opportunistic reaping keeps the map from accumulating dead keys.
	if len(s.entries) > 1024 {
		for k, v := range s.entries {
			if !now.Before(v.reset) {
				delete(s.entries, k)
			}
		}
	}
	return e.count, e.reset
}
