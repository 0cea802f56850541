package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a MemoryStore when no limit is given
const DefaultMaxEntries = 10_000

// MemoryStore keeps entries in a mutex guarded map for a single process.
// When a new key would exceed MaxEntries, expired entries are swept inline and,
// if the map is still full, the entry closest to its reset is evicted
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]Entry
	maxEntries int
}

// NewMemoryStore returns an empty store bounded by maxEntries (<=0 uses DefaultMaxEntries)
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{entries: make(map[string]Entry), maxEntries: maxEntries}
}

// Hit implements Store
func (m *MemoryStore) Hit(_ context.Context, key string, p Policy, now time.Time) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || now.After(e.ResetAt) {
		if !ok {
			m.makeRoom(now)
		}
		e = Entry{Count: 1, ResetAt: now.Add(p.Window)}
		m.entries[key] = e
		return e, true, nil
	}
	if e.Count >= p.Max {
		return e, false, nil
	}
	e.Count++
	m.entries[key] = e
	return e, true, nil
}

// Len reports the number of tracked keys
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// makeRoom must be called with mu held
func (m *MemoryStore) makeRoom(now time.Time) {
	if len(m.entries) < m.maxEntries {
		return
	}
	for k, e := range m.entries {
		if now.After(e.ResetAt) {
			delete(m.entries, k)
		}
	}
	if len(m.entries) < m.maxEntries {
		return
	}

	var (
		victim string
		oldest time.Time
		found  bool
	)
	for k, e := range m.entries {
		if !found || e.ResetAt.Before(oldest) {
			victim, oldest, found = k, e.ResetAt, true
		}
	}
	delete(m.entries, victim)
}
