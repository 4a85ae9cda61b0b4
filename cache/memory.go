package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*storedEntry
}

type storedEntry struct {
	entry     Entry
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*storedEntry),
	}
}

// Get retrieves an entry. Returns (Entry{}, false) on miss or expiry.
func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool) {
	s.mu.RLock()
	se, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return Entry{}, false
	}

	if se.expired(time.Now()) {
		// Expired - clean up lazily
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return Entry{}, false
	}

	return se.entry, true
}

// Set stores an entry. TTL=0 means the entry lives until cleared, which is
// the session-lifetime default for a UI cache.
func (s *MemoryStore) Set(_ context.Context, key string, e Entry, ttl time.Duration) error {
	se := &storedEntry{entry: e}
	if ttl > 0 {
		se.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = se
	s.mu.Unlock()

	return nil
}

// Delete removes an entry. Idempotent - no error on miss.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// DeletePrefix removes every entry whose key starts with prefix.
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Clear swaps in a fresh empty map, atomically dropping every entry.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]*storedEntry)
	s.mu.Unlock()
	return nil
}

// Range calls fn for each live entry until fn returns false. It iterates a
// snapshot taken under the read lock, so fn is free to call Set or Delete.
func (s *MemoryStore) Range(_ context.Context, fn func(key string, e Entry) bool) {
	now := time.Now()

	s.mu.RLock()
	snapshot := make(map[string]Entry, len(s.entries))
	for key, se := range s.entries {
		if se.expired(now) {
			continue
		}
		snapshot[key] = se.entry
	}
	s.mu.RUnlock()

	for key, e := range snapshot {
		if !fn(key, e) {
			return
		}
	}
}

// Len reports the number of entries currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (se *storedEntry) expired(now time.Time) bool {
	return !se.expiresAt.IsZero() && now.After(se.expiresAt)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
