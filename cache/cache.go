package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilFetcher = errors.New("cache: fetcher is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Store is the interface for the key-to-entry mapping behind the client.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines where applicable.
// - Errors: Get should never error; it returns (Entry{}, false) on miss.
// - Ownership: the store belongs to the surrounding UI context. The client
//   never owns its lifecycle and tolerates a nil Store everywhere.
type Store interface {
	// Get retrieves a cached entry. Returns (Entry{}, false) on miss.
	Get(ctx context.Context, key string) (Entry, bool)

	// Set stores an entry with the given TTL. TTL=0 means no expiry.
	Set(ctx context.Context, key string, e Entry, ttl time.Duration) error

	// Delete removes a cached entry. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every entry whose key starts with prefix and
	// reports how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Range calls fn for each live entry until fn returns false. Iteration
	// order is unspecified; fn may mutate the store.
	Range(ctx context.Context, fn func(key string, e Entry) bool)

	// Len reports the number of entries, including any not yet expired.
	Len() int
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
