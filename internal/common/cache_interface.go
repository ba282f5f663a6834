package common

import (
	"context"
	"time"
)

// CacheInterface defines the contract for cache implementations. Values are
// stored as JSON so the in-memory and Redis backends behave the same way.
type CacheInterface interface {
	// Set stores value under key for ttl. A zero ttl uses the default expiry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// GetJSON decodes the value under key into dest.
	// Returns false with a nil error when the key is absent.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
