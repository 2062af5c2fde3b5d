package cache

import (
	"context"
	"time"
)

// Cache stores JSON-serialisable values with a TTL. Implementations are
// safe for concurrent use.
type Cache interface {
	// Get decodes the value under key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Close() error
}
