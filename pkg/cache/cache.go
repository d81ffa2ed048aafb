// Package cache provides byte-level caching backends for API responses.
//
// # Backends
//
//   - [FileCache]: one JSON file per key under a directory (CLI default)
//   - [RedisCache]: shared cache for several machines or processes
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: caches nothing (--no-cache, tests)
//
// Keys are built with a [Keyer] so every backend sees the same key layout.
//
// # Retry
//
// [Retry] runs a fetch with exponential backoff, retrying only errors marked
// with [Retryable]. Clients decide the attempt count; one attempt means no
// retry at all.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use because page
// fetches hit the cache from several goroutines at once.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
