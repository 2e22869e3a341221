package cache

import (
	"context"
	"time"
)

// Cache is the contract of the read cache in front of the ranking and listing queries.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found = false on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Incr atomically adds one to the integer at key (missing = 0) and returns the result.
	Incr(ctx context.Context, key string) (int64, error)

	// DeletePattern removes every key matching a glob pattern (e.g. "bookrank:g3:*").
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
