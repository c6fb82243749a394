package cache

import (
	"context"
	"time"
)

// Cache is a generic key-value cache with TTL support.
type Cache[V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Take retrieves and removes a value in one step. Of concurrent callers
	// for the same key, at most one receives the value.
	// Returns ErrNotFound if the key does not exist or has expired.
	Take(ctx context.Context, key string) (V, error)

	// Close releases resources (stops background goroutines, etc.).
	Close() error
}

// flightGrouper is implemented by caches that deduplicate concurrent misses.
type flightGrouper[V any] interface {
	do(key string, fn func() (V, time.Duration, error)) (V, time.Duration, error)
}

// GetOrSet retrieves a value from the cache, or calls fn to compute it on a miss.
// When c is a *Memory, concurrent misses for the same key call fn only once.
//
// If fn returns an error, nothing is cached and the error is returned as is.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	load := func() (V, time.Duration, error) { return fn(ctx) }

	var (
		val V
		ttl time.Duration
		err error
	)
	if g, ok := c.(flightGrouper[V]); ok {
		val, ttl, err = g.do(key, load)
	} else {
		val, ttl, err = load()
	}
	if err != nil {
		var zero V
		return zero, err
	}

	// Best-effort: a closed cache still returns the computed value.
	_ = c.Set(ctx, key, val, ttl)

	return val, nil
}
