// Package cache provides the small key/value cache used for read-heavy
// reference data.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrKeyNotFound is returned by Get when the key is absent or expired.
	ErrKeyNotFound = errors.New("cache key not found")

	// ErrCacheUnavailable is returned when the backend cannot be reached.
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// Cache is a byte-oriented cache with per-entry TTLs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Noop is a Cache that stores nothing. Used when caching is disabled so
// callers never branch on a nil cache.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, error) { return nil, ErrKeyNotFound }

func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error { return nil }

func (Noop) Delete(ctx context.Context, key string) error { return nil }

func (Noop) Close() error { return nil }

var _ Cache = Noop{}
