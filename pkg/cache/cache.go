// Package cache provides a typed key-value cache with TTL semantics, an
// in-memory backend for tests and single-process deployments, and a Redis
// backend for everything else. Remember layers stampede protection on top of
// any backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound  = errors.New("cache: entry not found")
	ErrClosed    = errors.New("cache: closed")
	ErrMarshal   = errors.New("cache: marshal failed")
	ErrUnmarshal = errors.New("cache: unmarshal failed")
)

// Cache stores values of one type under string keys.
//
// Put interprets ttl as: positive expires after that duration, zero falls
// back to the backend's default, negative never expires.
type Cache[V any] interface {
	// Get returns the value under key, or ErrNotFound when the key is
	// missing or expired.
	Get(ctx context.Context, key string) (V, error)

	// Put stores value under key with the given TTL.
	Put(ctx context.Context, key string, value V, ttl time.Duration) error

	// Forget removes key. Removing a missing key is not an error.
	Forget(ctx context.Context, key string) error

	// Has reports whether key holds an unexpired value.
	Has(ctx context.Context, key string) (bool, error)

	// Flush drops every entry the cache owns.
	Flush(ctx context.Context) error

	// Close releases backend resources. The cache is unusable afterwards.
	Close() error
}

// Marshaler converts values to and from the byte representation a remote
// backend stores. Pass nil to NewRedis to get JSON.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonCodec[V any] struct{}

func (jsonCodec[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	return data, nil
}

func (jsonCodec[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrUnmarshal, err)
	}
	return v, nil
}

// flights deduplicates concurrent Remember fills by key.
var flights singleflight.Group

// Remember returns the cached value under key, computing and storing it via
// fn on a miss. Concurrent callers missing on the same key share a single fn
// call. fn returns the value and the TTL to cache it with; an error from fn
// is returned without caching anything.
func Remember[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	type filled struct {
		value V
		ttl   time.Duration
	}

	v, err, _ := flights.Do(key, func() (any, error) {
		value, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return filled{value: value, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	f := v.(filled)
	// The fill result is served even if storing it fails; the next miss
	// recomputes.
	_ = c.Put(ctx, key, f.value, f.ttl)
	return f.value, nil
}
