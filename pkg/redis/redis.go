// Package redis opens go-redis clients from connection URLs and supplies the
// glue the application layer expects: a ping-based readiness check and a
// ShutdownHook-shaped closer.
package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrEmptyURL    = errors.New("redis: empty connection URL")
	ErrBadURL      = errors.New("redis: invalid connection URL")
	ErrUnreachable = errors.New("redis: server unreachable")
	ErrPingFailed  = errors.New("redis: ping failed")
)

type config struct {
	client   *redis.Options
	attempts int
	interval time.Duration
}

// Option adjusts the connection configuration before dialing.
type Option func(*config)

// WithPoolSize caps the connection pool. When unset go-redis sizes the pool
// from the CPU count.
func WithPoolSize(n int) Option {
	return func(c *config) {
		c.client.PoolSize = n
	}
}

// WithRetry sets how many times Open pings before giving up and the initial
// wait between attempts. The wait doubles after every failure.
// Defaults to 3 attempts starting at 2 seconds.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(c *config) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if interval > 0 {
			c.interval = interval
		}
	}
}

// Open connects to the redis:// or rediss:// URL and verifies the connection
// with a ping before returning. The returned client is ready for use.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	parsed, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadURL, err)
	}

	cfg := &config{client: parsed, attempts: 3, interval: 2 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(cfg.client)
	wait := cfg.interval
	for attempt := 1; ; attempt++ {
		err = client.Ping(ctx).Err()
		if err == nil {
			return client, nil
		}
		if attempt >= cfg.attempts {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, fmt.Errorf("%w: %w", ErrUnreachable, ctx.Err())
		case <-time.After(wait):
			wait *= 2
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
}

// MustOpen is Open that panics on failure. Meant for main, where a missing
// Redis is fatal anyway.
func MustOpen(ctx context.Context, url string, opts ...Option) redis.UniversalClient {
	client, err := Open(ctx, url, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// Healthcheck adapts a client to the readiness-check signature.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrPingFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrPingFailed, err)
		}
		return nil
	}
}

// Shutdown adapts a client (or anything closeable) to the shutdown-hook
// signature used by App.Run.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
