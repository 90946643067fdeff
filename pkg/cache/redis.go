package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures the Redis backend.
type RedisOption func(*redisConfig)

type redisConfig struct {
	prefix     string
	defaultTTL time.Duration
}

// WithPrefix namespaces every key as "prefix:key", so multiple caches can
// share one Redis database. Flush then only touches the namespace.
func WithPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.prefix = prefix
	}
}

// WithRedisDefaultTTL sets the TTL applied when Put is called with zero.
// Defaults to one hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(c *redisConfig) {
		c.defaultTTL = d
	}
}

// Redis is a Cache stored in a Redis database. Values pass through the
// configured Marshaler; the zero Marshaler is JSON.
type Redis[V any] struct {
	client redis.UniversalClient
	codec  Marshaler[V]
	cfg    redisConfig
}

// NewRedis wraps client in a typed cache. A nil marshaler selects JSON.
// The client's lifecycle belongs to the caller; Close on the cache does not
// close it.
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	cfg := redisConfig{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}
	if m == nil {
		m = jsonCodec[V]{}
	}
	return &Redis[V]{client: client, codec: m, cfg: cfg}
}

func (r *Redis[V]) key(k string) string {
	if r.cfg.prefix == "" {
		return k
	}
	return r.cfg.prefix + ":" + k
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return r.codec.Unmarshal(data)
}

func (r *Redis[V]) Put(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.codec.Marshal(value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.cfg.defaultTTL
	}
	if ttl < 0 {
		// Negative means keep forever, which Redis spells as zero.
		ttl = 0
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

func (r *Redis[V]) Forget(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *Redis[V]) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	return n > 0, err
}

// Flush removes the cache's keys. With a prefix it walks the namespace with
// SCAN, which does not block the server; without one it flushes the whole
// database.
func (r *Redis[V]) Flush(ctx context.Context) error {
	if r.cfg.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.cfg.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op; see NewRedis.
func (r *Redis[V]) Close() error {
	return nil
}

var _ Cache[any] = (*Redis[any])(nil)
