package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lgzarturo/bootzen/pkg/cache"
	"github.com/lgzarturo/bootzen/pkg/redis"
)

// openRedisCache skips the test unless TEST_REDIS_URL points at a reachable
// server, so the suite stays green without infrastructure.
func openRedisCache[V any](t *testing.T, opts ...cache.RedisOption) *cache.Redis[V] {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	client, err := redis.Open(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedis[V](client, nil, opts...)
}

func TestRedis_RoundTrip(t *testing.T) {
	t.Parallel()

	type note struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}

	ctx := context.Background()
	c := openRedisCache[note](t, cache.WithPrefix("cachetest:roundtrip"))
	defer func() { _ = c.Flush(ctx) }()

	want := note{Title: "t", Body: "b"}
	require.NoError(t, c.Put(ctx, "n1", want, time.Minute))

	got, err := c.Get(ctx, "n1")
	require.NoError(t, err)
	require.Equal(t, want, got)

	ok, err := c.Has(ctx, "n1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Forget(ctx, "n1"))
	_, err = c.Get(ctx, "n1")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestRedis_TTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := openRedisCache[string](t, cache.WithPrefix("cachetest:ttl"))
	defer func() { _ = c.Flush(ctx) }()

	require.NoError(t, c.Put(ctx, "blip", "x", 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	_, err := c.Get(ctx, "blip")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestRedis_FlushScopedToPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mine := openRedisCache[string](t, cache.WithPrefix("cachetest:mine"))
	other := openRedisCache[string](t, cache.WithPrefix("cachetest:other"))
	defer func() { _ = other.Flush(ctx) }()

	require.NoError(t, mine.Put(ctx, "k", "v", time.Minute))
	require.NoError(t, other.Put(ctx, "k", "v", time.Minute))

	require.NoError(t, mine.Flush(ctx))

	_, err := mine.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrNotFound)

	v, err := other.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}
