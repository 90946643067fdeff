package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryOption configures the in-memory backend.
type MemoryOption func(*memConfig)

type memConfig struct {
	defaultTTL time.Duration
	sweepEvery time.Duration
}

// WithMemoryDefaultTTL sets the TTL applied when Put is called with zero.
// Defaults to one hour.
func WithMemoryDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memConfig) {
		c.defaultTTL = d
	}
}

// WithSweepInterval sets how often expired entries are swept out in the
// background. Defaults to one minute; zero or negative disables sweeping,
// leaving expiry to lazy checks on access.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(c *memConfig) {
		c.sweepEvery = d
	}
}

type memEntry[V any] struct {
	value   V
	expires time.Time // zero means no expiry
}

func (e memEntry[V]) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// Memory is a map-backed Cache. Expired entries are dropped lazily on access
// and periodically by a background sweep.
type Memory[V any] struct {
	mu         sync.RWMutex
	entries    map[string]memEntry[V]
	defaultTTL time.Duration
	sweepEvery time.Duration
	stop       chan struct{}
	closed     bool
}

// NewMemory creates an in-memory cache. Close it to stop the sweeper.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := &memConfig{defaultTTL: time.Hour, sweepEvery: time.Minute}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Memory[V]{
		entries:    make(map[string]memEntry[V]),
		defaultTTL: cfg.defaultTTL,
		sweepEvery: cfg.sweepEvery,
		stop:       make(chan struct{}),
	}
	if m.sweepEvery > 0 {
		go m.sweeper()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		var zero V
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Put(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.entries[key] = memEntry[V]{value: value, expires: expires}
	return nil
}

func (m *Memory[V]) Forget(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.entries, key)
	return nil
}

func (m *Memory[V]) Has(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (m *Memory[V]) Flush(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	clear(m.entries)
	return nil
}

// Close stops the sweeper. Idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweeper() {
	ticker := time.NewTicker(m.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for key, e := range m.entries {
				if e.expired(now) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

var _ Cache[any] = (*Memory[any])(nil)
