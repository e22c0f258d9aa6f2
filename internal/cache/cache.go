package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/metrics"
)

// Entry is one cached result together with the time it was computed.
type Entry struct {
	Data     json.RawMessage `json:"data"`
	StoredAt time.Time       `json:"storedAt"`
}

// Backend persists cache entries. Implementations must be safe for
// concurrent use.
type Backend interface {
	Load(ctx context.Context, key string) (Entry, bool, error)
	Store(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Cache memoizes derived results for a bounded time.
type Cache struct {
	backend Backend
	metrics *metrics.Metrics
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// WithTTL sets the default freshness window used when Memoize is given ttl <= 0.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New builds a cache over backend. A nil backend selects a MemoryBackend.
func New(backend Backend, opts ...Option) *Cache {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	c := &Cache{backend: backend, ttl: constants.DefaultCacheTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) TTL() time.Duration { return c.ttl }

// Clear drops every entry.
func (c *Cache) Clear(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.backend.Clear(ctx); err != nil {
		logger.Warn("cache clear failed", "error", err)
		return err
	}
	return nil
}

func (c *Cache) fresh(ctx context.Context, key string, ttl time.Duration) (json.RawMessage, bool) {
	entry, ok, err := c.backend.Load(ctx, key)
	if err != nil {
		logger.Warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	if !ok || c.now().Sub(entry.StoredAt) >= ttl {
		return nil, false
	}
	return entry.Data, true
}

// Memoize returns the cached value for key if it is younger than ttl,
// otherwise it runs compute and caches the result. The bool reports a hit.
// Errors from compute are returned and never cached. A nil cache always
// computes. Fresh values pass through the same JSON encoding as cached ones.
func Memoize[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func() (T, error)) (T, bool, error) {
	if c == nil {
		v, err := compute()
		return v, false, err
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	if data, ok := c.fresh(ctx, key, ttl); ok {
		var v T
		err := json.Unmarshal(data, &v)
		if err == nil {
			c.metrics.CacheLookup(true)
			return v, true, nil
		}
		logger.Warn("cache entry undecodable", "key", key, "error", err)
	}
	c.metrics.CacheLookup(false)

	v, err := compute()
	if err != nil {
		return v, false, err
	}
	c.metrics.Recomputed(family(key))

	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache encode failed", "key", key, "error", err)
		return v, false, nil
	}
	entry := Entry{Data: data, StoredAt: c.now()}
	if err := c.backend.Store(ctx, key, entry, ttl); err != nil {
		logger.Warn("cache set failed", "key", key, "error", err)
	}

	// Return what a hit would return.
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		return v, false, nil
	}
	return decoded, false, nil
}

// family strips the per-date suffix so metric labels stay bounded.
func family(key string) string {
	name, _, _ := strings.Cut(key, ":")
	return name
}
