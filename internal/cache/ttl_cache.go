package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a read-through lookup cache keyed by principal id or similar.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache stores values in memory for a fixed TTL and holds at most maxEntries.
// Expired entries are dropped on read and by Sweep. When a Set would exceed
// maxEntries, expired entries go first, then the entry closest to expiry.
type TTLCache[K comparable, V any] struct {
	mu         sync.Mutex
	items      map[K]cacheEntry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// Option configures a TTLCache
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewTTLCache constructs a TTLCache. maxEntries <= 0 means unbounded.
func NewTTLCache[K comparable, V any](ttl time.Duration, maxEntries int, opts ...Option) *TTLCache[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTLCache[K, V]{
		items:      make(map[K]cacheEntry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        o.now,
	}
}

// Get returns a cached value if it exists and has not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return entry.value, true
}

// Set stores a value for the cache TTL.
func (c *TTLCache[K, V]) Set(key K, value V) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		c.sweepLocked(now)
		for len(c.items) >= c.maxEntries {
			c.evictSoonestLocked()
		}
	}
	c.items[key] = cacheEntry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

// Delete removes a cached entry.
func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Sweep drops every expired entry and returns how many were removed.
func (c *TTLCache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

func (c *TTLCache[K, V]) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

func (c *TTLCache[K, V]) evictSoonestLocked() {
	var (
		victim  K
		soonest time.Time
		found   bool
	)
	for k, e := range c.items {
		if !found || e.expiresAt.Before(soonest) {
			victim, soonest, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(c.items, victim)
	}
}

// Run sweeps every interval until ctx is done.
func (c *TTLCache[K, V]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// NoopCache always returns cache misses and ignores writes.
type NoopCache[K comparable, V any] struct{}

// Get always returns a miss.
func (NoopCache[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

// Set is a no-op.
func (NoopCache[K, V]) Set(key K, value V) {}

// Delete is a no-op.
func (NoopCache[K, V]) Delete(key K) {}
