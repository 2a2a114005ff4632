package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe map whose entries expire after a TTL.
type Cache[K comparable, V any] struct {
	items map[K]entry[V]
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time

	stop chan struct{}
	once sync.Once
}

// New creates a cache with the given TTL and starts the background sweep.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	c := newCache[K, V](ttl, time.Now)
	go c.cleanup(c.sweepInterval())
	return c
}

func newCache[K comparable, V any](ttl time.Duration, now func() time.Time) *Cache[K, V] {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache[K, V]{
		items: make(map[K]entry[V]),
		ttl:   ttl,
		now:   now,
		stop:  make(chan struct{}),
	}
}

// sweepInterval is half the effective TTL.
func (c *Cache[K, V]) sweepInterval() time.Duration {
	return c.ttl / 2
}

// Get returns the value for key if present and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// SetIfAbsent stores value unless a live entry exists. It reports whether it stored.
func (c *Cache[K, V]) SetIfAbsent(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if e, ok := c.items[key]; ok && now.Before(e.expiresAt) {
		return false
	}
	c.items[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
	return true
}

// Delete removes key.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len returns the number of entries, expired ones included until the next sweep.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the background sweep. Safe to call more than once.
func (c *Cache[K, V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache[K, V]) cleanup(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

// removeExpired drops expired entries and returns how many were removed.
func (c *Cache[K, V]) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}
