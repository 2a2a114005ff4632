package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestCache_Expiry(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	c := newCache[string, int](10*time.Second, clk.now)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	clk.advance(9 * time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)

	clk.advance(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, 1, c.removeExpired())
	assert.Equal(t, 0, c.Len())
}

func TestCache_SetIfAbsent(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	c := newCache[int, string](time.Minute, clk.now)

	assert.True(t, c.SetIfAbsent(1, "first"))
	assert.False(t, c.SetIfAbsent(1, "second"))
	v, _ := c.Get(1)
	assert.Equal(t, "first", v)

	clk.advance(time.Minute)
	assert.True(t, c.SetIfAbsent(1, "third"))
	v, _ = c.Get(1)
	assert.Equal(t, "third", v)

	c.Delete(1)
	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestCache_BackgroundSweep(t *testing.T) {
	c := New[int, int](20 * time.Millisecond)
	defer c.Close()

	c.Set(1, 1)
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestCache_CloseTwice(t *testing.T) {
	c := New[int, int](time.Minute)
	c.Close()
	assert.NotPanics(t, c.Close)
}

func TestCache_SweepIntervalUsesEffectiveTTL(t *testing.T) {
	c := newCache[string, int](0, time.Now)
	defer c.Close()
	assert.Equal(t, time.Minute, c.ttl)
	assert.Equal(t, 30*time.Second, c.sweepInterval())

	c = newCache[string, int](10*time.Second, time.Now)
	defer c.Close()
	assert.Equal(t, 5*time.Second, c.sweepInterval())
}
