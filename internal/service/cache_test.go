package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateCache_SetGet(t *testing.T) {
	c := NewRateCache(10, time.Minute)
	defer c.Stop()

	_, ok := c.Get("560038|1700")
	assert.False(t, ok)

	c.Set("560038|1700", 60)
	cost, ok := c.Get("560038|1700")
	assert.True(t, ok)
	assert.Equal(t, 60.0, cost)
}

func TestRateCache_TTLExpiration(t *testing.T) {
	c := NewRateCache(10, 20*time.Millisecond)
	defer c.Stop()

	c.Set("110001|500", 45)
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("110001|500")
	assert.False(t, ok)
}

func TestRateCache_LRUEviction(t *testing.T) {
	c := NewRateCache(3, time.Minute)
	defer c.Stop()

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("pin%d", i), float64(i))
	}
	// Touch pin0 so pin1 becomes least recently used.
	_, _ = c.Get("pin0")

	c.Set("pin3", 99)

	_, ok := c.Get("pin1")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("pin0")
	assert.True(t, ok)
	_, ok = c.Get("pin3")
	assert.True(t, ok)
}

func TestRateCache_InvalidateAndClear(t *testing.T) {
	c := NewRateCache(10, time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestRateCache_Metrics(t *testing.T) {
	c := NewRateCache(2, time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	_, _ = c.Get("a")
	_, _ = c.Get("missing")

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 1, m.Size)
	assert.Equal(t, 2, m.Capacity)
}
