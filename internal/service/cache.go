package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kalakaari/storefront-service/internal/metrics"
	"github.com/kalakaari/storefront-service/internal/service/cache"
)

// rateCache is a thread-safe LRU cache with TTL expiration for shipping
// rates, keyed by destination and chargeable weight. It implements the
// cache.Cache interface. Rates go stale slowly; the TTL bounds how long
// a carrier price change takes to surface.
type rateCache struct {
	mu        sync.RWMutex
	capacity  int
	ttl       time.Duration
	items     map[string]*rateEntry
	head      *rateEntry
	tail      *rateEntry
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      int64
	misses    int64
	evictions int64
}

// rateEntry is a doubly-linked LRU node.
type rateEntry struct {
	key       string
	cost      float64
	expiresAt time.Time
	prev      *rateEntry
	next      *rateEntry
}

// NewRateCache creates an LRU+TTL shipping rate cache. A background
// goroutine periodically removes expired entries.
func NewRateCache(capacity int, ttl time.Duration) cache.CacheWithMetrics {
	if capacity < 1 {
		capacity = 1
	}
	c := &rateCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*rateEntry, capacity),
		stopCh:   make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached rate if present and not expired.
func (c *rateCache) Get(key string) (float64, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordRateCacheOperation("get", "miss")
		return 0, false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		if _, stillExists := c.items[key]; stillExists {
			c.removeEntry(entry)
		}
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordRateCacheOperation("get", "expired")
		return 0, false
	}

	c.mu.Lock()
	c.moveToFront(entry)
	c.mu.Unlock()

	atomic.AddInt64(&c.hits, 1)
	metrics.RecordRateCacheOperation("get", "hit")
	return entry.cost, true
}

// Set stores a rate with the configured TTL, evicting the least
// recently used entry at capacity.
func (c *rateCache) Set(key string, cost float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		entry.cost = cost
		entry.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(entry)
		return
	}

	if len(c.items) >= c.capacity && c.tail != nil {
		c.removeEntry(c.tail)
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordRateCacheOperation("set", "evict")
	}

	entry := &rateEntry{
		key:       key,
		cost:      cost,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.items[key] = entry
	c.pushFront(entry)
	metrics.RecordRateCacheOperation("set", "ok")
}

// Invalidate removes a single key.
func (c *rateCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
	}
}

// Clear removes all entries.
func (c *rateCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*rateEntry, c.capacity)
	c.head = nil
	c.tail = nil
}

// Stop terminates the cleanup goroutine.
func (c *rateCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics returns current cache performance counters.
func (c *rateCache) Metrics() cache.Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cache.Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

func (c *rateCache) cleanupLoop() {
	interval := c.ttl
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *rateCache) removeExpired() {
	cutoff := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.items {
		if cutoff.After(entry.expiresAt) {
			c.removeEntry(entry)
		}
	}
}

// removeEntry unlinks an entry. Caller holds the write lock.
func (c *rateCache) removeEntry(entry *rateEntry) {
	delete(c.items, entry.key)
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}

// pushFront links a new entry at the head. Caller holds the write lock.
func (c *rateCache) pushFront(entry *rateEntry) {
	entry.next = c.head
	entry.prev = nil
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

// moveToFront marks an entry most recently used. Caller holds the write lock.
func (c *rateCache) moveToFront(entry *rateEntry) {
	if c.head == entry {
		return
	}
	if entry.prev != nil {
		entry.prev.next = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	}
	if c.tail == entry {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}
