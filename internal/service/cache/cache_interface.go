// Package cache defines the caching contract used for shipping rates.
package cache

// Cache is a string-keyed cache of shipping rates.
type Cache interface {
	Get(key string) (float64, bool)
	Set(key string, cost float64)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance counters.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
