package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Len       int
}

// HitRate returns Hits / (Hits + Misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a size-bounded LRU keyed by string.
type Cache[V any] struct {
	lru   *lru.Cache[string, V]
	group singleflight.Group

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a cache holding at most size entries. onEvict, if non-nil, is
// called for every entry dropped from the cache.
func New[V any](size int, onEvict func(key string, value V)) (*Cache[V], error) {
	c := &Cache[V]{}

	l, err := lru.NewWithEvict(size, func(key string, value V) {
		c.evictions.Add(1)
		if onEvict != nil {
			onEvict(key, value)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	c.lru = l
	return c, nil
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// GetOrLoad returns the cached value for key, calling load on a miss.
// Concurrent misses for the same key share one load. hit reports whether the
// value came from the cache.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (value V, hit bool, err error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have filled the entry meanwhile.
		if v, ok := c.lru.Peek(key); ok {
			return v, nil
		}

		v, err := load()
		if err != nil {
			return nil, err
		}

		c.lru.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}

	return res.(V), false, nil
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Purge drops every entry. Purged entries count as evictions.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Len:       c.lru.Len(),
	}
}
