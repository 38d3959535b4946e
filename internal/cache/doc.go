// Package cache provides the LRU cache compiled formulas are kept in.
//
// Cache wraps hashicorp/golang-lru with singleflight so that concurrent
// misses for the same key run the loader once. Failed loads are never
// cached. Hits, misses and evictions are tracked with atomics and exposed
// through Stats.
package cache
