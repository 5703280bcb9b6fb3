// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache provides a small concurrency-safe LRU used to memoize
// derived immutable data, such as per-signer-set weight indexes.
package cache

import (
	"sync"

	"github.com/luxfi/geth/common/lru"
)

// LRUCache wraps an LRU cache with a fetch-through Get for immutable data.
type LRUCache[K comparable, V any] struct {
	cache *lru.Cache[K, V]
	lock  sync.RWMutex
}

// NewLRUCache creates an LRU cache holding at most size entries.
func NewLRUCache[K comparable, V any](size int) *LRUCache[K, V] {
	return &LRUCache[K, V]{
		cache: lru.NewCache[K, V](size),
	}
}

// Get returns the cached value for key, fetching and caching it via
// fetchFunc on a miss. If invalidate is true the entry is dropped before
// fetching. Designed for immutable data, so entries never expire.
func (c *LRUCache[K, V]) Get(key K, fetchFunc func(K) (V, error), invalidate bool) (V, error) {
	if invalidate {
		c.lock.Lock()
		c.cache.Remove(key)
		c.lock.Unlock()
	} else {
		c.lock.RLock()
		if value, found := c.cache.Get(key); found {
			c.lock.RUnlock()
			return value, nil
		}
		c.lock.RUnlock()
	}

	newValue, err := fetchFunc(key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.lock.Lock()
	c.cache.Add(key, newValue)
	c.lock.Unlock()

	return newValue, nil
}
