package utils

import (
	"sync"
	"time"
)

// Cache is a small in-process TTL cache keyed by string, used as a fallback
// when no redis instance is configured.
type Cache[T any] struct {
	entries map[string]cacheEntry[T]
	mutex   sync.RWMutex
}

type cacheEntry[T any] struct {
	value      T
	expiration time.Time
}

// NewCache initializes an empty cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]cacheEntry[T]),
	}
}

// Set stores a value under key with an expiration time.
func (c *Cache[T]) Set(key string, value T, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[T]{
		value:      value,
		expiration: time.Now().Add(duration),
	}
}

// Get retrieves the cached value for key if it has not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiration) {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Clear removes every cached value.
func (c *Cache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry[T])
}
