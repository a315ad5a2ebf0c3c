// Package cache implements a small in-memory cache with per-entry expiration.
// It is the only session store of the portal: rental selections and generated
// contract sets live here and disappear when their TTL elapses.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value   any
	expires time.Time
}

// Cache is a concurrency-safe map with expiring entries.
type Cache struct {
	mu         sync.RWMutex
	defaultTTL time.Duration
	entries    map[string]entry
	done       chan struct{}
}

// New creates a cache whose entries expire after defaultTTL unless a
// different TTL is given in Set. A janitor goroutine evicts expired entries
// periodically; call Stop to terminate it.
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		defaultTTL: defaultTTL,
		entries:    make(map[string]entry),
		done:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Set stores value under key with the given TTL. A zero ttl uses the default.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Get returns the value stored under key, or false if the key is absent or
// has expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

// Delete removes the entry stored under key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Stop terminates the janitor goroutine.
func (c *Cache) Stop() {
	close(c.done)
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expires) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
