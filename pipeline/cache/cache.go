/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package cache provides the in-process response cache used by the pipeline.
//
// Entries expire after a TTL and are evicted lazily on lookup; nothing runs
// in the background. The cache is an explicit component injected into the
// pipeline rather than process-global state, so tests get per-test isolation.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached response stays visible unless the caller
// overrides it.
const DefaultTTL = time.Hour

// Stats reports the cache's current occupancy. Expired-but-unevicted entries
// are not counted.
type Stats struct {
	Entries int
}

type entry struct {
	value  any
	expiry time.Time
}

// Cache is a TTL'd key/value store safe for concurrent use. The zero value is
// not usable; construct with New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the default entry lifetime. Non-positive values fall back
// to DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock substitutes the time source. Tests use this to step past expiry
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New constructs an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key if present and unexpired. An expired entry is
// removed and reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiry) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed
		// the entry since the read.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key, visible until ttl elapses. Non-positive TTLs
// fall back to the cache default.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiry: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Stats counts live entries, evicting any that have expired so the count
// reflects what a Get would see.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiry) {
			delete(c.entries, k)
		}
	}
	return Stats{Entries: len(c.entries)}
}
