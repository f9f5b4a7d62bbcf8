package server

import (
	"sync"
	"time"

	"riftreplay/internal/timeline"
)

type cacheEntry struct {
	engine   *timeline.Engine
	storedAt time.Time
	lastUsed time.Time
}

// EngineCache is a thread-safe engine cache bounded by size and age. When
// full, the least recently used entry is evicted.
type EngineCache struct {
	mu      sync.Mutex
	data    map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

// NewEngineCache creates a cache. maxSize <= 0 means 1; ttl <= 0 disables
// expiry.
func NewEngineCache(maxSize int, ttl time.Duration) *EngineCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &EngineCache{
		data:    make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves an engine if present and not expired
func (c *EngineCache) Get(key string) (*timeline.Engine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok {
		return nil, false
	}
	now := c.now()
	if c.ttl > 0 && now.Sub(e.storedAt) > c.ttl {
		delete(c.data, key)
		return nil, false
	}
	e.lastUsed = now
	return e.engine, true
}

// Set stores an engine, evicting the least recently used one when full
func (c *EngineCache) Set(key string, engine *timeline.Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, ok := c.data[key]; !ok && len(c.data) >= c.maxSize {
		c.evictLocked()
	}
	c.data[key] = &cacheEntry{engine: engine, storedAt: now, lastUsed: now}
}

func (c *EngineCache) evictLocked() {
	var (
		oldest string
		when   time.Time
	)
	for k, e := range c.data {
		if oldest == "" || e.lastUsed.Before(when) {
			oldest, when = k, e.lastUsed
		}
	}
	delete(c.data, oldest)
}

// Len returns the number of cached engines, expired ones included
func (c *EngineCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear removes all cached engines
func (c *EngineCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*cacheEntry)
}
