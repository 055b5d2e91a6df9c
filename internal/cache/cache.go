// Package cache holds short lived read caches in front of the database.
package cache

import (
	"sync"
	"time"
)

// DefaultMaxKeys bounds a TTL cache built without an explicit cap.
const DefaultMaxKeys = 256

// TTL is a small expiring map. Entries expire lazily on read and are swept
// in bulk on write once the map is half full, so keys that are never read
// again still leave. The map never holds more than maxKeys entries.
type TTL[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	maxKeys int
	now     func() time.Time
	m       map[string]entry[V]

	// gen moves on every Clear; SetIfGeneration refuses values loaded
	// before the last Clear.
	gen uint64
}

type entry[V any] struct {
	val V
	exp time.Time
}

func NewTTL[V any](ttl time.Duration, maxKeys int) *TTL[V] {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	return &TTL[V]{
		ttl:     ttl,
		maxKeys: maxKeys,
		now:     time.Now,
		m:       make(map[string]entry[V]),
	}
}

func (c *TTL[V]) Get(key string) (V, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}

	if now.After(e.exp) {
		c.mu.Lock()
		// recheck: a writer may have refreshed it meanwhile
		if cur, ok := c.m[key]; ok && now.After(cur.exp) {
			delete(c.m, key)
		}
		c.mu.Unlock()

		var zero V
		return zero, false
	}

	return e.val, true
}

func (c *TTL[V]) Set(key string, val V) {
	c.mu.Lock()
	c.set(key, val)
	c.mu.Unlock()
}

// Generation is read before loading a value that will go to SetIfGeneration.
func (c *TTL[V]) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetIfGeneration stores val only if no Clear happened since gen was read.
func (c *TTL[V]) SetIfGeneration(key string, val V, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return false
	}
	c.set(key, val)
	return true
}

// set is called with the write lock held.
func (c *TTL[V]) set(key string, val V) {
	now := c.now()

	if _, exists := c.m[key]; !exists && len(c.m) >= c.maxKeys/2 {
		c.sweep(now)

		// still full of live entries: evict one to make room
		if len(c.m) >= c.maxKeys {
			for k := range c.m {
				delete(c.m, k)
				break
			}
		}
	}

	c.m[key] = entry[V]{val: val, exp: now.Add(c.ttl)}
}

func (c *TTL[V]) sweep(now time.Time) {
	for k, e := range c.m {
		if now.After(e.exp) {
			delete(c.m, k)
		}
	}
}

func (c *TTL[V]) Clear() {
	c.mu.Lock()
	c.m = make(map[string]entry[V])
	c.gen++
	c.mu.Unlock()
}

func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
