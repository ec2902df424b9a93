// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package cache

import (
	"sync"
	"time"
)

// EvictReason tells an eviction callback why an entry left the cache.
type EvictReason string

const (
	// EvictCapacity is an LRU eviction caused by an insert at capacity.
	EvictCapacity EvictReason = "capacity"
	// EvictExpired is a removal of an entry older than the TTL.
	EvictExpired EvictReason = "expired"
)

type lruEntry[V any] struct {
	key       string
	value     V
	prev      *lruEntry[V]
	next      *lruEntry[V]
	expiresAt time.Time
}

// LRUConfig configures an LRU.
type LRUConfig[V any] struct {
	// Capacity bounds the number of live entries. Defaults to 1000.
	Capacity int

	// TTL is measured from the last Add of a key. Zero disables expiry.
	TTL time.Duration

	// Now is the clock; time.Now when nil.
	Now func() time.Time

	// OnEvict runs with the cache lock held and must not call back into
	// the cache.
	OnEvict func(key string, value V, reason EvictReason)
}

// LRU is a thread-safe least-recently-used map with TTL.
//
// Expiry is lazy: an expired entry is invisible to Get, Peek and Contains
// but stays physically present until CleanupExpired runs or its slot is
// needed by an insert. When an insert finds the cache full, expired entries
// are reclaimed first so that capacity eviction only ever picks among live
// entries.
//
// A map gives O(1) lookup and a doubly-linked list with sentinel head and
// tail keeps recency: head.next is the most recently used entry.
type LRU[V any] struct {
	mu sync.RWMutex

	capacity int
	ttl      time.Duration
	now      func() time.Time
	onEvict  func(key string, value V, reason EvictReason)

	items map[string]*lruEntry[V]
	head  *lruEntry[V]
	tail  *lruEntry[V]

	hits        int64
	misses      int64
	evictions   int64
	expirations int64
}

// NewLRU creates an LRU from cfg.
func NewLRU[V any](cfg LRUConfig[V]) *LRU[V] {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	c := &LRU[V]{
		capacity: cfg.Capacity,
		ttl:      cfg.TTL,
		now:      cfg.Now,
		onEvict:  cfg.OnEvict,
		items:    make(map[string]*lruEntry[V], cfg.Capacity),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

func (c *LRU[V]) expired(e *lruEntry[V], now time.Time) bool {
	return c.ttl > 0 && now.After(e.expiresAt)
}

// Get returns a live value and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok || c.expired(e, c.now()) {
		c.misses++
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	c.hits++
	return e.value, true
}

// Peek returns a live value without touching recency or statistics.
func (c *LRU[V]) Peek(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || c.expired(e, c.now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Contains reports whether key is live, without touching recency.
func (c *LRU[V]) Contains(key string) bool {
	_, ok := c.Peek(key)
	return ok
}

// Add inserts or replaces key, restarts its TTL and marks it most recently
// used. It reports whether the key was new.
func (c *LRU[V]) Add(key string, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expiresAt := now.Add(c.ttl)

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return false
	}

	if len(c.items) >= c.capacity {
		c.removeExpired(now)
	}
	for len(c.items) >= c.capacity {
		c.evictOldest()
	}

	e := &lruEntry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e
	return true
}

// Remove deletes key without calling OnEvict.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.unlink(e)
		return true
	}
	return false
}

// Len returns the number of physically present entries, expired included.
func (c *LRU[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// LiveLen returns the number of entries that have not expired.
func (c *LRU[V]) LiveLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	n := 0
	for _, e := range c.items {
		if !c.expired(e, now) {
			n++
		}
	}
	return n
}

// CleanupExpired removes every expired entry and returns how many went.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeExpired(c.now())
}

// Item is a point-in-time view of one entry.
type Item[V any] struct {
	Key       string
	Value     V
	ExpiresAt time.Time
	Expired   bool
}

// Items lists entries from most to least recently used.
func (c *LRU[V]) Items() []Item[V] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	out := make([]Item[V], 0, len(c.items))
	for e := c.head.next; e != c.tail; e = e.next {
		out = append(out, Item[V]{
			Key:       e.key,
			Value:     e.value,
			ExpiresAt: e.expiresAt,
			Expired:   c.expired(e, now),
		})
	}
	return out
}

// LRUStats is a snapshot of cache counters.
type LRUStats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evictions   int64 `json:"evictions"`
	Expirations int64 `json:"expirations"`
	Size        int   `json:"size"`
	Capacity    int   `json:"capacity"`
}

// Stats returns the cache counters.
func (c *LRU[V]) Stats() LRUStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return LRUStats{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
		Size:        len(c.items),
		Capacity:    c.capacity,
	}
}

// The helpers below must be called with mu held for writing.

func (c *LRU[V]) addToFront(e *lruEntry[V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[V]) moveToFront(e *lruEntry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *LRU[V]) unlink(e *lruEntry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

func (c *LRU[V]) removeExpired(now time.Time) int {
	if c.ttl <= 0 {
		return 0
	}
	removed := 0
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if c.expired(e, now) {
			c.unlink(e)
			c.expirations++
			removed++
			if c.onEvict != nil {
				c.onEvict(e.key, e.value, EvictExpired)
			}
		}
		e = prev
	}
	return removed
}

func (c *LRU[V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.unlink(oldest)
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(oldest.key, oldest.value, EvictCapacity)
	}
}
