// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock shared by the cache tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLRU_BasicOperations(t *testing.T) {
	t.Parallel()
	c := NewLRU(LRUConfig[int]{Capacity: 3})

	if !c.Add("a", 1) {
		t.Error("Add(a) should report a new key")
	}
	c.Add("b", 2)
	if c.Add("a", 10) {
		t.Error("Add(a) again should report an existing key")
	}

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v, want 10, true", v, ok)
	}
	if _, ok := c.Get("zz"); ok {
		t.Error("Get(zz) should miss")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", stats)
	}
	if !c.Remove("b") || c.Remove("b") {
		t.Error("Remove(b) should succeed exactly once")
	}
}

func TestLRU_EvictsLeastRecentlyAccessed(t *testing.T) {
	t.Parallel()
	var evicted []string
	c := NewLRU(LRUConfig[int]{
		Capacity: 3,
		OnEvict: func(key string, _ int, reason EvictReason) {
			if reason != EvictCapacity {
				t.Errorf("reason = %s, want capacity", reason)
			}
			evicted = append(evicted, key)
		},
	})

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a")
	c.Add("d", 4)

	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("evicted = %v, want [b]", evicted)
	}
	for _, k := range []string{"a", "c", "d"} {
		if !c.Contains(k) {
			t.Errorf("expected %q to remain", k)
		}
	}
}

func TestLRU_PeekAndContainsDoNotTouchRecency(t *testing.T) {
	t.Parallel()
	c := NewLRU(LRUConfig[int]{Capacity: 2})
	c.Add("a", 1)
	c.Add("b", 2)

	c.Peek("a")
	c.Contains("a")
	c.Add("c", 3)

	if c.Contains("a") {
		t.Error("a should have been evicted despite Peek/Contains")
	}
}

func TestLRU_TTLIsLazy(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := NewLRU(LRUConfig[string]{Capacity: 10, TTL: time.Minute, Now: clock.Now})

	c.Add("a", "x")
	clock.Advance(time.Minute)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry exactly at TTL age should still be live")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry returned by Get")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 until swept", c.Len())
	}
	if c.LiveLen() != 0 {
		t.Errorf("LiveLen() = %d, want 0", c.LiveLen())
	}
	if n := c.CleanupExpired(); n != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after cleanup = %d, want 0", c.Len())
	}
}

func TestLRU_ReclaimsExpiredBeforeEvictingLive(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	reasons := map[string]EvictReason{}
	c := NewLRU(LRUConfig[int]{
		Capacity: 3,
		TTL:      time.Minute,
		Now:      clock.Now,
		OnEvict:  func(key string, _ int, r EvictReason) { reasons[key] = r },
	})

	c.Add("old", 0)
	clock.Advance(30 * time.Second)
	c.Add("b", 1)
	c.Add("c", 2)
	c.Get("old")
	clock.Advance(45 * time.Second)

	// "old" is the most recently accessed but expired; "b" is the LRU live entry.
	c.Add("d", 3)

	if reasons["old"] != EvictExpired {
		t.Errorf("old reason = %q, want expired", reasons["old"])
	}
	if _, gone := reasons["b"]; gone {
		t.Error("live entry b evicted while an expired entry was available")
	}
	if c.LiveLen() != 3 {
		t.Errorf("LiveLen() = %d, want 3", c.LiveLen())
	}
}

func TestLRU_ItemsOrder(t *testing.T) {
	t.Parallel()
	c := NewLRU(LRUConfig[int]{Capacity: 5})
	for i := 0; i < 3; i++ {
		c.Add(fmt.Sprintf("k%d", i), i)
	}
	c.Get("k0")

	items := c.Items()
	want := []string{"k0", "k2", "k1"}
	for i, it := range items {
		if it.Key != want[i] {
			t.Errorf("Items()[%d] = %q, want %q", i, it.Key, want[i])
		}
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()
	c := NewLRU(LRUConfig[int]{Capacity: 50})
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%80)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d, exceeds capacity 50", c.Len())
	}
}
