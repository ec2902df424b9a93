// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package cache

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

func newTestSessionCache(t *testing.T, capacity int, clock *fakeClock) *SessionCache {
	t.Helper()
	c, err := NewSessionCache(SessionConfig{TTL: time.Minute, Capacity: capacity, Now: clock.Now})
	if err != nil {
		t.Fatalf("NewSessionCache() error = %v", err)
	}
	return c
}

func identity(n int) models.VehicleIdentity {
	return models.VehicleIdentity{Slug: "car", IDPrefix: fmt.Sprintf("%04d", n)}
}

func sample(field string, v float64) models.NormalizedSample {
	return models.NormalizedSample{Field: field, Numeric: v, Kind: models.KindNumeric}
}

func TestNewSessionCache_Bounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		ttl      time.Duration
		capacity int
		wantErr  bool
	}{
		{"defaults", 1800 * time.Second, 100, false},
		{"low edges", MinTTL, MinCapacity, false},
		{"high edges", MaxTTL, MaxCapacity, false},
		{"ttl too short", 59 * time.Second, 100, true},
		{"ttl too long", MaxTTL + time.Second, 100, true},
		{"capacity too small", time.Hour, 9, true},
		{"capacity too large", time.Hour, 1001, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewSessionCache(SessionConfig{TTL: tt.ttl, Capacity: tt.capacity})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBounds) {
				t.Errorf("err = %v, want ErrInvalidBounds", err)
			}
		})
	}
}

func TestSessionCache_UpsertMergesPartialFrames(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := newTestSessionCache(t, 10, clock)
	id := identity(1)

	_, created := c.Upsert(id, Update{
		DisplayName: "My Car",
		Session:     "s1",
		Fields:      map[string]models.NormalizedSample{"speed_obd": sample("speed_obd", 50), "engine_rpm": sample("engine_rpm", 2000)},
		GPS:         &models.GPSFix{Latitude: 48.85, Longitude: 2.35},
	})
	if !created {
		t.Error("first upsert should report created")
	}

	clock.Advance(10 * time.Second)
	rec, created := c.Upsert(id, Update{
		Session: "s2",
		Fields:  map[string]models.NormalizedSample{"speed_obd": sample("speed_obd", 88)},
	})
	if created {
		t.Error("second upsert should report updated")
	}

	if rec.Fields["speed_obd"].Numeric != 88 {
		t.Errorf("speed = %v, want 88", rec.Fields["speed_obd"].Numeric)
	}
	if rec.Fields["engine_rpm"].Numeric != 2000 {
		t.Errorf("rpm = %v, want retained 2000", rec.Fields["engine_rpm"].Numeric)
	}
	if rec.GPS == nil || rec.GPS.Latitude != 48.85 {
		t.Errorf("GPS = %+v, want retained fix", rec.GPS)
	}
	if rec.DisplayName != "My Car" || rec.Session != "s2" {
		t.Errorf("name/session = %q/%q", rec.DisplayName, rec.Session)
	}
	if !rec.LastSeen.Equal(clock.Now()) || rec.Frames != 2 {
		t.Errorf("LastSeen = %v Frames = %d", rec.LastSeen, rec.Frames)
	}
}

func TestSessionCache_ReadAfterWriteReturnsCopies(t *testing.T) {
	t.Parallel()
	c := newTestSessionCache(t, 10, newFakeClock())
	id := identity(1)
	c.Upsert(id, Update{Fields: map[string]models.NormalizedSample{"speed_obd": sample("speed_obd", 88)}})

	got, ok := c.Get(id.Key())
	if !ok || got.Fields["speed_obd"].Numeric != 88 {
		t.Fatalf("Get() = %+v, %v", got, ok)
	}
	got.Fields["speed_obd"] = sample("speed_obd", 1)

	again, _ := c.Get(id.Key())
	if again.Fields["speed_obd"].Numeric != 88 {
		t.Error("mutating a returned record changed the cache")
	}
}

func TestSessionCache_Idempotent(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := newTestSessionCache(t, 10, clock)
	u := Update{
		DisplayName: "My Car",
		Session:     "test-123",
		Fields:      map[string]models.NormalizedSample{"speed_obd": sample("speed_obd", 88)},
		GPS:         &models.GPSFix{Latitude: 48.8566, Longitude: 2.3522},
	}

	first, _ := c.Upsert(identity(1), u)
	clock.Advance(5 * time.Second)
	second, _ := c.Upsert(identity(1), u)

	if !reflect.DeepEqual(first.Fields, second.Fields) || !reflect.DeepEqual(first.GPS, second.GPS) {
		t.Error("resubmitting the same frame changed the record content")
	}
	if first.DisplayName != second.DisplayName || first.Session != second.Session {
		t.Error("resubmitting the same frame changed profile data")
	}
}

func TestSessionCache_CapacityEvictsLeastRecentlyAccessed(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	var evicted []string
	c, err := NewSessionCache(SessionConfig{
		TTL:      time.Hour,
		Capacity: MinCapacity,
		Now:      clock.Now,
		OnEvict:  func(id string, _ EvictReason) { evicted = append(evicted, id) },
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < MinCapacity; i++ {
		c.Upsert(identity(i), Update{Session: "s"})
		clock.Advance(time.Second)
	}
	// Touch the oldest so identity(1) becomes the least recently accessed.
	c.Get(identity(0).Key())

	c.Upsert(identity(MinCapacity), Update{Session: "s"})

	if c.Len() != MinCapacity {
		t.Errorf("Len() = %d, want %d", c.Len(), MinCapacity)
	}
	if len(evicted) != 1 || evicted[0] != identity(1).Key() {
		t.Errorf("evicted = %v, want [%s]", evicted, identity(1).Key())
	}
	if !c.Contains(identity(0).Key()) {
		t.Error("recently read identity(0) was evicted")
	}
}

func TestSessionCache_TTLHidesButSizeCounts(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := newTestSessionCache(t, 10, clock)
	id := identity(7)
	c.Upsert(id, Update{Session: "s"})

	clock.Advance(time.Minute + time.Second)

	if _, ok := c.Get(id.Key()); ok {
		t.Error("expired record returned by Get")
	}
	if c.Contains(id.Key()) {
		t.Error("expired record reported by Contains")
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1 before sweep", c.Size())
	}

	entries := c.Entries()
	if len(entries) != 1 || entries[0].Fresh || entries[0].Record != nil {
		t.Errorf("Entries() = %+v, want one stale entry without record", entries)
	}

	if n := c.Sweep(); n != 1 || c.Size() != 0 {
		t.Errorf("Sweep() = %d, Size() = %d", n, c.Size())
	}
}

func TestSessionCache_UpsertAfterExpiryStartsFresh(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := newTestSessionCache(t, 10, clock)
	id := identity(3)
	c.Upsert(id, Update{Fields: map[string]models.NormalizedSample{"engine_rpm": sample("engine_rpm", 900)}})

	clock.Advance(2 * time.Minute)
	rec, created := c.Upsert(id, Update{Fields: map[string]models.NormalizedSample{"speed_obd": sample("speed_obd", 10)}})

	if !created {
		t.Error("upsert over an expired record should report created")
	}
	if _, ok := rec.Fields["engine_rpm"]; ok {
		t.Error("expired fields leaked into the new record")
	}
}

func TestSessionCache_UnknownCodesCapped(t *testing.T) {
	t.Parallel()
	c := newTestSessionCache(t, 10, newFakeClock())
	unknown := make(map[string]string, MaxUnknownCodes+20)
	for i := 0; i < MaxUnknownCodes+20; i++ {
		unknown[fmt.Sprintf("ff%04x", i)] = "1"
	}
	rec, _ := c.Upsert(identity(1), Update{Unknown: unknown})
	if len(rec.Unknown) != MaxUnknownCodes {
		t.Errorf("len(Unknown) = %d, want %d", len(rec.Unknown), MaxUnknownCodes)
	}
}

func TestSessionCache_ConcurrentWritersSameIdentity(t *testing.T) {
	t.Parallel()
	c := newTestSessionCache(t, 10, newFakeClock())
	id := identity(1)

	const writers = 16
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			field := fmt.Sprintf("f%02d", w)
			c.Upsert(id, Update{Fields: map[string]models.NormalizedSample{field: sample(field, float64(w))}})
		}(w)
	}
	wg.Wait()

	rec, ok := c.Get(id.Key())
	if !ok {
		t.Fatal("record missing")
	}
	if len(rec.Fields) != writers {
		t.Errorf("len(Fields) = %d, want %d (a merge was lost)", len(rec.Fields), writers)
	}
	if rec.Frames != writers {
		t.Errorf("Frames = %d, want %d", rec.Frames, writers)
	}
}

func TestSessionCache_SnapshotSkipsExpired(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := newTestSessionCache(t, 10, clock)
	c.Upsert(identity(1), Update{Session: "old"})
	clock.Advance(45 * time.Second)
	c.Upsert(identity(2), Update{Session: "new"})
	clock.Advance(30 * time.Second)

	snap := c.Snapshot()
	if len(snap) != 1 || snap[0].Identity != identity(2) {
		t.Fatalf("Snapshot() = %+v, want only identity(2)", snap)
	}
}
