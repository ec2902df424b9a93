// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// Bounds accepted for session caches.
const (
	MinTTL      = 60 * time.Second
	MaxTTL      = 86400 * time.Second
	MinCapacity = 10
	MaxCapacity = 1000

	// MaxUnknownCodes caps the raw unknown PIDs kept per record.
	MaxUnknownCodes = 80
)

// ErrInvalidBounds is returned for a TTL or capacity outside the bounds.
var ErrInvalidBounds = errors.New("session cache bounds out of range")

// SessionConfig configures a SessionCache.
type SessionConfig struct {
	TTL      time.Duration
	Capacity int
	Now      func() time.Time

	// OnEvict is called for every capacity eviction and expiry removal
	// with the cache lock held.
	OnEvict func(identity string, reason EvictReason)
}

// Update is the partial state carried by one frame.
type Update struct {
	DisplayName string
	Fields      map[string]models.NormalizedSample
	GPS         *models.GPSFix
	Session     string
	AppVersion  string
	Unknown     map[string]string
}

// SessionCache holds the latest SessionRecord of every vehicle of one
// account. Records are stored immutably: an upsert builds a new record from
// a copy of the previous one, and readers always receive copies.
//
// Writers for the same identity are serialized by a KeyedMutex; the LRU's
// own lock is held only for the lookup and the final insert.
type SessionCache struct {
	lru   *LRU[*models.SessionRecord]
	locks *KeyedMutex
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionCache validates cfg and builds the cache.
func NewSessionCache(cfg SessionConfig) (*SessionCache, error) {
	if cfg.TTL < MinTTL || cfg.TTL > MaxTTL {
		return nil, fmt.Errorf("%w: ttl %s not in [%s, %s]", ErrInvalidBounds, cfg.TTL, MinTTL, MaxTTL)
	}
	if cfg.Capacity < MinCapacity || cfg.Capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d not in [%d, %d]", ErrInvalidBounds, cfg.Capacity, MinCapacity, MaxCapacity)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var onEvict func(string, *models.SessionRecord, EvictReason)
	if cfg.OnEvict != nil {
		hook := cfg.OnEvict
		onEvict = func(key string, _ *models.SessionRecord, reason EvictReason) { hook(key, reason) }
	}

	return &SessionCache{
		lru: NewLRU(LRUConfig[*models.SessionRecord]{
			Capacity: cfg.Capacity,
			TTL:      cfg.TTL,
			Now:      cfg.Now,
			OnEvict:  onEvict,
		}),
		locks: NewKeyedMutex(),
		ttl:   cfg.TTL,
		now:   cfg.Now,
	}, nil
}

// TTL returns the configured time-to-live.
func (c *SessionCache) TTL() time.Duration { return c.ttl }

// Capacity returns the configured live-entry bound.
func (c *SessionCache) Capacity() int { return c.lru.capacity }

// Upsert merges u into the record of id and returns a copy of the result.
// Fields absent from u keep their previous value; the GPS fix is replaced
// only when u carries one. created is true when no live record existed.
func (c *SessionCache) Upsert(id models.VehicleIdentity, u Update) (rec *models.SessionRecord, created bool) {
	key := id.Key()
	unlock := c.locks.Lock(key)
	defer unlock()

	now := c.now()
	prev, ok := c.lru.Peek(key)
	if ok {
		rec = prev.Clone()
	} else {
		created = true
		rec = &models.SessionRecord{
			Identity:  id,
			Fields:    make(map[string]models.NormalizedSample, len(u.Fields)),
			FirstSeen: now,
		}
	}

	for name, s := range u.Fields {
		rec.Fields[name] = s
	}
	if u.GPS != nil {
		rec.GPS = u.GPS.Clone()
	}
	if u.DisplayName != "" {
		rec.DisplayName = u.DisplayName
	}
	if u.AppVersion != "" {
		rec.AppVersion = u.AppVersion
	}
	if u.Session != "" {
		rec.Session = u.Session
	}
	rec.Unknown = mergeUnknown(rec.Unknown, u.Unknown)
	rec.LastSeen = now
	rec.Frames++

	c.lru.Add(key, rec)
	return rec.Clone(), created
}

func mergeUnknown(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		if _, ok := dst[k]; !ok && len(dst) >= MaxUnknownCodes {
			continue
		}
		dst[k] = v
	}
	return dst
}

// Get returns a copy of a live record and marks it recently used.
func (c *SessionCache) Get(identity string) (*models.SessionRecord, bool) {
	rec, ok := c.lru.Get(identity)
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Contains reports whether identity has a live record.
func (c *SessionCache) Contains(identity string) bool {
	return c.lru.Contains(identity)
}

// Size counts physically present records, including expired ones that have
// not been swept yet.
func (c *SessionCache) Size() int {
	return c.lru.Len()
}

// Len counts live records. It never exceeds Capacity.
func (c *SessionCache) Len() int {
	return c.lru.LiveLen()
}

// Entry is one known identity; Record is nil once the identity expired.
type Entry struct {
	Identity string
	Record   *models.SessionRecord
	LastSeen time.Time
	Fresh    bool
}

// Entries lists every known identity, most recently used first, without
// changing recency.
func (c *SessionCache) Entries() []Entry {
	items := c.lru.Items()
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		e := Entry{Identity: it.Key, LastSeen: it.Value.LastSeen, Fresh: !it.Expired}
		if !it.Expired {
			e.Record = it.Value.Clone()
		}
		out = append(out, e)
	}
	return out
}

// Snapshot returns copies of every live record, most recently used first.
func (c *SessionCache) Snapshot() []*models.SessionRecord {
	items := c.lru.Items()
	out := make([]*models.SessionRecord, 0, len(items))
	for _, it := range items {
		if !it.Expired {
			out = append(out, it.Value.Clone())
		}
	}
	return out
}

// Sweep removes expired records and returns how many were dropped.
func (c *SessionCache) Sweep() int {
	return c.lru.CleanupExpired()
}

// Stats returns hit, miss and eviction counters.
func (c *SessionCache) Stats() LRUStats {
	return c.lru.Stats()
}
