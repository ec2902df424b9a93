// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package ingest

import (
	"maps"
	"sync"
	"time"
)

// Stats are the diagnostics counters of a pipeline.
type Stats struct {
	Frames          map[Reason]int64 `json:"frames"`
	FieldsRejected  map[string]int64 `json:"fields_rejected"`
	FieldsAccepted  int64            `json:"fields_accepted"`
	FieldsDerived   int64            `json:"fields_derived"`
	UnknownPIDs     int64            `json:"unknown_pids"`
	LastFrameAt     time.Time        `json:"last_frame_at,omitempty"`
	LastUnroutedAt  time.Time        `json:"last_unrouted_at,omitempty"`
	LastUnroutedEml string           `json:"last_unrouted_eml,omitempty"`
}

type counters struct {
	mu    sync.Mutex
	stats Stats
}

func newCounters() *counters {
	return &counters{stats: Stats{
		Frames:         make(map[Reason]int64, 4),
		FieldsRejected: make(map[string]int64),
	}}
}

func (c *counters) frame(reason Reason, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Frames[reason]++
	c.stats.LastFrameAt = at
}

func (c *counters) unrouted(maskedEmail string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.LastUnroutedAt = at
	c.stats.LastUnroutedEml = maskedEmail
}

func (c *counters) fields(accepted, derived, unknown int, rejectedByReason map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.FieldsAccepted += int64(accepted)
	c.stats.FieldsDerived += int64(derived)
	c.stats.UnknownPIDs += int64(unknown)
	for reason, n := range rejectedByReason {
		c.stats.FieldsRejected[reason] += int64(n)
	}
}

func (c *counters) snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Frames = maps.Clone(c.stats.Frames)
	s.FieldsRejected = maps.Clone(c.stats.FieldsRejected)
	return s
}
