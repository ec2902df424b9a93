// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/cache"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestSweeperService_SweepOnce(t *testing.T) {
	t.Parallel()
	clock := &manualClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c, err := cache.NewSessionCache(cache.SessionConfig{TTL: time.Minute, Capacity: 10, Now: clock.Now})
	if err != nil {
		t.Fatalf("NewSessionCache() error = %v", err)
	}

	c.Upsert(models.VehicleIdentity{Slug: "old", IDPrefix: "0000"}, cache.Update{Session: "s1"})
	clock.Advance(50 * time.Second)
	c.Upsert(models.VehicleIdentity{Slug: "new", IDPrefix: "0000"}, cache.Update{Session: "s2"})
	clock.Advance(20 * time.Second)

	const account = "sweeper-test-account"
	svc := NewSweeperService(account, c, time.Minute)
	if removed := svc.SweepOnce(); removed != 1 {
		t.Errorf("SweepOnce() = %d, want 1", removed)
	}
	if got := testutil.ToFloat64(metrics.SessionEntries.WithLabelValues(account)); got != 1 {
		t.Errorf("session entries gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.SessionLiveEntries.WithLabelValues(account)); got != 1 {
		t.Errorf("live entries gauge = %v, want 1", got)
	}
	if svc.String() != "session-sweeper-"+account {
		t.Errorf("String() = %q", svc.String())
	}
}

type countingCache struct{ sweeps atomic.Int32 }

func (c *countingCache) Sweep() int { c.sweeps.Add(1); return 0 }
func (c *countingCache) Size() int  { return 0 }
func (c *countingCache) Len() int   { return 0 }

func TestSweeperService_Serve(t *testing.T) {
	t.Parallel()
	c := &countingCache{}
	svc := NewSweeperService("sweeper-serve-account", c, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for c.sweeps.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if c.sweeps.Load() < 3 {
		t.Errorf("sweeps = %d, want at least 3", c.sweeps.Load())
	}
}

func TestNewSweeperService_DefaultInterval(t *testing.T) {
	t.Parallel()
	if svc := NewSweeperService("a", &countingCache{}, 0); svc.interval != DefaultSweepInterval {
		t.Errorf("interval = %v", svc.interval)
	}
}
