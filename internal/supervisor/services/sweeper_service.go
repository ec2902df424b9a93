// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package services

import (
	"context"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
)

// DefaultSweepInterval applies when NewSweeperService gets a
// non-positive interval.
const DefaultSweepInterval = time.Minute

// Sweepable is satisfied by *cache.SessionCache.
type Sweepable interface {
	// Sweep removes expired entries and returns how many it removed.
	Sweep() int
	// Size counts entries including expired ones, Len only live ones.
	Size() int
	Len() int
}

// SweeperService sweeps one account's session cache on a ticker.
type SweeperService struct {
	account  string
	cache    Sweepable
	interval time.Duration
}

// NewSweeperService creates a sweeper for account.
func NewSweeperService(account string, cache Sweepable, interval time.Duration) *SweeperService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SweeperService{account: account, cache: cache, interval: interval}
}

// Serve sweeps once immediately, then every interval until ctx ends.
func (s *SweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.SweepOnce()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce runs a single sweep and refreshes the account's gauges.
func (s *SweeperService) SweepOnce() int {
	removed := s.cache.Sweep()
	size, live := s.cache.Size(), s.cache.Len()
	metrics.UpdateSessionGauges(s.account, size, live)
	if removed > 0 {
		logging.Debug().
			Str("account", s.account).
			Int("removed", removed).
			Int("remaining", size).
			Msg("Swept expired sessions")
	}
	return removed
}

func (s *SweeperService) String() string { return "session-sweeper-" + s.account }
