// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package websocket

import (
	"context"
	"errors"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// ErrFeedClosed is returned by Relay.Serve when the source stops
// delivering before the context is done.
var ErrFeedClosed = errors.New("change feed closed")

// Source yields change events until ctx is done.
type Source interface {
	Subscribe(ctx context.Context) (<-chan models.ChangeEvent, error)
}

// Relay forwards change events from a Source to the hub.
type Relay struct {
	hub    *Hub
	source Source
}

// NewRelay creates a relay from source to hub.
func NewRelay(hub *Hub, source Source) *Relay {
	return &Relay{hub: hub, source: source}
}

// Serve subscribes to the source and broadcasts until ctx is done.
func (r *Relay) Serve(ctx context.Context) error {
	events, err := r.source.Subscribe(ctx)
	if err != nil {
		return err
	}
	logging.Info().Str("component", r.String()).Msg("relaying change events to websocket clients")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return ErrFeedClosed
			}
			r.hub.BroadcastChange(ev)
		}
	}
}

func (r *Relay) String() string { return "websocket-relay" }
