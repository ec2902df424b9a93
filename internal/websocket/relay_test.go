// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

type chanSource struct {
	ch  chan models.ChangeEvent
	err error
}

func (s *chanSource) Subscribe(context.Context) (<-chan models.ChangeEvent, error) {
	return s.ch, s.err
}

func TestRelay_ForwardsUntilFeedCloses(t *testing.T) {
	t.Parallel()
	h := NewHub()
	runHub(t, h)
	c := testClient(h, "", 4)
	mustRegister(t, h, c)
	waitForClients(t, h, 1)

	src := &chanSource{ch: make(chan models.ChangeEvent, 1)}
	done := make(chan error, 1)
	go func() { done <- NewRelay(h, src).Serve(context.Background()) }()

	src.ch <- change("acc-1")
	msg := receive(t, c)
	ev, ok := msg.Data.(models.ChangeEvent)
	if !ok || ev.Account != "acc-1" {
		t.Errorf("relayed %+v", msg)
	}

	close(src.ch)
	select {
	case err := <-done:
		if !errors.Is(err, ErrFeedClosed) {
			t.Errorf("Serve() = %v, want ErrFeedClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}

func TestRelay_StopsOnCancel(t *testing.T) {
	t.Parallel()
	src := &chanSource{ch: make(chan models.ChangeEvent)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewRelay(NewHub(), src).Serve(ctx) }()
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestRelay_SubscribeError(t *testing.T) {
	t.Parallel()
	want := errors.New("closed")
	err := NewRelay(NewHub(), &chanSource{err: want}).Serve(context.Background())
	if !errors.Is(err, want) {
		t.Errorf("Serve() = %v, want %v", err, want)
	}
}
