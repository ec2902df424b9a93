// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeServer struct {
	listenErr   error
	shutdownErr error
	block       bool

	started   chan struct{}
	stop      chan struct{}
	stopOnce  sync.Once
	listens   atomic.Int32
	shutdowns atomic.Int32
}

func newFakeServer(block bool) *fakeServer {
	return &fakeServer{block: block, started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	if f.block {
		<-f.stop
		return http.ErrServerClosed
	}
	return nil
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.stopOnce.Do(func() { close(f.stop) })
	return f.shutdownErr
}

func (f *fakeServer) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe not called")
	}
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestNewHTTPServerService_Defaults(t *testing.T) {
	t.Parallel()
	for _, timeout := range []time.Duration{0, -time.Second} {
		if svc := NewHTTPServerService(newFakeServer(false), timeout); svc.shutdownTimeout != DefaultShutdownTimeout {
			t.Errorf("timeout %v: shutdownTimeout = %v", timeout, svc.shutdownTimeout)
		}
	}
	svc := NewHTTPServerService(&http.Server{Addr: "127.0.0.1:8080", ReadHeaderTimeout: time.Second}, time.Second)
	if svc.addr != "127.0.0.1:8080" || svc.String() != "http-server" {
		t.Errorf("addr = %q, String() = %q", svc.addr, svc.String())
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("graceful shutdown on cancel", func(t *testing.T) {
		t.Parallel()
		srv := newFakeServer(true)
		svc := NewHTTPServerService(srv, time.Second)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()
		srv.waitStarted(t)
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve() did not return")
		}
		if srv.listens.Load() != 1 || srv.shutdowns.Load() != 1 {
			t.Errorf("listens = %d, shutdowns = %d", srv.listens.Load(), srv.shutdowns.Load())
		}
	})

	t.Run("listen error", func(t *testing.T) {
		t.Parallel()
		want := errors.New("bind: address already in use")
		srv := newFakeServer(false)
		srv.listenErr = want
		if err := NewHTTPServerService(srv, time.Second).Serve(context.Background()); !errors.Is(err, want) {
			t.Errorf("Serve() = %v, want %v", err, want)
		}
	})

	t.Run("server closed on its own", func(t *testing.T) {
		t.Parallel()
		if err := NewHTTPServerService(newFakeServer(false), time.Second).Serve(context.Background()); err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	})

	t.Run("shutdown error", func(t *testing.T) {
		t.Parallel()
		want := errors.New("shutdown timeout")
		srv := newFakeServer(true)
		srv.shutdownErr = want
		svc := NewHTTPServerService(srv, time.Second)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()
		srv.waitStarted(t)
		cancel()

		if err := <-done; !errors.Is(err, want) {
			t.Errorf("Serve() = %v, want %v", err, want)
		}
	})
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	t.Parallel()
	srv := newFakeServer(true)
	sup := suture.New("test", suture.Spec{FailureBackoff: 10 * time.Millisecond, Timeout: 2 * time.Second})
	sup.Add(NewHTTPServerService(srv, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)
	srv.waitStarted(t)
	cancel()
	<-errCh

	if srv.shutdowns.Load() != 1 {
		t.Errorf("shutdowns = %d, want 1", srv.shutdowns.Load())
	}
}
