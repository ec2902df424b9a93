// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/account"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/api"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/cache"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/config"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/diagnostics"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/events"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/ingest"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/supervisor"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/supervisor/services"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/telemetry"
	ws "github.com/Marlboro62/Torque-Lite-Pro/internal/websocket"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

// app is the wired receiver.
type app struct {
	cfg       *config.Config
	accounts  *account.Manager
	notifier  *events.Notifier
	pipeline  *ingest.Pipeline
	hub       *ws.Hub
	handler   http.Handler
	telemetry *telemetry.Provider
}

// newApp builds every component described by cfg. Nothing runs until
// the supervisor tree is served.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Telemetry.Environment,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	notifier := events.NewNotifier(events.Config{
		OutputBuffer:     cfg.Notifications.Buffer,
		SubscriberBuffer: cfg.Notifications.SubscriberBuffer,
		FailureThreshold: cfg.Notifications.FailureThreshold,
		BreakerTimeout:   cfg.Notifications.BreakerTimeout,
	}, logging.NewWatermillAdapter())

	accounts, err := account.NewManager(accountConfigs(cfg.Accounts), account.Options{
		TTL:      cfg.Session.TTL(),
		Capacity: cfg.Session.Capacity,
		OnEvict:  logEviction,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("accounts: %w", err), notifier.Close(), tp.Shutdown(ctx))
	}

	pipeline, err := ingest.New(ingest.Options{
		Accounts:  accounts,
		Publisher: notifier,
		Tracer:    telemetry.Tracer("github.com/Marlboro62/Torque-Lite-Pro/internal/ingest"),
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("pipeline: %w", err), notifier.Close(), tp.Shutdown(ctx))
	}

	hub := ws.NewHub()
	handler, err := api.NewHandler(api.Deps{
		Accounts: accounts,
		Pipeline: pipeline,
		Notifier: notifier,
		Hub:      hub,
		Runtime: diagnostics.Runtime{
			IngestPath:    cfg.Ingest.Path,
			RequiresToken: cfg.Security.IngestToken != "",
			Version:       version,
			StartedAt:     time.Now(),
		},
		AllowedOrigins: cfg.Security.CORSOrigins,
		MaxBodyBytes:   cfg.Ingest.MaxBodyBytes,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("api: %w", err), notifier.Close(), tp.Shutdown(ctx))
	}

	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.IngestRequests = cfg.Security.RateLimitIngest
	mw.IngestWindow = cfg.Security.RateLimitWindow
	mw.ReadRequests = cfg.Security.RateLimitRead
	mw.ReadWindow = cfg.Security.RateLimitWindow

	router := api.NewRouter(handler, api.RouterConfig{
		IngestPath:  cfg.Ingest.Path,
		IngestToken: cfg.Security.IngestToken,
		ServiceName: cfg.Telemetry.ServiceName,
		Middleware:  mw,
	})

	return &app{
		cfg:       cfg,
		accounts:  accounts,
		notifier:  notifier,
		pipeline:  pipeline,
		hub:       hub,
		handler:   router.Routes(),
		telemetry: tp,
	}, nil
}

func accountConfigs(in []config.AccountConfig) []account.Config {
	out := make([]account.Config, 0, len(in))
	for _, a := range in {
		out = append(out, account.Config{Email: a.Email, Language: a.Language, Imperial: a.Imperial})
	}
	return out
}

func logEviction(acct, identity string, reason cache.EvictReason) {
	metrics.RecordEviction(acct, string(reason))
	logging.Debug().
		Str("account", acct).
		Str("identity", identity).
		Str("reason", string(reason)).
		Msg("Session evicted")
}

// tree puts every long-running component under supervision.
func (a *app) tree() *supervisor.Tree {
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
	})

	for _, acct := range a.accounts.Accounts() {
		tree.AddDataService(services.NewSweeperService(acct.ID, acct.Cache(), a.cfg.Session.SweepInterval))
	}

	tree.AddMessagingService(a.hub)
	tree.AddMessagingService(ws.NewRelay(a.hub, a.notifier))

	server := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           a.handler,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       a.cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, a.cfg.Server.ShutdownTimeout))
	return tree
}

// close releases what the tree does not own.
func (a *app) close(ctx context.Context) error {
	return errors.Join(a.notifier.Close(), a.telemetry.Shutdown(ctx))
}
