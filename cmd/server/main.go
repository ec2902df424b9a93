// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/config"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is still at its defaults here.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("config_file", cfg.File).
		Int("accounts", len(cfg.Accounts)).
		Int("session_ttl_seconds", cfg.Session.TTLSeconds).
		Int("session_capacity", cfg.Session.Capacity).
		Str("ingest_path", cfg.Ingest.Path).
		Bool("ingest_token", cfg.Security.IngestToken != "").
		Msg("Starting Torque Lite Pro")

	if cfg.Security.IngestToken == "" {
		logging.Warn().Msg("INGEST_TOKEN is not set: anyone who can reach the ingest endpoint can upload data")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS_ORIGINS=* lets any website read vehicle data and open the websocket stream")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize receiver")
	}

	if cfg.File != "" {
		stop, err := config.WatchConfigFile(cfg.File, applyReload)
		if err != nil {
			logging.Warn().Err(err).Str("path", cfg.File).Msg("Config file watch disabled")
		} else {
			defer func() { _ = stop() }()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	tree := a.tree()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := a.close(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Shutdown error")
	}
	logging.Info().Msg("Torque Lite Pro stopped")
}

// applyReload applies the settings that can change at runtime.
func applyReload(cfg *config.Config, err error) {
	if err != nil {
		logging.Warn().Err(err).Msg("Config reload rejected")
		return
	}
	if cfg.Logging.Level != logging.GetLevel().String() {
		logging.SetLevelString(cfg.Logging.Level)
		logging.Info().Str("level", cfg.Logging.Level).Msg("Log level changed")
	}
}
