// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

// Package logging provides the zerolog-based logger shared by every package.
//
// Initialize once from main:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// Then log through the package helpers or through a request-scoped logger:
//
//	logging.Info().Str("account", logging.SanitizeEmail(email)).Msg("account ready")
//	logging.Ctx(r.Context()).Debug().Str("reason", "unrouted_frame").Msg("frame ignored")
//
// Libraries that expect log/slog (suture) get an adapter through NewSlogLogger.
// Email addresses, session tokens and phone ids must go through the Sanitize
// helpers before they are attached to an entry.
package logging
