// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

// Package services adapts blocking components to suture.Service.
//
// HTTPServerService turns ListenAndServe/Shutdown into a context-aware
// Serve. SweeperService periodically drops expired session-cache entries
// for one account and refreshes the session gauges.
//
// The websocket hub and the change relay implement suture.Service
// themselves and need no wrapper.
package services
