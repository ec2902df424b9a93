// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

// Package validation wraps a process-wide go-playground/validator instance.
//
// Field names in errors follow the koanf tag of the field, so a failure
// reads the same way as the YAML key or the environment mapping:
//
//	session.ttl_seconds must be at least 60
//
// Custom tags:
//
//	ingest_path  absolute URL path outside /api/v1
package validation
