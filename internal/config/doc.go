// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package config loads the receiver configuration.

Sources are layered with koanf, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/torque-lite-pro/config.yaml
 3. Environment variables from a fixed mapping table

The result is validated once at startup. Request handling never re-checks it.

# YAML

	server:
	  host: 0.0.0.0
	  port: 8080
	ingest:
	  path: /api/torque_pro
	session:
	  ttl_seconds: 1800
	  capacity: 100
	accounts:
	  - email: you@example.com
	    language: fr
	    imperial: false
	security:
	  ingest_token: change-me
	  cors_origins: [https://dash.example.com]

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Ingest and sessions:
  - INGEST_PATH: upload endpoint (default /api/torque_pro)
  - INGEST_MAX_BODY_BYTES
  - SESSION_TTL_SECONDS: 60 to 86400 (default 1800)
  - MAX_SESSIONS: 10 to 1000 per account (default 100)
  - SWEEP_INTERVAL: expired-entry sweep period (default 1m)

Accounts:
  - TORQUE_ACCOUNTS: comma separated email:language[:imperial], for
    example "me@example.com:fr,you@example.com:en:imperial". Replaces any
    accounts from the file.

Security:
  - INGEST_TOKEN: shared secret for uploads and diagnostics
  - CORS_ORIGINS: comma separated
  - RATE_LIMIT_INGEST, RATE_LIMIT_READ: requests per RATE_LIMIT_WINDOW

Logging:
  - LOG_LEVEL, LOG_FORMAT (json or console), LOG_CALLER

Telemetry:
  - OTEL_ENABLED, OTEL_EXPORTER (grpc or http), OTEL_EXPORTER_OTLP_ENDPOINT
  - OTEL_SERVICE_NAME, OTEL_SAMPLING_RATE, ENVIRONMENT

Notifications:
  - NOTIFY_BUFFER, NOTIFY_SUBSCRIBER_BUFFER
*/
package config
