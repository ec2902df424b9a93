// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Command server runs the Torque Lite Pro receiver.

The Torque Pro app uploads OBD-II readings and GPS to the ingest endpoint.
Every configured account gets its own bounded session cache, and the latest
state of each vehicle is served over a read API and a websocket stream.

# Startup

 1. Configuration: koanf defaults, config file, environment
 2. Logging: zerolog
 3. Tracing: OpenTelemetry provider (noop unless OTEL_ENABLED)
 4. Change notifier: Watermill gochannel behind a circuit breaker
 5. Accounts: one session cache per account
 6. Ingestion pipeline and chi router
 7. Supervisor tree: sweepers, websocket hub and relay, HTTP server

SIGINT or SIGTERM cancels the tree; the HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT, then the notifier and the tracer provider are
flushed.

# Example

	export TORQUE_ACCOUNTS=me@example.com:fr
	export INGEST_TOKEN=$(openssl rand -hex 16)
	./server

In Torque Pro, set "Webserver URL" to
http://receiver:8080/api/torque_pro?token=<INGEST_TOKEN> and the
"User Email Address" to me@example.com.

Config file changes to logging.level are applied without a restart.
*/
package main
