// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package metrics exposes the receiver's Prometheus metrics.

Collectors are registered on the default registry through promauto and
served at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Requests (counter). Labels: method, endpoint, status_code
  - api_request_duration_seconds: Latency (histogram). Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate-limited requests (counter). Labels: endpoint

Ingestion Metrics:
  - torque_frames_total: Uploads by outcome (counter). Labels: reason
  - torque_fields_rejected_total: Sanitizer rejects (counter). Labels: reason
  - torque_fields_accepted_total, torque_fields_derived_total, torque_unknown_pids_total
  - torque_ingest_duration_seconds: Pipeline latency (histogram)

Session Cache Metrics:
  - torque_session_upserts_total: Labels: account, reason (created|updated)
  - torque_session_evictions_total: Labels: account, reason (capacity|expired)
  - torque_session_entries, torque_session_live_entries: Labels: account

Notification and WebSocket Metrics:
  - torque_notifications_published_total: Labels: result
  - websocket_connections, websocket_messages_sent_total,
    websocket_messages_received_total, websocket_errors_total

System Metrics:
  - app_info: Labels: version, go_version
  - app_uptime_seconds

# Usage

	start := time.Now()
	outcome := pipeline.Ingest(ctx, frame)
	metrics.RecordFrame(outcome.Reason, time.Since(start))
*/
package metrics
