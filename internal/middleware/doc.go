// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package middleware provides the HTTP middleware shared by every route.

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern
  - Tracing: OpenTelemetry server spans via otelhttp
  - IngestToken: optional shared secret on the Torque upload endpoint

The router applies them in this order:

	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing("torque-lite-pro"))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
