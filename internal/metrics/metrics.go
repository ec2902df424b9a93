// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Ingestion Metrics
	IngestFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torque_frames_total",
			Help: "Total number of Torque uploads by outcome",
		},
		[]string{"reason"}, // "ok", "malformed_frame", "unrouted_frame", "liveness"
	)

	IngestFieldsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torque_fields_rejected_total",
			Help: "Total number of fields dropped by the sanitizer",
		},
		[]string{"reason"}, // "not_a_number", "non_finite", "out_of_range", "negative", "empty"
	)

	IngestFieldsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "torque_fields_accepted_total",
			Help: "Total number of fields stored in a session record",
		},
	)

	IngestFieldsDerived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "torque_fields_derived_total",
			Help: "Total number of economy fields synthesized from their companion",
		},
	)

	IngestUnknownPIDs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "torque_unknown_pids_total",
			Help: "Total number of PID values whose code is not in the registry",
		},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "torque_ingest_duration_seconds",
			Help:    "Time spent turning one upload into a cache update",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		},
	)

	// Session Cache Metrics
	SessionUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torque_session_upserts_total",
			Help: "Total number of session record upserts",
		},
		[]string{"account", "reason"}, // reason: "created", "updated"
	)

	SessionEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torque_session_evictions_total",
			Help: "Total number of session records removed from a cache",
		},
		[]string{"account", "reason"}, // reason: "capacity", "expired"
	)

	SessionEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "torque_session_entries",
			Help: "Current number of session records, including expired ones not yet swept",
		},
		[]string{"account"},
	)

	SessionLiveEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "torque_session_live_entries",
			Help: "Current number of live session records",
		},
		[]string{"account"},
	)

	// Change Notification Metrics
	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torque_notifications_published_total",
			Help: "Total number of change notifications by publish result",
		},
		[]string{"result"}, // "success", "failure"
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordFrame records the outcome of one upload
func RecordFrame(reason string, duration time.Duration) {
	IngestFrames.WithLabelValues(reason).Inc()
	IngestDuration.Observe(duration.Seconds())
}

// RecordFieldRejected counts a field dropped by the sanitizer
func RecordFieldRejected(reason string) {
	IngestFieldsRejected.WithLabelValues(reason).Inc()
}

// RecordFields counts the stored, derived and unknown fields of one frame
func RecordFields(accepted, derived, unknown int) {
	IngestFieldsAccepted.Add(float64(accepted))
	IngestFieldsDerived.Add(float64(derived))
	IngestUnknownPIDs.Add(float64(unknown))
}

// RecordUpsert counts a session upsert
func RecordUpsert(account, reason string) {
	SessionUpserts.WithLabelValues(account, reason).Inc()
}

// RecordEviction counts a session record leaving a cache
func RecordEviction(account, reason string) {
	SessionEvictions.WithLabelValues(account, reason).Inc()
}

// UpdateSessionGauges sets the physical and live record counts of an account
func UpdateSessionGauges(account string, size, live int) {
	SessionEntries.WithLabelValues(account).Set(float64(size))
	SessionLiveEntries.WithLabelValues(account).Set(float64(live))
}

// RecordNotification records a change notification publish
func RecordNotification(err error) {
	if err != nil {
		NotificationsPublished.WithLabelValues("failure").Inc()
		return
	}
	NotificationsPublished.WithLabelValues("success").Inc()
}

// SetAppInfo publishes the build version
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// TrackUptime updates app_uptime_seconds from start until done is closed
func TrackUptime(start time.Time, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		AppUptime.Set(time.Since(start).Seconds())
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
