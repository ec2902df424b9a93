// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
)

// ChiMiddlewareConfig configures CORS and rate limiting.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSMaxAge         int // seconds

	// Per client IP. Zero requests disables the limiter.
	IngestRequests int
	IngestWindow   time.Duration
	ReadRequests   int
	ReadWindow     time.Duration
}

// DefaultChiMiddlewareConfig returns the defaults. Torque Pro uploads
// about once a second per vehicle, so several vehicles behind one NAT
// still fit.
func DefaultChiMiddlewareConfig() ChiMiddlewareConfig {
	return ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSMaxAge:         86400,
		IngestRequests:     600,
		IngestWindow:       time.Minute,
		ReadRequests:       300,
		ReadWindow:         time.Minute,
	}
}

// ChiMiddleware builds the chi middleware from a config.
type ChiMiddleware struct {
	config ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory. Without configured
// origins no CORS headers are sent, so browsers only reach the read API
// from the same origin.
func NewChiMiddleware(config ChiMiddlewareConfig) *ChiMiddleware {
	m := &ChiMiddleware{
		config: config,
		cors:   func(next http.Handler) http.Handler { return next },
	}
	if len(config.CORSAllowedOrigins) > 0 {
		m.cors = cors.Handler(cors.Options{
			AllowedOrigins: config.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         config.CORSMaxAge,
		})
	}
	return m
}

// CORS returns the go-chi/cors handler.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimitIngest limits uploads per client IP. Rejections get a plain
// text 429 since Torque Pro does not read JSON.
func (m *ChiMiddleware) RateLimitIngest() func(http.Handler) http.Handler {
	return limit(m.config.IngestRequests, m.config.IngestWindow, "ingest", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
	})
}

// RateLimitRead limits the read API per client IP.
func (m *ChiMiddleware) RateLimitRead() func(http.Handler) http.Handler {
	return limit(m.config.ReadRequests, m.config.ReadWindow, "read", func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
	})
}

func limit(requests int, window time.Duration, endpoint string, reject http.HandlerFunc) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RecordRateLimitHit(endpoint)
			logging.Ctx(r.Context()).Debug().Str("endpoint", endpoint).Str("remote", r.RemoteAddr).Msg("rate limit exceeded")
			reject(w, r)
		}),
	)
}
