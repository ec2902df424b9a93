// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/middleware"
)

// DefaultIngestPath is where Torque Pro uploads unless configured.
const DefaultIngestPath = "/api/torque_pro"

// RouterConfig configures the router.
type RouterConfig struct {
	IngestPath  string
	IngestToken string
	ServiceName string
	Middleware  ChiMiddlewareConfig
}

// Router wires the handlers to chi.
type Router struct {
	handler *Handler
	config  RouterConfig
	chi     *ChiMiddleware
}

// NewRouter creates a router for handler.
func NewRouter(handler *Handler, config RouterConfig) *Router {
	if config.IngestPath == "" {
		config.IngestPath = DefaultIngestPath
	}
	if config.ServiceName == "" {
		config.ServiceName = "torque-lite-pro"
	}
	return &Router{handler: handler, config: config, chi: NewChiMiddleware(config.Middleware)}
}

// Routes builds the http.Handler.
func (router *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(router.config.ServiceName))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	// Torque Pro uploads: plain text replies, no CORS.
	r.Group(func(r chi.Router) {
		r.Use(router.chi.RateLimitIngest())
		r.Use(middleware.IngestToken(router.config.IngestToken))
		r.Get(router.config.IngestPath, router.handler.TorqueUpload)
		r.Post(router.config.IngestPath, router.handler.TorqueUpload)
		r.Head(router.config.IngestPath, router.handler.TorqueUpload)
	})

	r.Get("/api/v1/health/live", router.handler.HealthLive)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chi.CORS())
		r.Use(router.chi.RateLimitRead())

		r.Get("/ws", router.handler.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Compress(5, "application/json"))
			r.Get("/accounts", router.handler.Accounts)
			r.Get("/accounts/{account}", router.handler.Account)
			r.Get("/accounts/{account}/vehicles", router.handler.Vehicles)
			r.Get("/accounts/{account}/vehicles/{identity}", router.handler.Vehicle)
			r.With(middleware.IngestToken(router.config.IngestToken)).Get("/diagnostics", router.handler.Diagnostics)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	return r
}
