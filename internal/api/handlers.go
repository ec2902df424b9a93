// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/account"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/diagnostics"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/events"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/ingest"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	ws "github.com/Marlboro62/Torque-Lite-Pro/internal/websocket"
)

// DefaultMaxBodyBytes bounds an upload body. A full Torque frame with
// every PID is a few kilobytes.
const DefaultMaxBodyBytes = 64 << 10

// Deps are the collaborators of the handlers. Notifier and Hub are
// optional; without a hub the websocket endpoint answers 503.
type Deps struct {
	Accounts *account.Manager
	Pipeline *ingest.Pipeline
	Notifier *events.Notifier
	Hub      *ws.Hub

	Runtime        diagnostics.Runtime
	AllowedOrigins []string
	MaxBodyBytes   int64
	Now            func() time.Time
}

// Handler serves every route.
type Handler struct {
	deps      Deps
	startTime time.Time
	upgrader  websocket.Upgrader
}

// NewHandler validates deps and creates the handlers.
func NewHandler(deps Deps) (*Handler, error) {
	if deps.Accounts == nil {
		return nil, fmt.Errorf("%w: accounts", ErrMissingDependency)
	}
	if deps.Pipeline == nil {
		return nil, fmt.Errorf("%w: pipeline", ErrMissingDependency)
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &Handler{deps: deps, startTime: deps.Now()}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      h.checkWebSocketOrigin,
	}
	return h, nil
}

// checkWebSocketOrigin accepts browsers whose Origin is configured, or
// any Origin when "*" is configured. Browsers always send Origin, so a
// missing one is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Ctx(r.Context()).Warn().Msg("websocket connection rejected: missing Origin header")
		return false
	}
	for _, allowed := range h.deps.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Ctx(r.Context()).Warn().Str("origin", origin).Msg("websocket connection rejected from unauthorized origin")
	return false
}

// HealthLive reports that the process serves requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"alive":          true,
		"uptime_seconds": h.deps.Now().Sub(h.startTime).Seconds(),
		"version":        h.deps.Runtime.Version,
	})
}

// Diagnostics renders the redacted state snapshot.
func (h *Handler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(diagnostics.Build(diagnostics.Sources{
		Accounts: h.deps.Accounts,
		Pipeline: h.deps.Pipeline,
		Notifier: h.deps.Notifier,
		Runtime:  h.deps.Runtime,
		Now:      h.deps.Now,
	}))
}

// WebSocket upgrades the connection and registers a client following the
// account query parameter, or every account when it is absent.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.deps.Hub == nil {
		rw.ServiceUnavailable("websocket service unavailable")
		return
	}

	filter := r.URL.Query().Get("account")
	if filter != "" {
		acct, err := h.deps.Accounts.Lookup(filter)
		if err != nil {
			rw.NotFound("account not found")
			return
		}
		filter = acct.ID
	}

	if !h.deps.Hub.Running() {
		rw.ServiceUnavailable("websocket service unavailable")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already wrote the error response.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := ws.NewClient(h.deps.Hub, conn, filter)
	if err := h.deps.Hub.Register(r.Context(), client); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket client refused")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "hub unavailable"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}
	client.Start()
}
