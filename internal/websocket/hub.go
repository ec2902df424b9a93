// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types.
const (
	MessageTypeVehicleChange = "vehicle_change"
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
	MessageTypeSubscribe     = "subscribe"
)

const broadcastBuffer = 256

// Message is the envelope of every frame on the wire.
type Message struct {
	Type    string `json:"type"`
	Account string `json:"account,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrHubNotRunning is returned by Register while the hub loop is stopped.
var ErrHubNotRunning = errors.New("websocket hub not running")

// RegisterTimeout bounds how long Register waits for the hub loop.
const RegisterTimeout = 5 * time.Second

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients   map[*Client]bool
	broadcast chan Message
	register  chan *Client
	running   atomic.Bool
	mu        sync.RWMutex
}

// NewHub creates a hub. Call RunWithContext to start it.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan Message, broadcastBuffer),
		register:  make(chan *Client),
	}
}

// Register hands c to the hub loop. It fails fast while the hub is stopped,
// for example between supervisor restarts, and otherwise waits at most
// RegisterTimeout or until ctx is done.
func (h *Hub) Register(ctx context.Context, c *Client) error {
	if !h.running.Load() {
		return ErrHubNotRunning
	}
	timer := time.NewTimer(RegisterTimeout)
	defer timer.Stop()
	select {
	case h.register <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrHubNotRunning
	}
}

// Unregister drops c and closes its send channel. Unknown clients are
// ignored.
func (h *Hub) Unregister(c *Client) {
	h.remove(c)
}

// Running reports whether the hub loop is accepting clients.
func (h *Hub) Running() bool {
	return h.running.Load()
}

// RunWithContext processes registrations and broadcasts until ctx is done.
// On return every client has been closed so a supervisor can restart the
// hub without orphaned connections.
//
// Lifecycle events are drained before broadcasts so a client registered
// before a message is sent always receives it.
func (h *Hub) RunWithContext(ctx context.Context) error {
	h.running.Store(true)
	defer h.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case c := <-h.register:
			h.add(c)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case c := <-h.register:
			h.add(c)
		case msg := <-h.broadcast:
			h.broadcastToClients(msg)
		}
	}
}

// Serve implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	return h.RunWithContext(ctx)
}

func (h *Hub) String() string { return "websocket-hub" }

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnections.Inc()
	logging.Info().Str("client", c.session).Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		c.closeSend()
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		metrics.WSConnections.Dec()
		logging.Info().Str("client", c.session).Int("total_clients", n).Msg("websocket client disconnected")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	n := h.ClientCount()
	h.closeAllClients()

	reason := ShutdownReasonContextCanceled
	if ctx.Err() == context.DeadlineExceeded {
		reason = ShutdownReasonContextDeadline
	}
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(reason)).
		Int("clients_closed", n).
		Msg("websocket hub stopped")
}

// sorted returns the clients in connection order. Callers hold h.mu.
func (h *Hub) sorted() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })
	return clients
}

func (h *Hub) broadcastToClients(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.sorted() {
		if !c.accepts(msg.Account) {
			continue
		}
		if !c.enqueue(msg) {
			// Full buffer: drop the client, it reconnects and rereads state.
			c.closeSend()
			delete(h.clients, c)
			metrics.WSConnections.Dec()
			metrics.WSErrors.WithLabelValues("slow_client").Inc()
			logging.Warn().Str("client", c.session).Msg("websocket client too slow, disconnected")
		}
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.sorted() {
		c.closeSend()
		delete(h.clients, c)
		metrics.WSConnections.Dec()
	}
}

// Broadcast queues msg for delivery. It never blocks; when the queue is
// full the message is dropped and false is returned.
func (h *Hub) Broadcast(msg Message) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		metrics.WSErrors.WithLabelValues("broadcast_full").Inc()
		logging.Warn().Str("message_type", msg.Type).Msg("broadcast channel full, dropping message")
		return false
	}
}

// BroadcastChange queues a vehicle change for the clients following its
// account.
func (h *Hub) BroadcastChange(ev models.ChangeEvent) bool {
	return h.Broadcast(Message{Type: MessageTypeVehicleChange, Account: ev.Account, Data: ev})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage encodes msg as JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
