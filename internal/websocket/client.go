// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package websocket

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Inbound message budget per client.
const (
	InboundRate  rate.Limit = 5
	InboundBurst            = 10
)

// clientIDCounter orders clients for deterministic fan-out.
var clientIDCounter atomic.Uint64

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	id      uint64
	session string
	hub     *Hub
	conn    *websocket.Conn
	send    chan Message
	limiter *rate.Limiter

	mu      sync.RWMutex
	account string

	// sendMu guards closed and every send on or close of send.
	sendMu sync.Mutex
	closed bool
}

// NewClient creates a client following account, or every account when
// account is empty.
func NewClient(hub *Hub, conn *websocket.Conn, account string) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		session: uuid.NewString(),
		hub:     hub,
		conn:    conn,
		send:    make(chan Message, sendBuffer),
		limiter: rate.NewLimiter(InboundRate, InboundBurst),
		account: account,
	}
}

// ID returns the connection order of the client.
func (c *Client) ID() uint64 { return c.id }

// Session returns the client's random session id used in logs.
func (c *Client) Session() string { return c.session }

// Account returns the account filter, empty for all accounts.
func (c *Client) Account() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account
}

func (c *Client) setAccount(account string) {
	c.mu.Lock()
	c.account = account
	c.mu.Unlock()
}

// enqueue delivers msg without blocking. It reports false when the buffer
// is full or the client is closed.
func (c *Client) enqueue(msg Message) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel once. It reports whether this call
// closed it.
func (c *Client) closeSend() bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	c.closed = true
	close(c.send)
	return true
}

// isClosed reports whether the hub has let go of the client.
func (c *Client) isClosed() bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.closed
}

func (c *Client) accepts(account string) bool {
	filter := c.Account()
	return filter == "" || account == "" || filter == account
}

// handle applies one inbound message. It reports false when the message
// was dropped by the rate limiter or could not be decoded.
func (c *Client) handle(data []byte) bool {
	metrics.WSMessagesReceived.Inc()
	if !c.limiter.Allow() {
		metrics.WSErrors.WithLabelValues("rate_limited").Inc()
		return false
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		metrics.WSErrors.WithLabelValues("decode").Inc()
		logging.Debug().Err(err).Str("client", c.session).Msg("ignoring undecodable websocket message")
		return false
	}

	switch msg.Type {
	case MessageTypePing:
		if !c.enqueue(Message{Type: MessageTypePong}) {
			metrics.WSErrors.WithLabelValues("pong_dropped").Inc()
		}
	case MessageTypeSubscribe:
		c.setAccount(msg.Account)
		logging.Debug().Str("client", c.session).Str("account", msg.Account).Msg("websocket subscription changed")
	}
	return true
}

func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				metrics.WSErrors.WithLabelValues("read").Inc()
				logging.Warn().Err(err).Str("client", c.session).Msg("unexpected websocket close")
			}
			return
		}
		c.handle(data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := MarshalMessage(msg)
			if err != nil {
				metrics.WSErrors.WithLabelValues("encode").Inc()
				logging.Error().Err(err).Str("message_type", msg.Type).Msg("failed to encode websocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				metrics.WSErrors.WithLabelValues("write").Inc()
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
