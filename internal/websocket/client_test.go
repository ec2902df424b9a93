// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

func TestClient_EndToEnd(t *testing.T) {
	t.Parallel()
	h := NewHub()
	runHub(t, h)

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(h, conn, r.URL.Query().Get("account"))
		if err := h.Register(r.Context(), c); err != nil {
			_ = conn.Close()
			return
		}
		c.Start()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?account=acc-1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitForClients(t, h, 1)

	h.BroadcastChange(change("acc-2"))
	h.BroadcastChange(change("acc-1"))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var got struct {
		Type    string `json:"type"`
		Account string `json:"account"`
		Data    struct {
			Identity string `json:"identity"`
			Reason   string `json:"reason"`
		} `json:"data"`
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Type != MessageTypeVehicleChange || got.Account != "acc-1" || got.Data.Reason != "created" {
		t.Errorf("message = %s", data)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
		t.Fatal(err)
	}
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if string(data) != `{"type":"pong"}` {
		t.Errorf("reply = %s", data)
	}

	_ = conn.Close()
	waitForClients(t, h, 0)
}
