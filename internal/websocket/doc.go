// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package websocket streams vehicle change notifications to browsers.

The package uses a hub-and-spoke layout built on gorilla/websocket:

  - Hub: owns the client set and fans every message out to the clients
    whose account filter accepts it
  - Client: one connection with a read goroutine and a write goroutine
  - Relay: suture service that drains the events notifier into the hub

Messages are JSON objects with a type, an optional account and a payload:

	{"type":"vehicle_change","account":"you-example-com","data":{...}}

Clients may send:

  - {"type":"ping"}: answered with {"type":"pong"}
  - {"type":"subscribe","account":"<id>"}: only receive that account's
    vehicles; an empty account receives everything

Inbound messages are limited per client with a token bucket. Messages over
the limit are dropped and counted under websocket_errors_total.

Slow clients whose send buffer is full are disconnected by the hub rather
than holding up the broadcast.
*/
package websocket
