// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package supervisor runs the receiver's long-lived goroutines under a suture
v4 supervisor tree.

	torque-lite-pro (root)
	├── data-layer       one session sweeper per account
	├── messaging-layer  websocket hub, change relay
	└── api-layer        HTTP server

A service that returns an error is restarted with backoff. Layers are
separate supervisors, so a relay crash loop never takes the HTTP server
down with it. Supervisor events are logged through sutureslog.

Usage:

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewSweeperService(acct.ID, acct.Cache(), time.Minute))
	tree.AddMessagingService(hub)
	tree.AddMessagingService(websocket.NewRelay(hub, notifier))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err := tree.Serve(ctx)
*/
package supervisor
