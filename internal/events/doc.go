// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package events publishes vehicle change notifications in process.

Every successful cache upsert yields a models.ChangeEvent with reason
"created" or "updated". The Notifier carries them over a Watermill GoChannel
pub/sub, JSON-encoded with goccy/go-json, so any number of subscribers (the
websocket relay, tests) can follow changes without coupling to the ingestion
pipeline.

Publishing never waits for subscribers: GoChannel hands messages to each
subscriber on its own goroutine. A circuit breaker guards the publish path so
a closed or failing pub/sub is skipped quickly instead of being retried on
every frame.
*/
package events
