// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

// Package cache holds the in-memory state of the receiver.
//
// LRU is a generic TTL-aware least-recently-used map. SessionCache builds on
// it to keep the latest SessionRecord per vehicle identity of one account,
// with per-identity write serialization through KeyedMutex.
//
// Nothing here persists; a restart starts from an empty cache.
package cache
