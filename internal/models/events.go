// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package models

import "time"

// ChangeReason tells subscribers whether a vehicle is new or was refreshed.
type ChangeReason string

const (
	ChangeCreated ChangeReason = "created"
	ChangeUpdated ChangeReason = "updated"
)

// ChangeEvent is published after every successful cache upsert.
type ChangeEvent struct {
	Account  string       `json:"account"`
	Identity string       `json:"identity"`
	Reason   ChangeReason `json:"reason"`
	At       time.Time    `json:"at"`
}
