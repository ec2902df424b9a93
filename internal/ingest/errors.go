// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package ingest

import "errors"

// Reason is the outcome code of one upload.
type Reason string

const (
	ReasonOK        Reason = "ok"
	ReasonMalformed Reason = "malformed_frame"
	ReasonUnrouted  Reason = "unrouted_frame"
	ReasonLiveness  Reason = "liveness"
)

var (
	// ErrMalformedFrame is returned for frames that cannot be processed at
	// all, such as a missing session.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrUnroutedFrame marks a frame whose eml matches no account. The
	// frame is still acknowledged.
	ErrUnroutedFrame = errors.New("unrouted frame")
)
