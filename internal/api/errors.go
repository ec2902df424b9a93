// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package api

import "errors"

// ErrMissingDependency is returned by NewHandler when a required
// collaborator is nil.
var ErrMissingDependency = errors.New("api: missing dependency")
