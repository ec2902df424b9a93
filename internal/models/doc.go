// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package models defines the data shared by the ingestion core and its readers.

# Upload

  - RawFrame: the request parameters of one Torque upload, query and form
    merged, with the receive time and HTTP method

# Vehicle State

  - VehicleIdentity: slug, id prefix and email salt; Key() is the cache key
  - NormalizedSample: one field value after sanitation and unit conversion,
    with Kind telling numeric, text or unsupported apart
  - GPSFix: position, altitude, accuracy, speed and fix time
  - SessionRecord: the latest merged state of one vehicle

# Change Notifications

  - ChangeEvent: account, identity and reason (created or updated),
    published after every merge

Records handed to readers are copies. Nothing in this package locks.
*/
package models
