// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package identity turns the profile fields of a Torque upload into a stable
vehicle key.

Several phones, and several Torque accounts, may report to one receiver.
Each upload carries a free-form profile name, an optional vehicle id and an
optional account email. Resolve folds those into a models.VehicleIdentity
whose Key is:

	<slug>_<id-prefix>[_<email-salt>]

The slug is the profile name with accents stripped, case folded and every
run of non-alphanumerics collapsed to one dash. The id prefix is the first
four runes of the id, so "veh-001" and "veh-" collide on purpose. The salt
is six hex digits of an FNV-1a hash of the email, which keeps identically
named cars of two different accounts apart.

Torque sometimes sends placeholder names such as "Vehicle" or "Vehicle 12"
before the real profile is loaded. NameMemory remembers the last good name
per vehicle id and per email so those frames still land on the right key.
*/
package identity
