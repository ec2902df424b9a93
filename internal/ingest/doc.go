// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package ingest turns one Torque Pro upload into a session cache update.

Every frame walks the same states:

	Received -> Parsed -> Rejected (malformed)
	                   -> Sanitized -> Resolved -> Unrouted
	                                            -> Merged -> Acknowledged

Parsing extracts the control keys (session, eml, id, profile name, lang,
time, app version and the lat/lon/alt/acc fallbacks) and every k<hex> PID.
A frame without a session is malformed and is the only outcome that is not
acknowledged with "OK!".

Sanitizing drops individual fields: NaN, infinities, text where a number is
expected, coordinates out of range and negative accuracy are recorded as
FieldErrors and counted, while the rest of the frame goes on. A GPS fix is
formed only from a valid latitude and longitude pair; otherwise the cached
fix is left untouched.

Resolving routes the frame to an account by eml and computes the vehicle
identity. Frames for unknown accounts are unrouted: they are counted and
logged with a masked email but never written to a cache.

Merging converts the values to samples in the account or frame language,
synthesizes missing economy companions, upserts the record and publishes a
created or updated change event.

The pipeline does no blocking I/O and is safe for concurrent use; only
upserts for the same identity are serialized, inside the cache.
*/
package ingest
