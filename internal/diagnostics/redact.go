// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

// Package diagnostics renders a redacted snapshot of the receiver state.
// Everything that leaves this package has emails, session and vehicle ids,
// tokens, VINs and coordinates replaced by a placeholder.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/pid"
)

// Redacted replaces every masked value.
const Redacted = "**REDACTED**"

// TruncatedKey marks a mapping cut down to its first entries.
const TruncatedKey = "__truncated__"

// Entry caps of the per-vehicle mappings.
const (
	MaxValues  = 120
	MaxMeta    = 200
	MaxUnknown = 80
)

var redactKeys = map[string]bool{
	"email": true, "eml": true,
	"session": true, "id": true, "token": true, "access_token": true, "refresh_token": true,
	"client_secret": true, "api_key": true, "apikey": true, "x-api-key": true, "ingest_token": true,
	"vin": true, "vehicle_id": true, "vehicleid": true,
	pid.FieldLatitude: true, pid.FieldLongitude: true, pid.FieldAltitude: true, pid.FieldAccuracy: true,
	"lat": true, "lon": true, "latitude": true, "longitude": true, "altitude": true, "accuracy": true,
	"bearing": true, "heading": true, "gps_bearing": true,
}

// IsSensitive reports whether values under key are masked.
func IsSensitive(key string) bool {
	return redactKeys[strings.ToLower(key)]
}

// Redact returns a copy of v with the value of every sensitive key
// replaced, descending into nested maps and slices.
func Redact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsSensitive(k) && val != nil {
				out[k] = Redacted
				continue
			}
			out[k] = Redact(val)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsSensitive(k) {
				out[k] = Redacted
				continue
			}
			out[k] = val
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Redact(val)
		}
		return out
	default:
		return v
	}
}

// Truncate keeps the first max entries of m in key order and records how
// many were dropped under TruncatedKey.
func Truncate(m map[string]any, max int) map[string]any {
	if len(m) <= max {
		return m
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, max+1)
	for _, k := range keys[:max] {
		out[k] = m[k]
	}
	out[TruncatedKey] = fmt.Sprintf("… +%d more keys", len(m)-max)
	return out
}
