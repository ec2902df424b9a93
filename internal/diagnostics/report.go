// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package diagnostics

import (
	"strings"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/account"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/cache"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/events"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/ingest"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// Runtime describes the receiver configuration without secrets.
type Runtime struct {
	IngestPath    string
	RequiresToken bool
	Version       string
	StartedAt     time.Time
}

// Sources are the collaborators a report reads from. Notifier is optional.
type Sources struct {
	Accounts *account.Manager
	Pipeline *ingest.Pipeline
	Notifier *events.Notifier
	Runtime  Runtime
	Now      func() time.Time
}

// Build renders the current state. The result is safe to serialize
// as-is: every sensitive value is already masked.
func Build(src Sources) map[string]any {
	now := time.Now
	if src.Now != nil {
		now = src.Now
	}

	accounts := make([]any, 0)
	if src.Accounts != nil {
		for _, a := range src.Accounts.Accounts() {
			accounts = append(accounts, accountSnapshot(a))
		}
	}

	report := map[string]any{
		"generated_at": now().UTC(),
		"runtime": map[string]any{
			"ingest_path":      src.Runtime.IngestPath,
			"requires_token":   src.Runtime.RequiresToken,
			"version":          src.Runtime.Version,
			"started_at":       src.Runtime.StartedAt,
			"accounts_count":   len(accounts),
			"email_configured": len(accounts) > 0,
		},
		"accounts": accounts,
	}
	if src.Pipeline != nil {
		report["ingest"] = src.Pipeline.Stats()
	}
	if src.Notifier != nil {
		report["notifications"] = src.Notifier.Stats()
	}
	return Redact(report).(map[string]any)
}

func accountSnapshot(a *account.Account) map[string]any {
	s := a.Summary()
	vehicles := make([]any, 0, s.Vehicles)
	for _, e := range a.Cache().Entries() {
		v := map[string]any{
			"identity":  MaskIdentity(e),
			"fresh":     e.Fresh,
			"last_seen": e.LastSeen,
		}
		if e.Record != nil {
			for k, val := range recordSnapshot(e.Record) {
				v[k] = val
			}
		}
		vehicles = append(vehicles, v)
	}
	return map[string]any{
		"email":           s.Email,
		"id":              s.ID,
		"language":        s.Language,
		"unit_preference": s.UnitPreference,
		"ttl_seconds":     s.TTLSeconds,
		"capacity":        s.Capacity,
		"size":            s.Vehicles,
		"live":            s.Live,
		"stats":           s.Stats,
		"vehicles":        vehicles,
	}
}

// maskedIDPrefix stands in for the Torque id prefix of an identity key.
const maskedIDPrefix = "****"

// MaskIdentity renders the identity key of e with its id prefix masked,
// as in "my-car_****_a1b2c3".
func MaskIdentity(e cache.Entry) string {
	if e.Record != nil && e.Record.Identity.Slug != "" {
		id := e.Record.Identity
		id.IDPrefix = maskedIDPrefix
		return id.Key()
	}
	slug, _, _ := strings.Cut(e.Identity, "_")
	return slug + "_" + maskedIDPrefix
}

func recordSnapshot(rec *models.SessionRecord) map[string]any {
	values := make(map[string]any, len(rec.Fields))
	meta := make(map[string]any, len(rec.Fields))
	for key, s := range rec.Fields {
		values[key] = s.Value()
		meta[key] = map[string]any{
			"label":     s.Label,
			"unit":      s.Unit,
			"code":      s.Code,
			"kind":      s.Kind.String(),
			"creatable": s.Creatable,
			"derived":   s.Derived,
		}
	}
	unknown := make(map[string]any, len(rec.Unknown))
	for code, raw := range rec.Unknown {
		unknown[code] = raw
	}

	snap := map[string]any{
		"display_name": rec.DisplayName,
		"first_seen":   rec.FirstSeen,
		"frames":       rec.Frames,
		"app_version":  rec.AppVersion,
		"profile": map[string]any{
			"name":    rec.DisplayName,
			"session": rec.Session,
		},
		"values":  Truncate(values, MaxValues),
		"meta":    Truncate(meta, MaxMeta),
		"unknown": Truncate(unknown, MaxUnknown),
	}
	if rec.GPS != nil {
		gps := map[string]any{
			"latitude":  rec.GPS.Latitude,
			"longitude": rec.GPS.Longitude,
			"timestamp": rec.GPS.Timestamp,
		}
		if rec.GPS.Altitude != nil {
			gps["altitude"] = *rec.GPS.Altitude
		}
		if rec.GPS.Accuracy != nil {
			gps["accuracy"] = *rec.GPS.Accuracy
		}
		if rec.GPS.Speed != nil {
			gps["speed"] = *rec.GPS.Speed
		}
		snap["gps"] = gps
	}
	return snap
}
