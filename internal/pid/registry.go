// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package pid

import (
	"strings"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// Descriptor is the immutable metadata of one PID.
type Descriptor struct {
	Code        string
	Key         string
	LabelEN     string
	LabelFR     string
	Unit        string
	Precision   int
	Kind        models.Kind
	Creatable   bool
	DeviceClass string
	StateClass  string

	// FromSeconds marks trip durations that are reported in seconds and
	// stored in whole minutes.
	FromSeconds bool
}

// IsGPSComponent reports whether the PID contributes to the GPS fix.
func (d Descriptor) IsGPSComponent() bool {
	return d.Kind == models.KindGPSComponent
}

// Label returns the label for lang, falling back to English.
func (d Descriptor) Label(lang string) string {
	if strings.EqualFold(lang, "fr") && d.LabelFR != "" {
		return d.LabelFR
	}
	return d.LabelEN
}

// Trip durations Torque reports in seconds.
var secondsToMinutes = map[string]bool{
	"trip_time_since_start": true,
	"trip_time_stationary":  true,
	"trip_time_moving":      true,
}

var (
	byCode map[string]Descriptor
	byKey  map[string]Descriptor
)

//nolint:gochecknoinits // the table is static and built once
func init() {
	byCode = make(map[string]Descriptor, len(table))
	byKey = make(map[string]Descriptor, len(table))
	for _, e := range table {
		d := build(e)
		byCode[d.Code] = d
		byKey[d.Key] = d
	}
}

func build(e entry) Descriptor {
	d := Descriptor{
		Code:    e.code,
		Key:     e.key,
		LabelEN: e.en,
		LabelFR: e.fr,
		Unit:    e.unit,
	}
	if secondsToMinutes[e.key] {
		d.FromSeconds = true
		d.Unit = "min"
	}
	d.Kind = Classify(d.Key, d.Unit)
	d.Creatable = creatable(d)
	d.Precision = Precision(d.Key, d.Unit)
	d.DeviceClass = DeviceClass(d.Key, d.Unit)
	if d.DeviceClass != "" || d.Unit != "" {
		d.StateClass = "measurement"
	}
	return d
}

// Classify resolves the variant kind of a field from its name and unit.
func Classify(key, unit string) models.Kind {
	switch key {
	case FieldLatitude, FieldLongitude, FieldAltitude, FieldAccuracy:
		return models.KindGPSComponent
	}
	if unit == "" {
		if IsTextualStatus(key) {
			return models.KindTextualStatus
		}
		return models.KindUnsupported
	}
	return models.KindNumeric
}

// IsTextualStatus applies the status/state/mode suffix heuristic.
func IsTextualStatus(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, suffix := range []string{"status", "state", "mode"} {
		if strings.HasSuffix(k, suffix) {
			return true
		}
	}
	return strings.Contains(k, "état") || strings.Contains(k, "statut")
}

func creatable(d Descriptor) bool {
	switch d.Kind {
	case models.KindGPSComponent:
		return d.Key != FieldLatitude && d.Key != FieldLongitude
	case models.KindNumeric, models.KindTextualStatus:
		return true
	default:
		return false
	}
}

// NormalizeCode turns "kFF1006", "ff1006" or "kd" into the table form
// ("ff1006", "0d"). The second result is false when the code is not hex.
func NormalizeCode(raw string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(raw))
	c = strings.TrimPrefix(c, "k")
	if c == "" {
		return "", false
	}
	for _, r := range c {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", false
		}
	}
	if len(c) == 1 {
		c = "0" + c
	}
	return c, true
}

// Lookup returns the descriptor of a code in any accepted spelling.
func Lookup(code string) (Descriptor, bool) {
	c, ok := NormalizeCode(code)
	if !ok {
		return Descriptor{}, false
	}
	d, ok := byCode[c]
	return d, ok
}

// ByKey returns the descriptor whose canonical field name is key.
func ByKey(key string) (Descriptor, bool) {
	d, ok := byKey[key]
	return d, ok
}

// Unknown builds the descriptor used for codes missing from the table.
func Unknown(code string) Descriptor {
	return Descriptor{
		Code:      code,
		Key:       "pid_" + code,
		LabelEN:   "PID " + code,
		LabelFR:   "PID " + code,
		Kind:      models.KindUnsupported,
		Precision: -1,
	}
}

// Len returns the number of known PIDs.
func Len() int {
	return len(byCode)
}
