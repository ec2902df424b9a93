// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

// Package units turns sanitized values into NormalizedSamples and derives
// companion fuel-economy metrics.
//
// Samples are stored in the unit the registry declares. No imperial or
// metric display conversion happens here; the account's unit preference is
// only an annotation for the presentation layer.
package units

import (
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/pid"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/sanitize"
)

// Convert builds the sample of a numeric field. Durations flagged by the
// registry are converted from seconds to whole minutes.
func Convert(d pid.Descriptor, value float64, lang string) models.NormalizedSample {
	if d.FromSeconds {
		value = sanitize.DurationMinutes(value)
	}
	s := sample(d, lang)
	s.Numeric = value
	return s
}

// Text builds the sample of a textual-status field.
func Text(d pid.Descriptor, value, lang string) models.NormalizedSample {
	s := sample(d, lang)
	s.Text = value
	s.IsText = true
	return s
}

func sample(d pid.Descriptor, lang string) models.NormalizedSample {
	return models.NormalizedSample{
		Field:       d.Key,
		Code:        d.Code,
		Label:       d.Label(lang),
		Unit:        d.Unit,
		Precision:   d.Precision,
		Kind:        d.Kind,
		Creatable:   d.Creatable,
		DeviceClass: d.DeviceClass,
		StateClass:  d.StateClass,
	}
}
