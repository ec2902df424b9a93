// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package units

import (
	"math"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/pid"
)

// litresPer100FromMPG converts US miles per gallon: L/100km = 235.215 / mpg.
const litresPer100FromMPG = 235.215

// economyPair groups the fields Torque reports for one averaging window.
type economyPair struct {
	kpl, l100, mpg string
}

var economyPairs = []economyPair{
	{"kpl_instant", "l_per_100_instant", "mpg_instant"},
	{"kpl_trip_avg", "l_per_100_trip_avg", "mpg_trip_avg"},
	{"kpl_long_term_avg", "l_per_100_long_term_avg", "mpg_long_term_avg"},
}

// Synthesize adds the missing side of each km/L and L/100km pair when exactly
// one side is present in fields. When neither metric side is present, mpg is
// used to derive L/100km. Inputs that are zero or negative derive nothing,
// and fields present in the frame are never overwritten. It returns the
// names of the synthesized fields.
func Synthesize(fields map[string]models.NormalizedSample, lang string) []string {
	var added []string
	for _, p := range economyPairs {
		kpl, hasKPL := numeric(fields, p.kpl)
		l100, hasL100 := numeric(fields, p.l100)

		switch {
		case hasKPL && hasL100:
			continue
		case hasKPL:
			if v, ok := reciprocal(100, kpl); ok && put(fields, p.l100, v, lang) {
				added = append(added, p.l100)
			}
		case hasL100:
			if v, ok := reciprocal(100, l100); ok && put(fields, p.kpl, v, lang) {
				added = append(added, p.kpl)
			}
		default:
			if mpg, ok := numeric(fields, p.mpg); ok {
				if v, ok := reciprocal(litresPer100FromMPG, mpg); ok && put(fields, p.l100, v, lang) {
					added = append(added, p.l100)
				}
			}
		}
	}
	return added
}

func numeric(fields map[string]models.NormalizedSample, key string) (float64, bool) {
	s, ok := fields[key]
	if !ok || s.IsText {
		return 0, false
	}
	return s.Numeric, true
}

// reciprocal returns k/v, refusing inputs that would not give a finite,
// positive result.
func reciprocal(k, v float64) (float64, bool) {
	if v <= 0 {
		return 0, false
	}
	r := k / v
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

func put(fields map[string]models.NormalizedSample, key string, v float64, lang string) bool {
	d, ok := pid.ByKey(key)
	if !ok {
		return false
	}
	s := Convert(d, v, lang)
	s.Derived = true
	fields[key] = s
	return true
}
