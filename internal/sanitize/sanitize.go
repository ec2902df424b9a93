// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

// Package sanitize cleans individual Torque values. Every function either
// returns a finite value or a *FieldError; callers drop the field on error
// and keep processing the rest of the frame.
package sanitize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reason codes attached to rejected fields.
const (
	ReasonEmpty      = "empty"
	ReasonNotNumber  = "not_a_number"
	ReasonNonFinite  = "non_finite"
	ReasonOutOfRange = "out_of_range"
	ReasonNegative   = "negative"
)

// ErrFieldRejected is matched by every *FieldError through errors.Is.
var ErrFieldRejected = errors.New("field rejected")

// FieldError describes one rejected field.
type FieldError struct {
	Field  string `json:"field"`
	Raw    string `json:"raw,omitempty"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s rejected: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrFieldRejected) true.
func (e *FieldError) Is(target error) bool {
	return target == ErrFieldRejected
}

func reject(field, raw, reason string) *FieldError {
	return &FieldError{Field: field, Raw: raw, Reason: reason}
}

// nonFinite lists the spellings strconv would otherwise accept.
var nonFinite = map[string]bool{
	"nan": true, "+nan": true, "-nan": true,
	"inf": true, "+inf": true, "-inf": true,
	"infinity": true, "+infinity": true, "-infinity": true,
}

// ParseNumber parses a numeric string, accepting ',' as decimal separator.
func ParseNumber(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, reject(field, raw, ReasonEmpty)
	}
	if nonFinite[strings.ToLower(s)] {
		return 0, reject(field, raw, ReasonNonFinite)
	}
	// "1.234,5" is ambiguous; only a lone comma is treated as a decimal mark.
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, reject(field, raw, ReasonNonFinite)
		}
		return 0, reject(field, raw, ReasonNotNumber)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, reject(field, raw, ReasonNonFinite)
	}
	return v, nil
}

// Latitude rejects values outside [-90, 90].
func Latitude(field string, v float64) (float64, error) {
	if v < -90 || v > 90 {
		return 0, reject(field, strconv.FormatFloat(v, 'f', -1, 64), ReasonOutOfRange)
	}
	return v, nil
}

// Longitude rejects values outside [-180, 180].
func Longitude(field string, v float64) (float64, error) {
	if v < -180 || v > 180 {
		return 0, reject(field, strconv.FormatFloat(v, 'f', -1, 64), ReasonOutOfRange)
	}
	return v, nil
}

// Accuracy rejects negative GPS accuracy instead of clamping it.
func Accuracy(field string, v float64) (float64, error) {
	if v < 0 {
		return 0, reject(field, strconv.FormatFloat(v, 'f', -1, 64), ReasonNegative)
	}
	return v, nil
}

// DurationMinutes converts seconds to whole minutes, rounding half away
// from zero.
func DurationMinutes(seconds float64) float64 {
	return math.Round(seconds / 60)
}

// Text trims a textual value; blank text is rejected.
func Text(field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", reject(field, raw, ReasonEmpty)
	}
	return s, nil
}
