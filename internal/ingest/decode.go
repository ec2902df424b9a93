// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package ingest

import (
	"errors"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/cache"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/pid"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/sanitize"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/units"
)

// value is one sanitized field, not yet converted to a sample.
type value struct {
	desc   pid.Descriptor
	num    float64
	text   string
	isText bool
}

// decoded is the Sanitized state of a frame.
type decoded struct {
	values   map[string]value
	unknown  map[string]string
	rejected []sanitize.FieldError
	gps      *models.GPSFix
}

var fallbackFields = map[pid.Control]string{
	pid.ControlLatitude:  pid.FieldLatitude,
	pid.ControlLongitude: pid.FieldLongitude,
	pid.ControlAltitude:  pid.FieldAltitude,
	pid.ControlAccuracy:  pid.FieldAccuracy,
}

func decode(p parsedFrame) decoded {
	d := decoded{values: make(map[string]value, len(p.pids))}
	seen := make(map[string]bool, len(p.pids))

	for _, param := range p.pids {
		desc, known := pid.Lookup(param.code)
		if !known {
			d.addUnknown(param)
			continue
		}
		seen[desc.Key] = true
		d.add(desc, param.raw)
	}

	// Direct GPS parameters only fill in for PIDs the frame did not carry.
	for _, c := range []pid.Control{pid.ControlLatitude, pid.ControlLongitude, pid.ControlAltitude, pid.ControlAccuracy} {
		raw, ok := p.direct[c]
		if !ok || seen[fallbackFields[c]] {
			continue
		}
		if desc, ok := pid.ByKey(fallbackFields[c]); ok {
			d.add(desc, raw)
		}
	}

	d.gps = d.fix(p.timestamp)
	return d
}

func (d *decoded) add(desc pid.Descriptor, raw string) {
	if desc.Kind == models.KindTextualStatus {
		text, err := sanitize.Text(desc.Key, raw)
		if err != nil {
			d.reject(err)
			return
		}
		d.values[desc.Key] = value{desc: desc, text: text, isText: true}
		return
	}

	v, err := sanitize.ParseNumber(desc.Key, raw)
	if err == nil {
		switch desc.Key {
		case pid.FieldLatitude:
			v, err = sanitize.Latitude(desc.Key, v)
		case pid.FieldLongitude:
			v, err = sanitize.Longitude(desc.Key, v)
		case pid.FieldAccuracy:
			v, err = sanitize.Accuracy(desc.Key, v)
		}
	}
	if err != nil {
		d.reject(err)
		return
	}
	d.values[desc.Key] = value{desc: desc, num: v}
}

// addUnknown keeps the raw value for diagnostics and, when numeric, stores
// it as an opaque pid_<code> field that is never created downstream.
func (d *decoded) addUnknown(param pidParam) {
	if d.unknown == nil {
		d.unknown = make(map[string]string)
	}
	if len(d.unknown) < cache.MaxUnknownCodes {
		d.unknown[param.code] = param.raw
	}
	if v, err := sanitize.ParseNumber(param.code, param.raw); err == nil {
		desc := pid.Unknown(param.code)
		d.values[desc.Key] = value{desc: desc, num: v}
	}
}

func (d *decoded) reject(err error) {
	var fe *sanitize.FieldError
	if errors.As(err, &fe) {
		d.rejected = append(d.rejected, *fe)
	}
}

// fix builds a GPS fix from a valid latitude/longitude pair. A lone
// coordinate is dropped so the cached fix and coordinates stay consistent.
func (d *decoded) fix(ts time.Time) *models.GPSFix {
	lat, hasLat := d.values[pid.FieldLatitude]
	lon, hasLon := d.values[pid.FieldLongitude]
	if !hasLat || !hasLon {
		delete(d.values, pid.FieldLatitude)
		delete(d.values, pid.FieldLongitude)
		return nil
	}

	g := &models.GPSFix{Latitude: lat.num, Longitude: lon.num, Timestamp: ts}
	if v, ok := d.values[pid.FieldAltitude]; ok {
		g.Altitude = ptr(v.num)
	}
	if v, ok := d.values[pid.FieldAccuracy]; ok {
		g.Accuracy = ptr(v.num)
	}
	if v, ok := d.values[pid.FieldGPSSpeed]; ok {
		g.Speed = ptr(v.num)
	} else if v, ok := d.values[pid.FieldOBDSpeed]; ok {
		g.Speed = ptr(v.num)
	}
	return g
}

func ptr(v float64) *float64 { return &v }

// samples converts the sanitized values in lang and adds synthesized
// economy fields. It returns the samples and the number derived.
func (d *decoded) samples(lang string) (map[string]models.NormalizedSample, int) {
	out := make(map[string]models.NormalizedSample, len(d.values)+3)
	for key, v := range d.values {
		if v.isText {
			out[key] = units.Text(v.desc, v.text, lang)
			continue
		}
		out[key] = units.Convert(v.desc, v.num, lang)
	}
	derived := units.Synthesize(out, lang)
	return out, len(derived)
}
