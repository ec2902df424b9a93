// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package models

import (
	"testing"
	"time"
)

func TestVehicleIdentity_Key(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		id   VehicleIdentity
		want string
	}{
		{"with salt", VehicleIdentity{Slug: "my-car", IDPrefix: "veh-", Salt: "a1b2c3"}, "my-car_veh-_a1b2c3"},
		{"without salt", VehicleIdentity{Slug: "car", IDPrefix: "0000"}, "car_0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.id.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRawFrame_LowercasesAndKeepsFirst(t *testing.T) {
	t.Parallel()
	f := NewRawFrame("post", map[string][]string{
		"Session": {"abc", "def"},
		"kFF1006": {"48.8"},
		"empty":   {},
	}, time.Unix(0, 0))

	if f.Method != "POST" {
		t.Errorf("Method = %q, want POST", f.Method)
	}
	if v, _ := f.Get("SESSION"); v != "abc" {
		t.Errorf("Get(SESSION) = %q, want abc", v)
	}
	if v, ok := f.Get("kff1006"); !ok || v != "48.8" {
		t.Errorf("Get(kff1006) = %q, %v", v, ok)
	}
	if _, ok := f.Get("empty"); ok {
		t.Error("key without values should be dropped")
	}
}

func TestNewRawFrame_CaseVariantsAreDeterministic(t *testing.T) {
	t.Parallel()
	values := map[string][]string{
		"Session": {"aaa"},
		"session": {"bbb"},
		"SESSION": {"ccc"},
		"Lat":     {"1.5"},
		"LAT":     {"2.5"},
	}
	for i := 0; i < 200; i++ {
		f := NewRawFrame("GET", values, time.Unix(0, 0))
		if got := f.Params["session"]; got != "bbb" {
			t.Fatalf("run %d: session = %q, want the lowercase spelling bbb", i, got)
		}
		if got := f.Params["lat"]; got != "2.5" {
			t.Fatalf("run %d: lat = %q, want 2.5 from the first sorted spelling", i, got)
		}
	}
}

func TestSessionRecord_CloneIsDeep(t *testing.T) {
	t.Parallel()
	alt := 35.0
	rec := &SessionRecord{
		Fields: map[string]NormalizedSample{"speed_obd": {Field: "speed_obd", Numeric: 88}},
		GPS:    &GPSFix{Latitude: 1, Longitude: 2, Altitude: &alt},
	}
	c := rec.Clone()
	c.Fields["speed_obd"] = NormalizedSample{Numeric: 1}
	*c.GPS.Altitude = 0

	if rec.Fields["speed_obd"].Numeric != 88 {
		t.Error("clone shares Fields map with original")
	}
	if *rec.GPS.Altitude != 35 {
		t.Error("clone shares GPS altitude with original")
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	if KindGPSComponent.String() != "gps-component" {
		t.Errorf("KindGPSComponent = %q", KindGPSComponent.String())
	}
	if Kind(99).String() != "unsupported" {
		t.Errorf("Kind(99) = %q", Kind(99).String())
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	t.Parallel()
	for _, k := range []Kind{KindUnsupported, KindNumeric, KindTextualStatus, KindGPSComponent} {
		text, _ := k.MarshalText()
		var got Kind
		if err := got.UnmarshalText(text); err != nil || got != k {
			t.Errorf("round trip of %v = %v, %v", k, got, err)
		}
	}
	k := KindNumeric
	_ = k.UnmarshalText([]byte("bogus"))
	if k != KindUnsupported {
		t.Errorf("unknown name = %v", k)
	}
}
