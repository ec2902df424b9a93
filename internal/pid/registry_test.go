// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package pid

import (
	"testing"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

func TestLookup(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code    string
		wantKey string
		wantOK  bool
	}{
		{"0d", FieldOBDSpeed, true},
		{"k0d", FieldOBDSpeed, true},
		{"kd", FieldOBDSpeed, true},
		{"KFF1006", FieldLatitude, true},
		{"ff1239", FieldAccuracy, true},
		{"ff9999", "", false},
		{"kzz", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			d, ok := Lookup(tt.code)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			}
			if ok && d.Key != tt.wantKey {
				t.Errorf("Lookup(%q) key = %q, want %q", tt.code, d.Key, tt.wantKey)
			}
		})
	}
}

func TestDescriptors_Derived(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key         string
		kind        models.Kind
		creatable   bool
		precision   int
		deviceClass string
		unit        string
	}{
		{FieldOBDSpeed, models.KindNumeric, true, 1, "speed", "km/h"},
		{FieldLatitude, models.KindGPSComponent, false, 0, "", "°"},
		{FieldLongitude, models.KindGPSComponent, false, 0, "", "°"},
		{FieldAltitude, models.KindGPSComponent, true, 0, "distance", "m"},
		{FieldAccuracy, models.KindGPSComponent, true, 0, "distance", "m"},
		{"gps_satellites", models.KindUnsupported, false, NoPrecision, "", ""},
		{"coolant_temp", models.KindNumeric, true, 1, "temperature", "°C"},
		{"voltage_obd_adapter", models.KindNumeric, true, 2, "voltage", "V"},
		{"trip_time_moving", models.KindNumeric, true, 0, "duration", "min"},
		{"android_battery_level", models.KindNumeric, true, 1, "battery", "%"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			d, ok := ByKey(tt.key)
			if !ok {
				t.Fatalf("ByKey(%q) not found", tt.key)
			}
			if d.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", d.Kind, tt.kind)
			}
			if d.Creatable != tt.creatable {
				t.Errorf("Creatable = %v, want %v", d.Creatable, tt.creatable)
			}
			if d.Precision != tt.precision {
				t.Errorf("Precision = %d, want %d", d.Precision, tt.precision)
			}
			if d.DeviceClass != tt.deviceClass {
				t.Errorf("DeviceClass = %q, want %q", d.DeviceClass, tt.deviceClass)
			}
			if d.Unit != tt.unit {
				t.Errorf("Unit = %q, want %q", d.Unit, tt.unit)
			}
		})
	}
}

func TestClassify_TextualStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key  string
		want models.Kind
	}{
		{"fuel_system_status", models.KindTextualStatus},
		{"obd_state", models.KindTextualStatus},
		{"drive_mode", models.KindTextualStatus},
		{"état_moteur", models.KindTextualStatus},
		{"gps_satellites", models.KindUnsupported},
		{"engine_rpm", models.KindUnsupported},
	}
	for _, tt := range tests {
		if got := Classify(tt.key, ""); got != tt.want {
			t.Errorf("Classify(%q, \"\") = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestDescriptor_Label(t *testing.T) {
	t.Parallel()
	d, _ := ByKey(FieldOBDSpeed)
	if got := d.Label("fr"); got != "Vitesse (OBD)" {
		t.Errorf("Label(fr) = %q", got)
	}
	if got := d.Label("en"); got != "Speed (OBD)" {
		t.Errorf("Label(en) = %q", got)
	}
	if got := d.Label("de"); got != "Speed (OBD)" {
		t.Errorf("Label(de) = %q, want english fallback", got)
	}
}

func TestTable_UniqueCodesAndKeys(t *testing.T) {
	t.Parallel()
	codes := map[string]bool{}
	keys := map[string]bool{}
	for _, e := range table {
		if codes[e.code] {
			t.Errorf("duplicate code %q", e.code)
		}
		if keys[e.key] {
			t.Errorf("duplicate key %q", e.key)
		}
		codes[e.code] = true
		keys[e.key] = true
		if e.fr == "" || e.en == "" {
			t.Errorf("code %q missing a label", e.code)
		}
	}
	if Len() != len(table) {
		t.Errorf("Len() = %d, want %d", Len(), len(table))
	}
}

func TestUnknown(t *testing.T) {
	t.Parallel()
	d := Unknown("ff4242")
	if d.Key != "pid_ff4242" || d.Creatable || d.Kind != models.KindUnsupported {
		t.Errorf("Unknown() = %+v", d)
	}
}
