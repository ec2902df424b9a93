// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package pid

import "testing"

func TestNormalizeKey(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"profileName":  "profilename",
		"profile_name": "profilename",
		"profile.name": "profilename",
		"Vehicle-Name": "vehiclename",
		" eml ":        "eml",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestControls_RankAndEmptyValues(t *testing.T) {
	t.Parallel()
	got := Controls(map[string]string{
		"name":         "Generic",
		"profile_name": " My Car ",
		"email":        "other@example.com",
		"eml":          "you@example.com",
		"vehicle":      "",
		"altitude":     "35",
		"kff1006":      "48.8",
	})

	want := map[Control]string{
		ControlProfileName: "My Car",
		ControlEmail:       "you@example.com",
		ControlAltitude:    "35",
	}
	if len(got) != len(want) {
		t.Fatalf("Controls() = %v, want %v", got, want)
	}
	for c, v := range want {
		if got[c] != v {
			t.Errorf("Controls()[%s] = %q, want %q", c, got[c], v)
		}
	}
}

func TestControls_FallsBackToLowerRankedSpelling(t *testing.T) {
	t.Parallel()
	got := Controls(map[string]string{"profileName": "", "carName": "Clio"})
	if got[ControlProfileName] != "Clio" {
		t.Errorf("profile name = %q, want Clio", got[ControlProfileName])
	}
}

func TestControls_EqualRankTieIsStable(t *testing.T) {
	t.Parallel()
	params := map[string]string{
		"profile_name": "First",
		"profilename":  "Second",
		"profile.name": "Third",
	}
	for i := 0; i < 100; i++ {
		if got := Controls(params)[ControlProfileName]; got != "Third" {
			t.Fatalf("run %d: profile name = %q, want Third", i, got)
		}
	}
}
