// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package identity

import (
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"My Car", "my-car"},
		{"  my   CAR  ", "my-car"},
		{"Véhicule Été", "vehicule-ete"},
		{"Škoda Octavia RS", "skoda-octavia-rs"},
		{"Golf_GTI--7", "golf-gti-7"},
		{"ＢＭＷ３", "bmw3"},
		{"", PlaceholderSlug},
		{"!!!", PlaceholderSlug},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

var keyShape = regexp.MustCompile(`^[a-z0-9-]+_[^_]{1,4}(_[0-9a-f]{6})?$`)

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()
	a := Resolve("My Car", "veh-001", "you@example.com")
	b := Resolve("My Car", "veh-001", "you@example.com")
	if a != b || a.Key() != b.Key() {
		t.Fatalf("Resolve not deterministic: %s vs %s", a, b)
	}
	if !keyShape.MatchString(a.Key()) {
		t.Errorf("Key() = %q has unexpected shape", a.Key())
	}
	if a.Slug != "my-car" || a.IDPrefix != "veh-" {
		t.Errorf("identity = %+v", a)
	}
}

func TestResolve_CaseAndSpacingInsensitive(t *testing.T) {
	t.Parallel()
	base := Resolve("car 1", "abc", "x@y.z")
	for _, name := range []string{"Car 1", "CAR 1", "  car   1 ", "car\t1"} {
		if got := Resolve(name, "abc", "x@y.z"); got.Key() != base.Key() {
			t.Errorf("Resolve(%q) = %s, want %s", name, got, base)
		}
	}
}

func TestResolve_DistinctIDsDoNotFuse(t *testing.T) {
	t.Parallel()
	a := Resolve("My Car", "111111", "you@example.com")
	b := Resolve("My Car", "222222", "you@example.com")
	if a.Key() == b.Key() {
		t.Errorf("ids 111111 and 222222 resolved to the same key %s", a)
	}
}

func TestResolve_IDPrefixCollision(t *testing.T) {
	t.Parallel()
	a := Resolve("My Car", "veh-001", "you@example.com")
	b := Resolve("My Car", "veh-", "you@example.com")
	if a.Key() != b.Key() {
		t.Errorf("%s != %s", a, b)
	}
}

func TestResolve_EmailSaltSeparatesAccounts(t *testing.T) {
	t.Parallel()
	a := Resolve("My Car", "veh", "alice@example.com")
	b := Resolve("My Car", "veh", "bob@example.com")
	if a.Key() == b.Key() {
		t.Error("different emails share a key")
	}
	if Resolve("My Car", "veh", " Alice@Example.com ").Key() != a.Key() {
		t.Error("email case and spacing changed the key")
	}
}

func TestResolve_Placeholders(t *testing.T) {
	t.Parallel()
	got := Resolve("", "", "")
	if got.Key() != "vehicle_0000" {
		t.Errorf("Key() = %q, want vehicle_0000", got.Key())
	}
}

func TestEmailSalt(t *testing.T) {
	t.Parallel()
	// FNV-1a 32 of "a" is 0xe40c292c.
	if got := EmailSalt("A"); got != "e40c29" {
		t.Errorf("EmailSalt(A) = %q, want e40c29", got)
	}
	if got := EmailSalt("   "); got != "" {
		t.Errorf("EmailSalt(blank) = %q, want empty", got)
	}
}
