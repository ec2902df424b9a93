// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package logging

import "testing"

func TestSanitizeEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"john.doe@example.com", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"not-an-email", "***"},
		{"  you@example.com ", "yo***@example.com"},
	}
	for _, tt := range tests {
		if got := SanitizeEmail(tt.in); got != tt.want {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	t.Parallel()
	if got := SanitizeToken(""); got != "" {
		t.Errorf("SanitizeToken(empty) = %q", got)
	}
	if got := SanitizeToken("short"); got != "***" {
		t.Errorf("SanitizeToken(short) = %q, want ***", got)
	}
	if got := SanitizeToken("eyJhbGciOiJIUzI1NiJ9"); got != "eyJh...NiJ9" {
		t.Errorf("SanitizeToken(long) = %q", got)
	}
}

func TestSanitizeSessionID(t *testing.T) {
	t.Parallel()
	if got := SanitizeSessionID("1700000000000"); got != "170...000" {
		t.Errorf("SanitizeSessionID() = %q", got)
	}
	if got := SanitizeSessionID("test-123"); got != "***" {
		t.Errorf("SanitizeSessionID(short) = %q", got)
	}
}

func TestSanitizeValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key, value, want string
	}{
		{"eml", "you@example.com", "yo***@example.com"},
		{"session", "1700000000000", "170...000"},
		{"id", "veh-001", "***"},
		{"kff1006", "48.8566", "48.8566"},
		{"profileName", "me@home.net", "me***@home.net"},
	}
	for _, tt := range tests {
		if got := SanitizeValue(tt.key, tt.value); got != tt.want {
			t.Errorf("SanitizeValue(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.want)
		}
	}
}
