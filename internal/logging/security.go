// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package logging

import "strings"

// Log-safe renderings of user data. Torque uploads carry the account email,
// a per-trip session token and the phone id on every request; none of them
// may appear in clear in a log line.

// SanitizeToken keeps the first and last 4 characters of long tokens.
// Example: "eyJhbGciOiJIUzI1NiJ9" -> "eyJh...NiJ9"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeSessionID masks a Torque session value.
// Torque sessions are epoch milliseconds, so short values are fully hidden.
func SanitizeSessionID(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	if len(sessionID) <= 8 {
		return "***"
	}
	return sessionID[:3] + "..." + sessionID[len(sessionID)-3:]
}

// SanitizeEmail keeps two characters of the local part and the domain.
// Example: "john.doe@example.com" -> "jo***@example.com"
func SanitizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// sensitiveKeys are parameter names whose values are masked by SanitizeValue.
var sensitiveKeys = map[string]bool{
	"eml":           true,
	"email":         true,
	"session":       true,
	"id":            true,
	"token":         true,
	"authorization": true,
	"api_key":       true,
	"apikey":        true,
}

// SanitizeValue masks value when key names user data or looks like an email.
func SanitizeValue(key, value string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	switch {
	case k == "eml" || k == "email":
		return SanitizeEmail(value)
	case k == "session":
		return SanitizeSessionID(value)
	case sensitiveKeys[k]:
		return SanitizeToken(value)
	case strings.Contains(value, "@") && strings.Contains(value, "."):
		return SanitizeEmail(value)
	}
	return value
}
