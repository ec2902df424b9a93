// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAccountSpec is returned by ParseAccounts for a malformed entry.
var ErrInvalidAccountSpec = errors.New("invalid account spec")

// ParseAccounts parses the TORQUE_ACCOUNTS format: comma separated
// email:language[:units] entries. The language defaults to en. Units
// accept "imperial", "metric" or a boolean.
func ParseAccounts(raw string) ([]AccountConfig, error) {
	var out []AccountConfig
	for _, entry := range splitList(raw) {
		parts := strings.Split(entry, ":")
		if len(parts) > 3 {
			return nil, fmt.Errorf("%w: %q has too many fields", ErrInvalidAccountSpec, entry)
		}

		acct := AccountConfig{
			Email:    strings.TrimSpace(parts[0]),
			Language: "en",
		}
		if acct.Email == "" {
			return nil, fmt.Errorf("%w: %q has no email", ErrInvalidAccountSpec, entry)
		}
		if len(parts) > 1 {
			if lang := strings.ToLower(strings.TrimSpace(parts[1])); lang != "" {
				acct.Language = lang
			}
		}
		if len(parts) == 3 {
			imperial, err := parseUnits(parts[2])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAccountSpec, entry, err)
			}
			acct.Imperial = imperial
		}
		out = append(out, acct)
	}
	return out, nil
}

func parseUnits(s string) (bool, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "imperial":
		return true, nil
	case "metric", "":
		return false, nil
	default:
		return strconv.ParseBool(s)
	}
}
