// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package config

import (
	"fmt"
	"strings"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/validation"
)

// Validate checks struct tags and the cross-field rules tags cannot
// express. It returns a *validation.Errors describing every problem.
func (c *Config) Validate() error {
	errs := validation.ValidateStruct(c)
	if errs == nil {
		errs = &validation.Errors{}
	}

	seen := make(map[string]int, len(c.Accounts))
	for i, a := range c.Accounts {
		email := strings.ToLower(strings.TrimSpace(a.Email))
		if first, dup := seen[email]; dup {
			errs.Add(fmt.Sprintf("accounts[%d].email", i), "unique",
				fmt.Sprintf("accounts[%d].email duplicates accounts[%d]", i, first))
			continue
		}
		seen[email] = i
	}

	for i, origin := range c.Security.CORSOrigins {
		if origin == "*" && len(c.Security.CORSOrigins) > 1 {
			errs.Add(fmt.Sprintf("security.cors_origins[%d]", i), "wildcard",
				"security.cors_origins cannot mix * with explicit origins")
			break
		}
	}

	if errs.Len() == 0 {
		return nil
	}
	return errs
}
