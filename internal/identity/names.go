// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package identity

import (
	"regexp"
	"strings"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/cache"
)

// DefaultNameMemory bounds each of the id and email name tables.
const DefaultNameMemory = 512

var numberedVehicle = regexp.MustCompile(`^\s*vehicle\s*\d+\s*$`)

// IsPoorName reports whether name is a placeholder Torque sends before a
// real profile is selected.
func IsPoorName(name string) bool {
	low := strings.ToLower(strings.TrimSpace(name))
	switch low {
	case "", "vehicle", "véhicule":
		return true
	}
	return numberedVehicle.MatchString(low)
}

// NameMemory remembers the last good profile name by vehicle id and by
// account email. Both tables are bounded LRUs without expiry.
type NameMemory struct {
	byID    *cache.LRU[string]
	byEmail *cache.LRU[string]
}

// NewNameMemory creates a NameMemory holding up to capacity names per table.
func NewNameMemory(capacity int) *NameMemory {
	if capacity <= 0 {
		capacity = DefaultNameMemory
	}
	return &NameMemory{
		byID:    cache.NewLRU(cache.LRUConfig[string]{Capacity: capacity}),
		byEmail: cache.NewLRU(cache.LRUConfig[string]{Capacity: capacity}),
	}
}

// Effective returns name unless it is poor, in which case the remembered
// name for id, then for email, is used. A good name is remembered for both.
// The result may still be poor when nothing was remembered.
func (m *NameMemory) Effective(name, id, email string) string {
	name = strings.TrimSpace(name)
	idKey := strings.TrimSpace(id)
	emailKey := strings.ToLower(strings.TrimSpace(email))

	if !IsPoorName(name) {
		if idKey != "" {
			m.byID.Add(idKey, name)
		}
		if emailKey != "" {
			m.byEmail.Add(emailKey, name)
		}
		return name
	}

	if idKey != "" {
		if remembered, ok := m.byID.Get(idKey); ok {
			return remembered
		}
	}
	if emailKey != "" {
		if remembered, ok := m.byEmail.Get(emailKey); ok {
			return remembered
		}
	}
	return name
}

// Len returns the number of names remembered by id and by email.
func (m *NameMemory) Len() (byID, byEmail int) {
	return m.byID.Len(), m.byEmail.Len()
}
