// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package account

import (
	"sort"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/cache"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// FieldView is one displayable sensor value.
type FieldView struct {
	Field       string      `json:"field"`
	Label       string      `json:"label,omitempty"`
	Value       any         `json:"value"`
	Unit        string      `json:"unit,omitempty"`
	Precision   *int        `json:"precision,omitempty"`
	Kind        models.Kind `json:"kind"`
	DeviceClass string      `json:"device_class,omitempty"`
	StateClass  string      `json:"state_class,omitempty"`
	Derived     bool        `json:"derived,omitempty"`
}

// VehicleView is what the presentation layer shows for one identity.
// Stale vehicles keep their identity and last_seen but carry no values.
type VehicleView struct {
	Identity       string         `json:"identity"`
	DisplayName    string         `json:"display_name,omitempty"`
	Fresh          bool           `json:"fresh"`
	LastSeen       time.Time      `json:"last_seen"`
	AppVersion     string         `json:"app_version,omitempty"`
	UnitPreference string         `json:"unit_preference"`
	Fields         []FieldView    `json:"fields,omitempty"`
	GPS            *models.GPSFix `json:"gps,omitempty"`
}

// Summary describes an account without its vehicles.
type Summary struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Language       string    `json:"language"`
	UnitPreference string    `json:"unit_preference"`
	Vehicles       int       `json:"vehicles"`
	Live           int       `json:"live"`
	TTLSeconds     int       `json:"ttl_seconds"`
	Capacity       int       `json:"capacity"`
	Stats          CacheStat `json:"stats"`
}

// CacheStat mirrors cache.LRUStats for JSON.
type CacheStat struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evictions   int64 `json:"evictions"`
	Expirations int64 `json:"expirations"`
}

// Summary reports the account's configuration and cache counters.
func (a *Account) Summary() Summary {
	st := a.cache.Stats()
	return Summary{
		ID:             a.ID,
		Email:          a.Email,
		Language:       a.Language,
		UnitPreference: a.UnitPreference(),
		Vehicles:       a.cache.Size(),
		Live:           a.cache.Len(),
		TTLSeconds:     int(a.cache.TTL() / time.Second),
		Capacity:       a.cache.Capacity(),
		Stats: CacheStat{
			Hits:        st.Hits,
			Misses:      st.Misses,
			Evictions:   st.Evictions,
			Expirations: st.Expirations,
		},
	}
}

// Vehicles returns the view of every known identity, most recently used
// first. It does not change recency.
func (a *Account) Vehicles() []VehicleView {
	entries := a.cache.Entries()
	out := make([]VehicleView, 0, len(entries))
	for _, e := range entries {
		out = append(out, a.view(e))
	}
	return out
}

// Vehicle returns the view of one live identity. Reading through the view
// counts as an access for LRU purposes.
func (a *Account) Vehicle(identity string) (VehicleView, bool) {
	rec, ok := a.cache.Get(identity)
	if !ok {
		return VehicleView{}, false
	}
	return a.view(cache.Entry{Identity: identity, Record: rec, LastSeen: rec.LastSeen, Fresh: true}), true
}

func (a *Account) view(e cache.Entry) VehicleView {
	v := VehicleView{
		Identity:       e.Identity,
		Fresh:          e.Fresh,
		LastSeen:       e.LastSeen,
		UnitPreference: a.UnitPreference(),
	}
	if e.Record == nil {
		return v
	}
	rec := e.Record
	v.DisplayName = rec.DisplayName
	v.AppVersion = rec.AppVersion
	v.GPS = rec.GPS

	v.Fields = make([]FieldView, 0, len(rec.Fields))
	for _, s := range rec.Fields {
		if !s.Creatable {
			continue
		}
		v.Fields = append(v.Fields, fieldView(s))
	}
	sort.Slice(v.Fields, func(i, j int) bool { return v.Fields[i].Field < v.Fields[j].Field })
	return v
}

func fieldView(s models.NormalizedSample) FieldView {
	fv := FieldView{
		Field:       s.Field,
		Label:       s.Label,
		Value:       s.Value(),
		Unit:        s.Unit,
		Kind:        s.Kind,
		DeviceClass: s.DeviceClass,
		StateClass:  s.StateClass,
		Derived:     s.Derived,
	}
	if s.Precision >= 0 && !s.IsText {
		p := s.Precision
		fv.Precision = &p
	}
	return fv
}
