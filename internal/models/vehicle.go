// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package models

import (
	"maps"
	"sort"
	"strings"
	"time"
)

// Kind is the closed set of field variants a PID can resolve to.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindNumeric
	KindTextualStatus
	KindGPSComponent
)

var kindNames = [...]string{
	KindUnsupported:   "unsupported",
	KindNumeric:       "numeric-measurement",
	KindTextualStatus: "textual-status",
	KindGPSComponent:  "gps-component",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnsupported]
}

// MarshalText renders the kind name in JSON documents.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name. Unknown names become KindUnsupported.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = KindUnsupported
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			break
		}
	}
	return nil
}

// RawFrame is one upload's parameters. Keys are stored lowercased; when a
// key repeats only the first value is kept.
type RawFrame struct {
	Method   string
	Params   map[string]string
	Received time.Time
}

// NewRawFrame builds a frame from multi-valued parameters such as url.Values.
// When several spellings fold to the same lowercased key, the spelling that
// is already lowercase wins, then the first in sorted order.
func NewRawFrame(method string, values map[string][]string, received time.Time) RawFrame {
	keys := make([]string, 0, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	params := make(map[string]string, len(keys))
	exact := make(map[string]bool, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		lk := strings.ToLower(trimmed)
		isExact := trimmed == lk
		if _, seen := params[lk]; seen && (exact[lk] || !isExact) {
			continue
		}
		params[lk] = values[k][0]
		exact[lk] = isExact
	}
	return RawFrame{Method: strings.ToUpper(method), Params: params, Received: received}
}

// Get looks a key up case-insensitively.
func (f RawFrame) Get(key string) (string, bool) {
	v, ok := f.Params[strings.ToLower(key)]
	return v, ok
}

// NormalizedSample is one decoded field, ready for the presentation layer.
// Numeric is always finite.
type NormalizedSample struct {
	Field       string  `json:"field"`
	Code        string  `json:"code,omitempty"`
	Label       string  `json:"label,omitempty"`
	Numeric     float64 `json:"value"`
	Text        string  `json:"text,omitempty"`
	IsText      bool    `json:"is_text,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Precision   int     `json:"precision"`
	Kind        Kind    `json:"kind"`
	Creatable   bool    `json:"creatable"`
	DeviceClass string  `json:"device_class,omitempty"`
	StateClass  string  `json:"state_class,omitempty"`
	Derived     bool    `json:"derived,omitempty"`
}

// Value returns the text for textual samples and the number otherwise.
func (s NormalizedSample) Value() any {
	if s.IsText {
		return s.Text
	}
	return s.Numeric
}

// GPSFix is the last valid position of a vehicle. Optional parts are nil
// when the frame did not carry a usable value.
type GPSFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Altitude  *float64  `json:"altitude,omitempty"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Speed     *float64  `json:"speed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Clone returns a deep copy.
func (g *GPSFix) Clone() *GPSFix {
	if g == nil {
		return nil
	}
	c := *g
	c.Altitude = cloneFloat(g.Altitude)
	c.Accuracy = cloneFloat(g.Accuracy)
	c.Speed = cloneFloat(g.Speed)
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// VehicleIdentity is the resolved key of one vehicle/profile pairing.
type VehicleIdentity struct {
	Slug     string `json:"slug"`
	IDPrefix string `json:"id_prefix"`
	Salt     string `json:"salt,omitempty"`
}

// Key joins the parts with "_". Slugs never contain "_" and the id prefix is
// at most 4 characters, so the key splits back unambiguously.
func (v VehicleIdentity) Key() string {
	if v.Salt == "" {
		return v.Slug + "_" + v.IDPrefix
	}
	return v.Slug + "_" + v.IDPrefix + "_" + v.Salt
}

func (v VehicleIdentity) String() string { return v.Key() }

// SessionRecord is the latest known state of one vehicle.
type SessionRecord struct {
	Identity    VehicleIdentity             `json:"identity"`
	DisplayName string                      `json:"display_name"`
	Fields      map[string]NormalizedSample `json:"fields"`
	GPS         *GPSFix                     `json:"gps,omitempty"`
	LastSeen    time.Time                   `json:"last_seen"`
	FirstSeen   time.Time                   `json:"first_seen"`
	Session     string                      `json:"session"`
	AppVersion  string                      `json:"app_version,omitempty"`
	Unknown     map[string]string           `json:"unknown,omitempty"`
	Frames      uint64                      `json:"frames"`
}

// Clone returns a deep copy safe to hand out of the cache.
func (r *SessionRecord) Clone() *SessionRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Fields = maps.Clone(r.Fields)
	if c.Fields == nil {
		c.Fields = map[string]NormalizedSample{}
	}
	c.Unknown = maps.Clone(r.Unknown)
	c.GPS = r.GPS.Clone()
	return &c
}
