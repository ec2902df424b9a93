// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package pid

import (
	"sort"
	"strings"
)

// Control names a non-PID parameter of a Torque upload.
type Control string

const (
	ControlEmail       Control = "eml"
	ControlSession     Control = "session"
	ControlID          Control = "id"
	ControlProfileName Control = "profile_name"
	ControlAppVersion  Control = "app_version"
	ControlProtocolVer Control = "protocol_version"
	ControlLanguage    Control = "lang"
	ControlTime        Control = "time"
	ControlLatitude    Control = "lat"
	ControlLongitude   Control = "lon"
	ControlAltitude    Control = "alt"
	ControlAccuracy    Control = "acc"
)

// alias maps one historical spelling to a control. Lower rank wins when a
// frame carries several spellings of the same control.
type alias struct {
	control Control
	rank    int
}

// aliases is keyed by NormalizeKey(spelling). New Torque spellings are new
// rows here.
var aliases = map[string]alias{
	"eml":   {ControlEmail, 0},
	"email": {ControlEmail, 1},

	"session": {ControlSession, 0},
	"id":      {ControlID, 0},

	"profilename": {ControlProfileName, 0},
	"profile":     {ControlProfileName, 1},
	"vehiclename": {ControlProfileName, 2},
	"vehicle":     {ControlProfileName, 3},
	"carname":     {ControlProfileName, 4},
	"car":         {ControlProfileName, 5},
	"name":        {ControlProfileName, 6},

	"appversion":  {ControlAppVersion, 0},
	"apkversion":  {ControlAppVersion, 1},
	"versionname": {ControlAppVersion, 2},
	"version":     {ControlAppVersion, 3},
	"ver":         {ControlProtocolVer, 0},
	"v":           {ControlProtocolVer, 1},

	"lang":     {ControlLanguage, 0},
	"language": {ControlLanguage, 1},

	"time": {ControlTime, 0},

	"lat":       {ControlLatitude, 0},
	"latitude":  {ControlLatitude, 1},
	"lon":       {ControlLongitude, 0},
	"lng":       {ControlLongitude, 1},
	"longitude": {ControlLongitude, 2},
	"alt":       {ControlAltitude, 0},
	"altitude":  {ControlAltitude, 1},
	"acc":       {ControlAccuracy, 0},
	"accuracy":  {ControlAccuracy, 1},
}

// NormalizeKey lowercases a parameter name and drops '.', '-' and '_'.
func NormalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range strings.ToLower(strings.TrimSpace(key)) {
		if r == '.' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LookupControl resolves a parameter name to its control and rank.
func LookupControl(key string) (Control, int, bool) {
	a, ok := aliases[NormalizeKey(key)]
	return a.control, a.rank, ok
}

// Controls picks, for every control present in params, the non-empty value
// of its best-ranked spelling. Spellings of equal rank are taken in key
// order. Values are trimmed.
func Controls(params map[string]string) map[Control]string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[Control]string)
	best := make(map[Control]int)
	for _, k := range keys {
		v := params[k]
		c, rank, ok := LookupControl(k)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if r, seen := best[c]; seen && r <= rank {
			continue
		}
		best[c] = rank
		out[c] = v
	}
	return out
}
