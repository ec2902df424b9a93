// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package ingest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/pid"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/sanitize"
)

// Torque's time parameter is epoch milliseconds; values outside this window
// are ignored and the receive time is used instead.
var (
	minFrameTime = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	maxFrameSkew = 24 * time.Hour
)

type pidParam struct {
	code string
	raw  string
}

// parsedFrame is a RawFrame with its controls and PIDs pulled apart.
type parsedFrame struct {
	method      string
	received    time.Time
	email       string
	session     string
	id          string
	profileName string
	appVersion  string
	lang        string
	timestamp   time.Time
	pids        []pidParam
	direct      map[pid.Control]string
}

func parseFrame(f models.RawFrame) (parsedFrame, error) {
	controls := pid.Controls(f.Params)

	p := parsedFrame{
		method:      f.Method,
		received:    f.Received,
		email:       controls[pid.ControlEmail],
		session:     controls[pid.ControlSession],
		id:          controls[pid.ControlID],
		profileName: controls[pid.ControlProfileName],
		appVersion:  appVersion(controls),
		lang:        strings.ToLower(controls[pid.ControlLanguage]),
		direct:      make(map[pid.Control]string, 4),
	}
	if p.session == "" {
		return p, fmt.Errorf("%w: missing session", ErrMalformedFrame)
	}
	if p.received.IsZero() {
		p.received = time.Now()
	}
	p.timestamp = frameTime(controls[pid.ControlTime], p.received)

	for _, c := range []pid.Control{pid.ControlLatitude, pid.ControlLongitude, pid.ControlAltitude, pid.ControlAccuracy} {
		if v, ok := controls[c]; ok {
			p.direct[c] = v
		}
	}

	p.pids = framePIDs(f.Params)
	return p, nil
}

// framePIDs collects the PID parameters ordered by code. When several keys
// spell the same code ("k0d", "kd") the canonical "k"+code spelling wins,
// then the first key in sorted order.
func framePIDs(params map[string]string) []pidParam {
	keys := make([]string, 0, len(params))
	for key := range params {
		if key == "" || (key[0] != 'k' && key[0] != 'K') {
			continue
		}
		if _, _, isControl := pid.LookupControl(key); isControl {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	byCode := make(map[string]int, len(keys))
	pids := make([]pidParam, 0, len(keys))
	for _, key := range keys {
		code, ok := pid.NormalizeCode(key)
		if !ok {
			continue
		}
		canonical := strings.ToLower(key) == "k"+code
		if i, seen := byCode[code]; seen {
			if canonical {
				pids[i].raw = params[key]
			}
			continue
		}
		byCode[code] = len(pids)
		pids = append(pids, pidParam{code: code, raw: params[key]})
	}
	sort.SliceStable(pids, func(i, j int) bool { return pids[i].code < pids[j].code })
	return pids
}

// appVersion prefers the explicit version spellings. The bare protocol keys
// ver and v only count when they look like a release ("1.8.2", "2-beta").
func appVersion(controls map[pid.Control]string) string {
	if v := controls[pid.ControlAppVersion]; v != "" {
		return v
	}
	if v := controls[pid.ControlProtocolVer]; strings.ContainsAny(v, ".-") {
		return v
	}
	return ""
}

func frameTime(raw string, received time.Time) time.Time {
	if raw == "" {
		return received
	}
	ms, err := sanitize.ParseNumber("time", raw)
	if err != nil || ms <= 0 {
		return received
	}
	t := time.UnixMilli(int64(ms)).UTC()
	if t.Before(minFrameTime) || t.After(received.Add(maxFrameSkew)) {
		return received
	}
	return t
}
