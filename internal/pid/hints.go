// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package pid

import "strings"

// NoPrecision means the presentation layer should not round the value.
const NoPrecision = -1

// DeviceClass suggests a presentation device class from the unit.
func DeviceClass(key, unit string) string {
	switch strings.TrimSpace(unit) {
	case "°C", "°F":
		return "temperature"
	case "kPa", "bar", "psi", "inHg", "mb", "mbar", "hPa":
		return "pressure"
	case "V", "mV":
		return "voltage"
	case "km/h", "mph", "m/s":
		return "speed"
	case "A", "mA":
		return "current"
	case "km", "mi", "m":
		return "distance"
	case "min", "s":
		return "duration"
	}
	k := strings.ToLower(key)
	if strings.Contains(k, "batt") {
		return "battery"
	}
	return ""
}

// Precision suggests display decimals from the unit.
func Precision(key, unit string) int {
	switch strings.TrimSpace(unit) {
	case "km/h", "mph", "m/s",
		"kPa", "bar", "psi", "inHg", "mb", "mbar", "hPa",
		"°C", "°F",
		"km", "mi",
		"cc/min",
		"L/100km", "mpg", "kpl",
		"kW", "hp",
		"%":
		return 1
	case "V", "mV", "A", "mA", "L/hr", "L/h", "g/s", "lb/min":
		return 2
	case "m", "°", "min", "rpm":
		return 0
	}
	if strings.Contains(strings.ToLower(key), "rpm") {
		return 0
	}
	return NoPrecision
}
