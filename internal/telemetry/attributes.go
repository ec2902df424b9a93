// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package telemetry

import "go.opentelemetry.io/otel/attribute"

// Attribute keys shared by the ingestion spans.
const (
	FrameMethodKey   = "torque.frame.method"
	FrameParamsKey   = "torque.frame.params"
	FrameReasonKey   = "torque.frame.reason"
	AccountKey       = "torque.account"
	IdentityKey      = "torque.identity"
	CreatedKey       = "torque.created"
	FieldsKey        = "torque.fields"
	RejectedKey      = "torque.fields_rejected"
	DerivedKey       = "torque.fields_derived"
	UnknownPIDsKey   = "torque.unknown_pids"
	HasGPSFixKey     = "torque.gps_fix"
	ErrorTypeKey     = "error.type"
	SweepRemovedKey  = "torque.sweep.removed"
	SweepAccountsKey = "torque.sweep.accounts"
)

// FrameAttributes describes an incoming upload.
func FrameAttributes(method string, params int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(FrameMethodKey, method),
		attribute.Int(FrameParamsKey, params),
	}
}

// OutcomeAttributes describes the result of one upload. Account and
// identity are left out when empty.
func OutcomeAttributes(reason, account, identity string, created bool) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4)
	attrs = append(attrs, attribute.String(FrameReasonKey, reason))
	if account != "" {
		attrs = append(attrs, attribute.String(AccountKey, account))
	}
	if identity != "" {
		attrs = append(attrs, attribute.String(IdentityKey, identity), attribute.Bool(CreatedKey, created))
	}
	return attrs
}

// FieldAttributes counts what a frame contributed.
func FieldAttributes(fields, rejected, derived, unknown int, gps bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(FieldsKey, fields),
		attribute.Int(RejectedKey, rejected),
		attribute.Int(DerivedKey, derived),
		attribute.Int(UnknownPIDsKey, unknown),
		attribute.Bool(HasGPSFixKey, gps),
	}
}

// ErrorType tags a span with an error category.
func ErrorType(kind string) attribute.KeyValue {
	return attribute.String(ErrorTypeKey, kind)
}
