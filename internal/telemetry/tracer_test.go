// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false, ServiceName: "test"})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if provider.tp != nil {
		t.Error("disabled provider should not own an SDK provider")
	}

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	if span.IsRecording() {
		t.Error("noop tracer span is recording")
	}
	span.End()

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, ServiceName: "test", ExporterType: "invalid"})
	if err == nil {
		t.Fatal("expected an error for an unknown exporter")
	}
	want := "unsupported exporter type: invalid (supported: grpc, http)"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestSampler(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0.0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tt := range tests {
		if got := sampler(tt.rate).Description(); got != tt.want {
			t.Errorf("sampler(%v) = %s, want %s", tt.rate, got, tt.want)
		}
	}
	if got := sampler(0.5).Description(); got == "AlwaysOnSampler" || got == "AlwaysOffSampler" {
		t.Errorf("sampler(0.5) = %s, want a ratio sampler", got)
	}
}

func TestOutcomeAttributes(t *testing.T) {
	t.Parallel()
	attrs := OutcomeAttributes("unrouted_frame", "", "", false)
	if len(attrs) != 1 || attrs[0].Key != attribute.Key(FrameReasonKey) {
		t.Errorf("unrouted attrs = %v", attrs)
	}

	attrs = OutcomeAttributes("ok", "you-example-com", "my-car_veh-", true)
	if len(attrs) != 4 {
		t.Fatalf("ok attrs = %v", attrs)
	}
	if attrs[3].Value.AsBool() != true {
		t.Errorf("created = %v", attrs[3].Value)
	}
}
