// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when absent", "", false},
		{"upstream id kept", "abc-123.def_4", true},
		{"malformed id replaced", "bad id\nwith newline", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var seen, correlation string
			h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = logging.RequestIDFromContext(r.Context())
				correlation = logging.CorrelationIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("header %q, context %q", got, seen)
			}
			if (got == tt.incoming) != tt.keep {
				t.Errorf("id = %q, incoming %q keep %v", got, tt.incoming, tt.keep)
			}
			if correlation == "" {
				t.Error("no correlation id in context")
			}
		})
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	t.Parallel()
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/test-metrics/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/test-metrics/{id}", "418")
	before := testutil.ToFloat64(counter)
	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test-metrics/"+id, nil))
	}
	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("requests counted = %v, want 3", got)
	}
}

func TestStatusRecorder_FirstStatusWins(t *testing.T) {
	t.Parallel()
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.WriteHeader(http.StatusBadRequest)
	rec.WriteHeader(http.StatusInternalServerError)
	if rec.status != http.StatusBadRequest {
		t.Errorf("status = %d", rec.status)
	}
	if rec.Unwrap() == nil {
		t.Error("Unwrap() = nil")
	}
}

func TestIngestToken(t *testing.T) {
	t.Parallel()
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("OK!")) })

	tests := []struct {
		name   string
		token  string
		url    string
		header string
		want   int
	}{
		{"disabled", "", "/api/torque_pro", "", http.StatusOK},
		{"missing", "s3cret", "/api/torque_pro", "", http.StatusUnauthorized},
		{"bearer", "s3cret", "/api/torque_pro", "Bearer s3cret", http.StatusOK},
		{"bearer lowercase scheme", "s3cret", "/api/torque_pro", "bearer s3cret", http.StatusOK},
		{"wrong bearer", "s3cret", "/api/torque_pro", "Bearer nope", http.StatusUnauthorized},
		{"query", "s3cret", "/api/torque_pro?token=s3cret&session=1", "", http.StatusOK},
		{"wrong query", "s3cret", "/api/torque_pro?token=s3cre", "", http.StatusUnauthorized},
		{"basic scheme ignored", "s3cret", "/api/torque_pro", "Basic s3cret", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			IngestToken(tt.token)(ok).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestShouldTrace(t *testing.T) {
	t.Parallel()
	for path, want := range map[string]bool{
		"/api/v1/health/live": false,
		"/metrics":            false,
		"/api/torque_pro":     true,
		"/api/v1/accounts":    true,
	} {
		if got := shouldTrace(httptest.NewRequest(http.MethodGet, path, nil)); got != want {
			t.Errorf("shouldTrace(%s) = %v, want %v", path, got, want)
		}
	}
}

func TestSpanName_OmitsQuery(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodPost, "/api/torque_pro?eml=you@example.com", nil)
	if got := spanName("torque-lite-pro", req); got != "torque-lite-pro POST /api/torque_pro" {
		t.Errorf("spanName() = %q", got)
	}
}

func TestTraceIDs(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if tr, sp := TraceIDs(req); tr != "" || sp != "" {
		t.Errorf("ids without span = %q %q", tr, sp)
	}

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	tr, sp := TraceIDs(req.WithContext(ctx))
	if tr != span.SpanContext().TraceID().String() || sp != span.SpanContext().SpanID().String() {
		t.Errorf("TraceIDs() = %q %q", tr, sp)
	}
}
