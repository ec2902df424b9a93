// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/account"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/cache"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/identity"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/sanitize"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/telemetry"
)

const tracerName = "github.com/Marlboro62/Torque-Lite-Pro/internal/ingest"

// Publisher receives a change event after every merge. Implementations
// must not block on slow consumers.
type Publisher interface {
	Publish(ctx context.Context, ev models.ChangeEvent) error
}

// Options configures a Pipeline.
type Options struct {
	Accounts *account.Manager

	// Names remembers good profile names; a default-sized memory is
	// created when nil.
	Names *identity.NameMemory

	// Publisher is optional.
	Publisher Publisher

	// Tracer defaults to the global tracer provider.
	Tracer trace.Tracer

	Now func() time.Time
}

// Outcome is the result of one upload. Accepted is false only for
// malformed frames.
type Outcome struct {
	Accepted bool                  `json:"accepted"`
	Reason   Reason                `json:"reason"`
	Account  string                `json:"account,omitempty"`
	Identity string                `json:"identity,omitempty"`
	Created  bool                  `json:"created,omitempty"`
	Rejected []sanitize.FieldError `json:"rejected,omitempty"`
	Err      error                 `json:"-"`
}

// Pipeline is the ingestion state machine.
type Pipeline struct {
	accounts  *account.Manager
	names     *identity.NameMemory
	publisher Publisher
	tracer    trace.Tracer
	now       func() time.Time
	counters  *counters
}

// New builds a pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Accounts == nil {
		return nil, errors.New("ingest: accounts are required")
	}
	if opts.Names == nil {
		opts.Names = identity.NewNameMemory(identity.DefaultNameMemory)
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Tracer(tracerName)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		accounts:  opts.Accounts,
		names:     opts.Names,
		publisher: opts.Publisher,
		tracer:    opts.Tracer,
		now:       opts.Now,
		counters:  newCounters(),
	}, nil
}

// Ingest processes one frame.
func (p *Pipeline) Ingest(ctx context.Context, frame models.RawFrame) Outcome {
	start := p.now()
	if frame.Received.IsZero() {
		frame.Received = start
	}

	ctx, span := p.tracer.Start(ctx, "ingest.frame",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(telemetry.FrameAttributes(frame.Method, len(frame.Params))...),
	)
	defer span.End()

	out := p.ingest(ctx, frame)

	span.SetAttributes(telemetry.OutcomeAttributes(string(out.Reason), out.Account, out.Identity, out.Created)...)
	if out.Reason == ReasonMalformed {
		span.SetStatus(codes.Error, out.Err.Error())
		span.SetAttributes(telemetry.ErrorType(string(out.Reason)))
	}

	p.counters.frame(out.Reason, frame.Received)
	metrics.RecordFrame(string(out.Reason), p.now().Sub(start))
	return out
}

func (p *Pipeline) ingest(ctx context.Context, frame models.RawFrame) Outcome {
	log := logging.Ctx(ctx)

	if frame.Method == http.MethodHead {
		return Outcome{Accepted: true, Reason: ReasonLiveness}
	}

	// Received -> Parsed
	parsed, err := parseFrame(frame)
	if err != nil {
		log.Debug().Err(err).Int("params", len(frame.Params)).Msg("Torque frame rejected")
		return Outcome{Reason: ReasonMalformed, Err: err}
	}

	// Parsed -> Sanitized
	dec := decode(parsed)
	rejectedByReason := make(map[string]int, len(dec.rejected))
	for _, fe := range dec.rejected {
		rejectedByReason[fe.Reason]++
		metrics.RecordFieldRejected(fe.Reason)
		log.Debug().
			Str("field", fe.Field).
			Str("reason", fe.Reason).
			Str("raw", truncate(fe.Raw, 32)).
			Msg("Torque field rejected")
	}

	// Sanitized -> Resolved
	acct, ok := p.accounts.Route(parsed.email)
	if !ok {
		masked := logging.SanitizeEmail(parsed.email)
		p.counters.unrouted(masked, frame.Received)
		p.counters.fields(0, 0, 0, rejectedByReason)
		log.Info().
			Str("eml", masked).
			Str("session", logging.SanitizeSessionID(parsed.session)).
			Msg("Torque frame for unknown account ignored")
		return Outcome{
			Accepted: true,
			Reason:   ReasonUnrouted,
			Rejected: dec.rejected,
			Err:      fmt.Errorf("%w: %s", ErrUnroutedFrame, masked),
		}
	}

	name := p.names.Effective(parsed.profileName, parsed.id, parsed.email)
	id := identity.Resolve(name, parsed.id, parsed.email)
	lang := acct.Language
	if parsed.lang == account.LanguageEN || parsed.lang == account.LanguageFR {
		lang = parsed.lang
	}

	// Resolved -> Merged
	fields, derived := dec.samples(lang)
	rec, created := acct.Cache().Upsert(id, cache.Update{
		DisplayName: displayName(name, parsed.session),
		Fields:      fields,
		GPS:         dec.gps,
		Session:     parsed.session,
		AppVersion:  parsed.appVersion,
		Unknown:     dec.unknown,
	})

	reason := models.ChangeUpdated
	if created {
		reason = models.ChangeCreated
	}
	p.counters.fields(len(fields), derived, len(dec.unknown), rejectedByReason)
	metrics.RecordFields(len(fields), derived, len(dec.unknown))
	metrics.RecordUpsert(acct.ID, string(reason))
	metrics.UpdateSessionGauges(acct.ID, acct.Cache().Size(), acct.Cache().Len())
	trace.SpanFromContext(ctx).SetAttributes(
		telemetry.FieldAttributes(len(fields), len(dec.rejected), derived, len(dec.unknown), dec.gps != nil)...,
	)

	if p.publisher != nil {
		err := p.publisher.Publish(ctx, models.ChangeEvent{
			Account:  acct.ID,
			Identity: id.Key(),
			Reason:   reason,
			At:       rec.LastSeen,
		})
		metrics.RecordNotification(err)
		if err != nil {
			log.Warn().Err(err).Str("identity", id.Key()).Msg("Change notification not published")
		}
	}

	log.Debug().
		Str("account", acct.ID).
		Str("identity", id.Key()).
		Str("reason", string(reason)).
		Int("fields", len(fields)).
		Int("rejected", len(dec.rejected)).
		Bool("gps", dec.gps != nil).
		Msg("Torque frame merged")

	// Merged -> Acknowledged
	return Outcome{
		Accepted: true,
		Reason:   ReasonOK,
		Account:  acct.ID,
		Identity: id.Key(),
		Created:  created,
		Rejected: dec.rejected,
	}
}

// Stats returns a copy of the diagnostics counters.
func (p *Pipeline) Stats() Stats {
	return p.counters.snapshot()
}

// displayName falls back to "Vehicle <session prefix>" for nameless frames.
func displayName(name, session string) string {
	if name != "" {
		return name
	}
	r := []rune(session)
	if len(r) > 6 {
		r = r[:6]
	}
	return "Vehicle " + string(r)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
