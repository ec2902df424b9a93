// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package api

import (
	"errors"
	"net/http"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/ingest"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/metrics"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/models"
)

// TorqueAck is the body Torque Pro expects after an accepted upload.
const TorqueAck = "OK!"

// TorqueUpload receives one Torque Pro frame. Query parameters and an
// urlencoded body are merged, the body winning on duplicate keys.
//
// Replies: HEAD gets an empty 200, accepted and unrouted frames get
// "OK!", malformed frames and unreadable bodies get a 400.
func (h *Handler) TorqueUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.deps.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		metrics.RecordFrame(string(ingest.ReasonMalformed), 0)
		logging.Ctx(r.Context()).Debug().Err(err).Msg("unreadable Torque upload")
		writeText(w, status, http.StatusText(status))
		return
	}

	out := h.deps.Pipeline.Ingest(r.Context(), models.NewRawFrame(r.Method, r.Form, h.deps.Now()))
	switch {
	case out.Reason == ingest.ReasonLiveness:
		w.WriteHeader(http.StatusOK)
	case out.Accepted:
		writeText(w, http.StatusOK, TorqueAck)
	default:
		writeText(w, http.StatusBadRequest, "malformed frame")
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
