// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
)

// TokenParam is the query parameter accepted when the client cannot set
// headers. Torque Pro only lets users edit the upload URL.
const TokenParam = "token"

// IngestToken rejects requests that do not present token either as
// "Authorization: Bearer <token>" or as the token query parameter.
// An empty token disables the check.
func IngestToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		want := []byte(token)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if subtle.ConstantTimeCompare([]byte(presentedToken(r)), want) != 1 {
				logging.Ctx(r.Context()).Warn().
					Str("remote", r.RemoteAddr).
					Msg("ingest request rejected: missing or invalid token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func presentedToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if scheme, value, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
	}
	return r.URL.Query().Get(TokenParam)
}
