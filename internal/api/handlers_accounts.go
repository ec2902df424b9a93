// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/account"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/logging"
)

// publicSummary masks the account email before it leaves the process.
func publicSummary(a *account.Account) account.Summary {
	s := a.Summary()
	s.Email = logging.SanitizeEmail(s.Email)
	return s
}

// lookupAccount resolves {account} or writes a 404.
func (h *Handler) lookupAccount(rw *ResponseWriter, r *http.Request) (*account.Account, bool) {
	acct, err := h.deps.Accounts.Lookup(chi.URLParam(r, "account"))
	if err != nil {
		rw.NotFound("account not found")
		return nil, false
	}
	return acct, true
}

// Accounts lists every configured account.
func (h *Handler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.deps.Accounts.Accounts()
	out := make([]account.Summary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, publicSummary(a))
	}
	NewResponseWriter(w, r).List(out, len(out))
}

// Account returns one account summary.
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	acct, ok := h.lookupAccount(rw, r)
	if !ok {
		return
	}
	rw.Success(publicSummary(acct))
}

// Vehicles lists the account's vehicles, most recently seen first.
func (h *Handler) Vehicles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	acct, ok := h.lookupAccount(rw, r)
	if !ok {
		return
	}
	vehicles := acct.Vehicles()
	rw.List(vehicles, len(vehicles))
}

// Vehicle returns one live vehicle view. Expired vehicles answer 404 while
// the listing still shows them with fresh=false.
func (h *Handler) Vehicle(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	acct, ok := h.lookupAccount(rw, r)
	if !ok {
		return
	}
	view, found := acct.Vehicle(chi.URLParam(r, "identity"))
	if !found {
		rw.NotFound("vehicle not found")
		return
	}
	rw.Success(view)
}
