// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

/*
Package api is the HTTP surface of the receiver, routed with chi.

Routes:

	GET|POST|HEAD {ingest path}                     Torque Pro upload, "OK!" or 400
	GET  /api/v1/accounts                           account summaries
	GET  /api/v1/accounts/{account}                 one account
	GET  /api/v1/accounts/{account}/vehicles        vehicle views
	GET  /api/v1/accounts/{account}/vehicles/{id}   one vehicle view
	GET  /api/v1/diagnostics                        redacted state snapshot
	GET  /api/v1/ws                                 change stream
	GET  /api/v1/health/live                        liveness
	GET  /metrics                                   Prometheus

{account} is the account id or its email. The ingest path defaults to
/api/torque_pro and never wraps its reply: Torque Pro only checks for the
literal "OK!" body.

Read endpoints answer with the envelope

	{"success":true,"data":...,"meta":{"request_id":"...","timestamp":"..."}}
*/
package api
