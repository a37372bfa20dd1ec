// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package api provides the HTTP layer: chi routing, JSON handlers, and
// outcome classification.
//
// Response conventions, kept uniform across every endpoint:
//   - errors are `{"error": "<message>"}` with a human-readable message
//     and never raw storage error text
//   - a successful reading ingest is `201 {"status": "Created"}`
//   - listings are bare JSON arrays, empty but never null
//
// A sensor or home owned by another user answers 404 exactly as if it
// did not exist; no endpoint distinguishes "absent" from "not yours".
// Malformed path parameters (a bad UUID, a bad date) are also 404s,
// since such a URL cannot name any resource.
package api
