// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package auth provides authentication for both browser sessions and
// headless sensor clients.
//
// Sessions are stateless HS256 JWTs carried in an HTTP-only cookie.
// Sensor clients instead send their account's API key verbatim in the
// Authorization header, with no scheme prefix. The Resolver tries the
// session cookie first, then the API key, so a browser with a valid
// session never needs to present a key.
//
// How an unauthenticated request is answered depends on what the client
// can render: clients that prefer JSON (per Accept header q-values) get
// a 401 with an error body, everything else is redirected to the
// sign-in page.
package auth
