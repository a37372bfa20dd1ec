// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package supervisor assembles the suture supervision tree: an API
// layer holding the HTTP server and a messaging layer holding the
// websocket hub. Suture events are logged through sutureslog into the
// application's zerolog output via the logging package's slog bridge.
package supervisor
