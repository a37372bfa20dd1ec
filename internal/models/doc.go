// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package models defines the domain entities (User, Home, Sensor, Reading),
// the reading validation rules, and the wire representations used by the
// HTTP API.
//
// The ownership chain is User -> Home -> Sensor -> Reading. A principal may
// only reach entities under homes it owns; the storage layer enforces this
// with explicit joins, and this package stays persistence-agnostic.
package models
