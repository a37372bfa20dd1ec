// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package database provides the DuckDB-backed storage layer.
//
// All uniqueness guarantees (user emails and API keys, home names per
// user, sensor names per home, one reading per sensor per timestamp)
// live in schema constraints rather than application checks, so
// concurrent writers race at the database and the loser surfaces
// ErrConflict. Range checks on readings are enforced the same way via
// CHECK constraints.
//
// Ownership scoping happens in SQL: lookups that take a userID join or
// filter on it, and a row owned by someone else is reported as
// ErrNotFound, identical to a row that does not exist.
package database
