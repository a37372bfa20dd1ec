// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package database

import (
	"errors"
	"io"
	"strings"
)

// Sentinel errors returned by the storage layer. Callers classify with
// errors.Is; the raw constraint text from the engine stays in logs and is
// never forwarded to clients.
var (
	// ErrNotFound is returned when a record is absent, or exists but is
	// not reachable through the requesting principal's homes. The two
	// cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned on a uniqueness violation, e.g. a second
	// reading for the same (sensor, timestamp) or a duplicate home name
	// under one owner.
	ErrConflict = errors.New("a conflicting record already exists")

	// ErrCheckViolation is returned when a check constraint rejects a
	// value. The validation layer catches these earlier in normal
	// operation; the constraint is the backstop.
	ErrCheckViolation = errors.New("value violates a check constraint")
)

// classifyConstraint maps a DuckDB constraint error to a sentinel. The
// driver exposes constraint failures only through message text, so this is
// substring matching by necessity. Non-constraint errors pass through.
func classifyConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Duplicate key"),
		strings.Contains(msg, "violates unique constraint"),
		strings.Contains(msg, "PRIMARY KEY or UNIQUE constraint"):
		return ErrConflict
	case strings.Contains(msg, "CHECK constraint"):
		return ErrCheckViolation
	default:
		return err
	}
}

// closeQuietly closes a resource and explicitly ignores any error. For
// cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
