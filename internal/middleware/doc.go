// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package middleware provides infrastructure HTTP middleware: request
// id propagation for log correlation and Prometheus instrumentation.
// Authentication middleware lives in the auth package next to the
// credential logic it depends on.
package middleware
