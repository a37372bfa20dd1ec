// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package auth

import "errors"

var (
	// ErrNoCredentials indicates the request carried nothing this
	// authenticator recognizes. The chain moves on to the next one.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials indicates credentials were presented but
	// failed verification. The chain stops.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
