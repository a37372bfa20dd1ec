// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package models

import "time"

// User is an account that owns homes. The password is stored as a bcrypt
// hash and never serialized. The API key is a random 64-character hex
// string generated at creation and compared verbatim against the
// Authorization header for programmatic access.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	APIKey    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Home groups sensors under a user, with an IANA timezone used for
// day-window queries. Home names are unique per owner, not globally.
type Home struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultTimezone is applied to homes created without an explicit zone.
const DefaultTimezone = "UTC"
