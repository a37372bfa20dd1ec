// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package models

import (
	"time"

	"github.com/google/uuid"
)

// Sensor is a single measuring device inside a home. The UUID is the only
// identifier exposed in URLs and API payloads; the numeric id never leaves
// the storage layer, which prevents cross-tenant enumeration.
type Sensor struct {
	ID        int64     `json:"-"`
	HomeID    int64     `json:"home_id"`
	Name      string    `json:"name"`
	UUID      uuid.UUID `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
}
