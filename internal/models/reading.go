// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package models

import (
	"time"
)

// Reading is one environmental measurement. Timestamps are stored
// normalized to UTC. At most one reading may exist per (sensor, timestamp)
// pair; the storage layer's unique constraint is the source of truth for
// that invariant. Readings are append-only.
type Reading struct {
	ID         int64
	SensorID   int64
	Timestamp  time.Time
	IntTemp    float64
	ExtTemp    float64
	Humidity   float64
	Resistance float64
}

// timestampLayout is the minute-precision wire format for reading
// timestamps. The trailing Z is appended separately because timestamps are
// always normalized to UTC before formatting.
const timestampLayout = "2006-01-02T15:04"

// IntTempF returns the interior temperature in Fahrenheit.
func (r *Reading) IntTempF() float64 {
	return r.IntTemp*9/5 + 32
}

// ExtTempF returns the exterior temperature in Fahrenheit.
func (r *Reading) ExtTempF() float64 {
	return r.ExtTemp*9/5 + 32
}

// Luminosity derives luminosity from the photoresistor's resistance.
// The second return value is false when resistance is zero, where the
// derivation is undefined.
func (r *Reading) Luminosity() (float64, bool) {
	if r.Resistance > 0 {
		return 1e6 / r.Resistance, true
	}
	return 0, false
}

// APIReading is the wire representation of a reading.
type APIReading struct {
	Timestamp  string  `json:"timestamp"`
	IntTemp    float64 `json:"int_temp"`
	ExtTemp    float64 `json:"ext_temp"`
	Humidity   float64 `json:"humidity"`
	Resistance float64 `json:"resistance"`
}

// AsAPI converts the reading to its wire representation.
func (r *Reading) AsAPI() APIReading {
	return APIReading{
		Timestamp:  r.Timestamp.UTC().Format(timestampLayout) + "Z",
		IntTemp:    r.IntTemp,
		ExtTemp:    r.ExtTemp,
		Humidity:   r.Humidity,
		Resistance: r.Resistance,
	}
}

// DayWindow returns the half-open UTC interval [start, end) covering the
// given calendar date in loc. Local midnight is constructed with the zone
// rules in effect at that instant, so DST transitions shift the window by
// the correct amount instead of a fixed offset.
func DayWindow(year int, month time.Month, day int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, day, 0, 0, 0, 0, loc).UTC()
	return start, start.Add(24 * time.Hour)
}
