// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package models

import (
	"bytes"
	"math"
	"time"

	"github.com/goccy/go-json"
)

// timestampInputLayouts are the accepted timestamp formats on ingestion,
// tried in order. Naive timestamps (no offset) are interpreted as UTC;
// offset-qualified timestamps are converted to UTC before storage.
var timestampInputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// FloatField is a JSON number that distinguishes absent, null, non-numeric,
// and explicit-zero values. An explicit 0.0 is present and valid; JSON null
// and a missing key are both "not set". A present but non-numeric value
// decodes without error and is reported by Validate as an invalid type, so
// one response can carry every field problem at once.
type FloatField struct {
	Set   bool
	Valid bool
	Value float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FloatField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	f.Set = true
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil // reported as invalid_type during validation
	}
	f.Valid = true
	f.Value = v
	return nil
}

// TimeField is the timestamp counterpart of FloatField.
type TimeField struct {
	Set   bool
	Valid bool
	Value time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TimeField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	t.Set = true
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, layout := range timestampInputLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		t.Valid = true
		t.Value = parsed.UTC()
		return nil
	}
	return nil
}

// ReadingInput is the decoded JSON body of a reading ingestion request.
// Unknown fields are ignored; validation covers only the reading rules.
type ReadingInput struct {
	Timestamp  TimeField  `json:"timestamp"`
	IntTemp    FloatField `json:"int_temp"`
	ExtTemp    FloatField `json:"ext_temp"`
	Humidity   FloatField `json:"humidity"`
	Resistance FloatField `json:"resistance"`
}

// Validate applies the reading validation rules and returns all field
// errors at once, or nil when the input is acceptable.
//
// Negative resistance is rejected rather than clamped to zero; the reject
// policy matches the storage check constraint, so validation and storage
// can never disagree about a persisted value.
func (in *ReadingInput) Validate() *ValidationError {
	var fields []FieldError

	switch {
	case !in.Timestamp.Set:
		fields = append(fields, MissingField("timestamp"))
	case !in.Timestamp.Valid:
		fe := InvalidType("timestamp")
		fe.Message = "timestamp must be an ISO 8601 datetime"
		fields = append(fields, fe)
	}

	switch {
	case !in.ExtTemp.Set:
		fields = append(fields, MissingField("ext_temp"))
	case !in.ExtTemp.Valid:
		fields = append(fields, InvalidType("ext_temp"))
	}

	switch {
	case !in.Humidity.Set:
		fields = append(fields, MissingField("humidity"))
	case !in.Humidity.Valid:
		fields = append(fields, InvalidType("humidity"))
	case in.Humidity.Value < 0 || in.Humidity.Value > 100:
		fields = append(fields, OutOfRange("humidity", 0, 100))
	}

	switch {
	case !in.Resistance.Set:
		fields = append(fields, MissingField("resistance"))
	case !in.Resistance.Valid:
		fields = append(fields, InvalidType("resistance"))
	case in.Resistance.Value < 0:
		fields = append(fields, OutOfRange("resistance", 0, math.Inf(1)))
	}

	if in.IntTemp.Set && !in.IntTemp.Valid {
		fields = append(fields, InvalidType("int_temp"))
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Reading materializes a validated input as a Reading for the given sensor.
// int_temp defaults to 0.0 when omitted. Call Validate first; Reading does
// not re-check the rules.
func (in *ReadingInput) Reading(sensorID int64) Reading {
	intTemp := 0.0
	if in.IntTemp.Valid {
		intTemp = in.IntTemp.Value
	}
	return Reading{
		SensorID:   sensorID,
		Timestamp:  in.Timestamp.Value,
		IntTemp:    intTemp,
		ExtTemp:    in.ExtTemp.Value,
		Humidity:   in.Humidity.Value,
		Resistance: in.Resistance.Value,
	}
}
