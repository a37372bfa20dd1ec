// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func decodeInput(t *testing.T, body string) *ReadingInput {
	t.Helper()
	var in ReadingInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("failed to decode input: %v", err)
	}
	return &in
}

func TestReadingInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  FieldErrorKind
		wantField string
	}{
		{
			name:      "missing timestamp",
			body:      `{"int_temp": 50.5, "ext_temp": 21.0, "humidity": 50.0, "resistance": 1000.0}`,
			wantKind:  KindMissingField,
			wantField: "timestamp",
		},
		{
			name:      "null timestamp",
			body:      `{"timestamp": null, "ext_temp": 21.0, "humidity": 50.0, "resistance": 1000.0}`,
			wantKind:  KindMissingField,
			wantField: "timestamp",
		},
		{
			name:      "unparsable timestamp",
			body:      `{"timestamp": "yesterday", "ext_temp": 21.0, "humidity": 50.0, "resistance": 1000.0}`,
			wantKind:  KindInvalidType,
			wantField: "timestamp",
		},
		{
			name:      "missing ext_temp",
			body:      `{"timestamp": "2017-05-30T23:30:00", "humidity": 50.0, "resistance": 1000.0}`,
			wantKind:  KindMissingField,
			wantField: "ext_temp",
		},
		{
			name:      "missing humidity",
			body:      `{"timestamp": "2017-05-30T23:30:00", "ext_temp": 21.0, "resistance": 1000.0}`,
			wantKind:  KindMissingField,
			wantField: "humidity",
		},
		{
			name:      "non-numeric humidity",
			body:      `{"timestamp": "2017-05-30T23:30:00", "ext_temp": 21.0, "humidity": "wet", "resistance": 1000.0}`,
			wantKind:  KindInvalidType,
			wantField: "humidity",
		},
		{
			name:      "humidity below range",
			body:      `{"timestamp": "2017-05-30T23:30:00", "ext_temp": 21.0, "humidity": -1, "resistance": 1000.0}`,
			wantKind:  KindOutOfRange,
			wantField: "humidity",
		},
		{
			name:      "humidity above range",
			body:      `{"timestamp": "2017-05-30T23:30:00", "ext_temp": 21.0, "humidity": 101, "resistance": 1000.0}`,
			wantKind:  KindOutOfRange,
			wantField: "humidity",
		},
		{
			name:      "missing resistance",
			body:      `{"timestamp": "2017-05-30T23:30:00", "ext_temp": 21.0, "humidity": 50.0}`,
			wantKind:  KindMissingField,
			wantField: "resistance",
		},
		{
			name:      "negative resistance rejected",
			body:      `{"timestamp": "2017-05-30T23:30:00", "ext_temp": 21.0, "humidity": 50.0, "resistance": -1}`,
			wantKind:  KindOutOfRange,
			wantField: "resistance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decodeInput(t, tt.body)
			verr := in.Validate()
			if verr == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !verr.Has(tt.wantKind, tt.wantField) {
				t.Errorf("missing %s error for %q; got %v", tt.wantKind, tt.wantField, verr.Fields)
			}
		})
	}
}

func TestReadingInput_Validate_ZeroValuesArePresent(t *testing.T) {
	// 0.0 is a legitimate exterior temperature and resistance; a falsy
	// numeric value must not be confused with a missing field.
	in := decodeInput(t, `{"timestamp": "2017-05-30T23:30:00", "ext_temp": 0.0, "humidity": 0.0, "resistance": 0.0}`)
	if verr := in.Validate(); verr != nil {
		t.Fatalf("expected valid input, got %v", verr)
	}
}

func TestReadingInput_Validate_CollectsAllErrors(t *testing.T) {
	in := decodeInput(t, `{"humidity": 200}`)
	verr := in.Validate()
	if verr == nil {
		t.Fatal("expected validation error, got nil")
	}
	if len(verr.Fields) != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", len(verr.Fields), verr.Fields)
	}
}

func TestReadingInput_Reading(t *testing.T) {
	in := decodeInput(t, `{"timestamp": "2017-05-30T23:30:00-07:00", "ext_temp": 21.0, "humidity": 50.0, "resistance": 1000.0}`)
	if verr := in.Validate(); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}

	r := in.Reading(42)
	if r.SensorID != 42 {
		t.Errorf("SensorID = %d, want 42", r.SensorID)
	}
	if r.IntTemp != 0 {
		t.Errorf("IntTemp = %v, want default 0", r.IntTemp)
	}

	// Offset-qualified timestamps are normalized to UTC.
	want := time.Date(2017, 5, 31, 6, 30, 0, 0, time.UTC)
	if !r.Timestamp.Equal(want) || r.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp = %v, want %v in UTC", r.Timestamp, want)
	}
}

func TestReadingInput_NaiveTimestampIsUTC(t *testing.T) {
	in := decodeInput(t, `{"timestamp": "2017-05-30T23:30:00.123456", "ext_temp": 21.0, "humidity": 50.0, "resistance": 1000.0}`)
	if verr := in.Validate(); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	want := time.Date(2017, 5, 30, 23, 30, 0, 123456000, time.UTC)
	if !in.Timestamp.Value.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", in.Timestamp.Value, want)
	}
}
