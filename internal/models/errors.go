// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldErrorKind is the stable classification of a reading validation
// failure. Kinds are part of the API contract; messages are for humans.
type FieldErrorKind string

const (
	// KindMissingField indicates a required field was absent or null.
	KindMissingField FieldErrorKind = "missing_field"

	// KindInvalidType indicates a field was present but not coercible to
	// its expected type.
	KindInvalidType FieldErrorKind = "invalid_type"

	// KindOutOfRange indicates a numeric field fell outside its allowed
	// interval.
	KindOutOfRange FieldErrorKind = "out_of_range"
)

// FieldError describes a single invalid field in a reading payload.
type FieldError struct {
	Kind    FieldErrorKind
	Field   string
	Min     float64 // Lower bound for KindOutOfRange
	Max     float64 // Upper bound for KindOutOfRange; +Inf when unbounded
	Message string
}

// Error returns the human-readable message.
func (e FieldError) Error() string {
	return e.Message
}

// MissingField builds a FieldError for an absent required field.
func MissingField(field string) FieldError {
	return FieldError{
		Kind:    KindMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s can't be blank", field),
	}
}

// InvalidType builds a FieldError for a field of the wrong type.
func InvalidType(field string) FieldError {
	return FieldError{
		Kind:    KindInvalidType,
		Field:   field,
		Message: fmt.Sprintf("%s must be a number", field),
	}
}

// OutOfRange builds a FieldError for a numeric field outside [min, max].
func OutOfRange(field string, min, max float64) FieldError {
	var message string
	if math.IsInf(max, 1) {
		message = fmt.Sprintf("%s must be greater than or equal to %s", field, formatBound(min))
	} else {
		message = fmt.Sprintf("%s must be between %s and %s", field, formatBound(min), formatBound(max))
	}
	return FieldError{
		Kind:    KindOutOfRange,
		Field:   field,
		Min:     min,
		Max:     max,
		Message: message,
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidationError aggregates the field errors of a rejected reading.
// It is returned by ReadingInput.Validate and mapped to a 422 response by
// the API layer.
type ValidationError struct {
	Fields []FieldError
}

// Error joins the individual field messages.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// Has reports whether any field error has the given kind and field name.
func (e *ValidationError) Has(kind FieldErrorKind, field string) bool {
	for _, fe := range e.Fields {
		if fe.Kind == kind && fe.Field == field {
			return true
		}
	}
	return false
}
