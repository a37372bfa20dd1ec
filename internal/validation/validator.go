// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package validation provides struct validation for request payloads
// using go-playground/validator v10.
//
// It exposes a thread-safe singleton validator with a custom "timezone"
// rule backed by time.LoadLocation, and translates failures into the
// API's plain-English message style ("name can't be blank"). Field
// names in messages come from json struct tags, not Go field names.
//
// Sensor reading payloads do NOT go through this package: their
// field-by-field absent/null/wrong-type semantics need custom JSON
// decoding and live in models.ReadingInput.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	field   string
	tag     string
	message string
}

// Field returns the json name of the field that failed.
func (e *FieldError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string { return e.tag }

// Error returns the human-readable message.
func (e *FieldError) Error() string { return e.message }

// RequestError is a collection of field validation failures for one
// request payload.
type RequestError struct {
	errors []FieldError
}

// Errors returns the individual field failures.
func (e *RequestError) Errors() []FieldError { return e.errors }

// Error joins the field messages with "; " for a single response body.
func (e *RequestError) Error() string {
	if len(e.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.errors))
	for i, fieldErr := range e.errors {
		messages[i] = fieldErr.message
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json tag names in messages, not Go field names.
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		// "timezone" accepts any IANA zone the runtime can load, plus
		// the empty string so omitempty composition works.
		_ = validate.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			if name == "" {
				return true
			}
			_, err := time.LoadLocation(name)
			return err == nil
		})
	})

	return validate
}

// ValidateStruct validates a request struct. Returns nil on success or
// a *RequestError collecting every failed field.
func ValidateStruct(s any) *RequestError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestError{errors: []FieldError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = FieldError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			message: messageFor(fieldErr),
		}
	}
	return &RequestError{errors: fieldErrors}
}

func messageFor(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s can't be blank", err.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", err.Field())
	case "timezone":
		return fmt.Sprintf("%s must be a valid IANA timezone", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}
