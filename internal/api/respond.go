// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/therminator/internal/logging"
)

// Fixed client-facing messages. Raw constraint or decode text never
// reaches the wire.
const (
	msgNotFound        = "Not found."
	msgConflict        = "A conflicting record already exists."
	msgInvalidJSON     = "Request body must be valid JSON."
	msgInvalidSignIn   = "Invalid email address or password."
	msgInternalFailure = "Internal server error."
)

// statusResponse is the body for successful writes.
type statusResponse struct {
	Status string `json:"status"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as a JSON response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes the uniform error body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondInternalError logs the underlying error with sanitized text
// and answers with a generic 500.
func respondInternalError(w http.ResponseWriter, err error) {
	logging.Error().Str("error", sanitizeLogValue(err.Error())).Msg("Request failed")
	respondError(w, http.StatusInternalServerError, msgInternalFailure)
}

// decodeJSON decodes the request body into v, bounded at 1 MiB.
func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// sanitizeLogValue strips control characters so attacker-influenced
// strings cannot forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
