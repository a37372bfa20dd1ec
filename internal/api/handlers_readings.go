// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/therminator/internal/auth"
	"github.com/tomtom215/therminator/internal/database"
	"github.com/tomtom215/therminator/internal/logging"
	"github.com/tomtom215/therminator/internal/metrics"
	"github.com/tomtom215/therminator/internal/models"
)

const dateLayout = "2006-01-02"

// ListReadings answers GET /api/v1/{sensor_uuid}/readings/{date}.
//
// The date names a calendar day in the owning home's timezone. Local
// midnight is converted to UTC with the zone rules in effect at that
// instant and the window is the half-open [midnight, midnight+24h), so
// a reading at 23:30 local lands on its local day even when that is a
// different UTC day, and DST days cover 23 or 25 hours of UTC time.
func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	sensorUUID, err := uuid.Parse(chi.URLParam(r, "sensor_uuid"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	date, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	sensor, home, err := h.db.GetOwnedSensor(r.Context(), sensorUUID, principal.User.ID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	loc, err := time.LoadLocation(home.Timezone)
	if err != nil {
		// A timezone that validated at home creation but no longer
		// loads means the zone database changed underneath us.
		respondInternalError(w, err)
		return
	}

	start, end := models.DayWindow(date.Year(), date.Month(), date.Day(), loc)
	readings, err := h.db.ListReadings(r.Context(), sensor.ID, start, end)
	if err != nil {
		respondInternalError(w, err)
		return
	}

	out := make([]models.APIReading, 0, len(readings))
	for i := range readings {
		out = append(out, readings[i].AsAPI())
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateReading answers POST /api/v1/{sensor_uuid}/readings.
//
// Outcomes: 201 on persist, 409 when (sensor, timestamp) already
// exists, 422 when field validation fails, 404 when the sensor is
// absent or not owned. The uniqueness race is settled by the storage
// constraint, not by a lookup before the insert.
func (h *Handler) CreateReading(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	sensorUUID, err := uuid.Parse(chi.URLParam(r, "sensor_uuid"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	sensor, _, err := h.db.GetOwnedSensor(r.Context(), sensorUUID, principal.User.ID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	var input models.ReadingInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if validationErr := input.Validate(); validationErr != nil {
		metrics.ReadingsIngested.WithLabelValues(metrics.OutcomeInvalid).Inc()
		respondError(w, http.StatusUnprocessableEntity, validationErr.Error())
		return
	}

	reading := input.Reading(sensor.ID)
	if err := h.db.InsertReading(r.Context(), &reading); err != nil {
		switch {
		case errors.Is(err, database.ErrConflict):
			metrics.ReadingsIngested.WithLabelValues(metrics.OutcomeConflict).Inc()
			respondError(w, http.StatusConflict, msgConflict)
		case errors.Is(err, database.ErrCheckViolation):
			// Validation already covers the ranges; a check violation
			// here means the two drifted apart.
			metrics.ReadingsIngested.WithLabelValues(metrics.OutcomeInvalid).Inc()
			logging.Warn().
				Str("sensor_uuid", sensorUUID.String()).
				Msg("Reading passed validation but hit a check constraint")
			respondError(w, http.StatusUnprocessableEntity, "Reading is out of range.")
		default:
			respondInternalError(w, err)
		}
		return
	}

	metrics.ReadingsIngested.WithLabelValues(metrics.OutcomeCreated).Inc()
	h.hub.BroadcastReading(sensorUUID, reading.AsAPI())
	respondJSON(w, http.StatusCreated, statusResponse{Status: "Created"})
}
