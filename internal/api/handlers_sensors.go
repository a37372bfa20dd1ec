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
	"github.com/tomtom215/therminator/internal/models"
)

// latestReadingView extends the wire reading with the derived values
// the dashboard shows: Fahrenheit temperatures and luminosity.
// Luminosity is null when resistance is zero, since 1e6/R is undefined
// there.
type latestReadingView struct {
	models.APIReading
	IntTempF   float64  `json:"int_temp_f"`
	ExtTempF   float64  `json:"ext_temp_f"`
	Luminosity *float64 `json:"luminosity"`
}

type sensorDetailView struct {
	Name          string             `json:"name"`
	UUID          uuid.UUID          `json:"uuid"`
	CreatedAt     time.Time          `json:"created_at"`
	HomeID        int64              `json:"home_id"`
	LatestReading *latestReadingView `json:"latest_reading"`
}

// GetSensor answers GET /api/v1/sensors/{sensor_uuid} with the sensor
// and its most recent reading, or a null latest_reading for a sensor
// that has not reported yet.
func (h *Handler) GetSensor(w http.ResponseWriter, r *http.Request) {
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

	latest, err := h.db.LatestReading(r.Context(), sensor.ID)
	if err != nil {
		respondInternalError(w, err)
		return
	}

	detail := sensorDetailView{
		Name:      sensor.Name,
		UUID:      sensor.UUID,
		CreatedAt: sensor.CreatedAt,
		HomeID:    sensor.HomeID,
	}
	if latest != nil {
		view := latestReadingView{
			APIReading: latest.AsAPI(),
			IntTempF:   latest.IntTempF(),
			ExtTempF:   latest.ExtTempF(),
		}
		if lum, ok := latest.Luminosity(); ok {
			view.Luminosity = &lum
		}
		detail.LatestReading = &view
	}
	respondJSON(w, http.StatusOK, detail)
}
