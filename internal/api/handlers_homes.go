// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/therminator/internal/auth"
	"github.com/tomtom215/therminator/internal/database"
	"github.com/tomtom215/therminator/internal/models"
	"github.com/tomtom215/therminator/internal/validation"
)

type createHomeRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
}

type createSensorRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// ListHomes answers GET /api/v1/homes with the principal's homes.
func (h *Handler) ListHomes(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	homes, err := h.db.ListHomes(r.Context(), principal.User.ID)
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, homes)
}

// CreateHome answers POST /api/v1/homes. Timezone defaults to UTC when
// omitted; a duplicate name under the same user is a 409.
func (h *Handler) CreateHome(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req createHomeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if validationErr := validation.ValidateStruct(&req); validationErr != nil {
		respondError(w, http.StatusUnprocessableEntity, validationErr.Error())
		return
	}
	if req.Timezone == "" {
		req.Timezone = models.DefaultTimezone
	}

	home := &models.Home{
		UserID:   principal.User.ID,
		Name:     req.Name,
		Timezone: req.Timezone,
	}
	if err := h.db.CreateHome(r.Context(), home); err != nil {
		if errors.Is(err, database.ErrConflict) {
			respondError(w, http.StatusConflict, msgConflict)
			return
		}
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, home)
}

// ListSensors answers GET /api/v1/homes/{home_id}/sensors. A home id
// that is not a number, does not exist, or belongs to someone else is
// the same 404.
func (h *Handler) ListSensors(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	homeID, err := strconv.ParseInt(chi.URLParam(r, "home_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	home, err := h.db.GetHome(r.Context(), homeID, principal.User.ID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	sensors, err := h.db.ListSensors(r.Context(), home.ID)
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sensors)
}

// CreateSensor answers POST /api/v1/homes/{home_id}/sensors. The
// sensor's public UUID is generated server-side and returned in the
// response; clients use it for all ingestion and query calls.
func (h *Handler) CreateSensor(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	homeID, err := strconv.ParseInt(chi.URLParam(r, "home_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	home, err := h.db.GetHome(r.Context(), homeID, principal.User.ID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	var req createSensorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if validationErr := validation.ValidateStruct(&req); validationErr != nil {
		respondError(w, http.StatusUnprocessableEntity, validationErr.Error())
		return
	}

	sensor := &models.Sensor{
		HomeID: home.ID,
		Name:   req.Name,
		UUID:   uuid.New(),
	}
	if err := h.db.CreateSensor(r.Context(), sensor); err != nil {
		if errors.Is(err, database.ErrConflict) {
			respondError(w, http.StatusConflict, msgConflict)
			return
		}
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sensor)
}
