// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package api

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

// HealthLive answers GET /api/v1/health/live. It reports only that the
// process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// HealthReady answers GET /api/v1/health/ready. Readiness requires the
// database to answer a ping; a failed ping yields 503 so load balancers
// stop routing here.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
