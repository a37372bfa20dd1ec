// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"

	"github.com/tomtom215/therminator/internal/auth"
	"github.com/tomtom215/therminator/internal/database"
	"github.com/tomtom215/therminator/internal/logging"
	"github.com/tomtom215/therminator/internal/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are vetted by the CORS middleware in front of this
	// handler; the upgrader does not re-check.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveReadings answers GET /api/v1/{sensor_uuid}/live by upgrading to
// a websocket that streams readings for that sensor as they are
// ingested. Ownership is checked before the upgrade, with the same 404
// rules as every other sensor endpoint.
func (h *Handler) LiveReadings(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	sensorUUID, err := uuid.Parse(chi.URLParam(r, "sensor_uuid"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if _, _, err := h.db.GetOwnedSensor(r.Context(), sensorUUID, principal.User.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respondInternalError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logging.Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, sensorUUID)
	h.hub.Register <- client
	client.Start()
}
