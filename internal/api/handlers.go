// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package api

import (
	"github.com/tomtom215/therminator/internal/auth"
	"github.com/tomtom215/therminator/internal/config"
	"github.com/tomtom215/therminator/internal/database"
	"github.com/tomtom215/therminator/internal/websocket"
)

// Handler holds the dependencies shared by every endpoint. All state
// arrives through the constructor; there are no package-level handles.
type Handler struct {
	db       *database.DB
	sessions *auth.SessionManager
	hub      *websocket.Hub
	cfg      *config.Config
}

// NewHandler creates the handler set.
func NewHandler(db *database.DB, sessions *auth.SessionManager, hub *websocket.Hub, cfg *config.Config) *Handler {
	return &Handler{
		db:       db,
		sessions: sessions,
		hub:      hub,
		cfg:      cfg,
	}
}
