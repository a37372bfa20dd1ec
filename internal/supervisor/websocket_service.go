// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package supervisor

import (
	"context"

	"github.com/tomtom215/therminator/internal/websocket"
)

// WebSocketHubService runs the websocket hub under supervision so a
// panic in the fan-out loop restarts the hub instead of killing live
// streaming for the rest of the process lifetime.
type WebSocketHubService struct {
	hub *websocket.Hub
}

// NewWebSocketHubService wraps the hub as a supervised service.
func NewWebSocketHubService(hub *websocket.Hub) *WebSocketHubService {
	return &WebSocketHubService{hub: hub}
}

// Serve implements suture.Service.
func (s *WebSocketHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String identifies the service in suture's logs.
func (s *WebSocketHubService) String() string {
	return "websocket-hub"
}
