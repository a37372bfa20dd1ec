// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tomtom215/therminator/internal/logging"
	"github.com/tomtom215/therminator/internal/metrics"
	"github.com/tomtom215/therminator/internal/models"
)

// Message types for WebSocket communication.
const (
	MessageTypeReading = "reading"
	MessageTypePing    = "ping"
	MessageTypePong    = "pong"
)

// Message is the envelope for every frame sent to a client.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub maintains the set of connected clients and fans new readings out
// to the ones subscribed to the matching sensor. Each client subscribes
// to exactly one sensor at connect time; there is no topic switching on
// an open connection.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan sensorMessage
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

type sensorMessage struct {
	sensorUUID uuid.UUID
	message    Message
}

// NewHub creates a hub. Call RunWithContext to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan sensorMessage, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// RunWithContext runs the hub loop until the context is canceled, then
// closes all clients and returns ctx.Err(). Designed to run as a suture
// service so a panic gets the hub restarted rather than silently dead.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			logging.Info().
				Str("component", "websocket-hub").
				Msg("WebSocket hub stopped")
			return ctx.Err()

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			metrics.WSClients.Set(float64(total))
			logging.Debug().
				Str("sensor_uuid", client.sensorUUID.String()).
				Int("total_clients", total).
				Msg("WebSocket client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			metrics.WSClients.Set(float64(total))
			logging.Debug().
				Str("sensor_uuid", client.sensorUUID.String()).
				Int("total_clients", total).
				Msg("WebSocket client disconnected")

		case msg := <-h.broadcast:
			h.deliverToSubscribers(msg)
		}
	}
}

// BroadcastReading publishes a freshly ingested reading to every client
// watching its sensor. Non-blocking: if the broadcast channel is full
// the reading is dropped, since live viewers can always refetch.
func (h *Hub) BroadcastReading(sensorUUID uuid.UUID, reading models.APIReading) {
	msg := sensorMessage{
		sensorUUID: sensorUUID,
		message:    Message{Type: MessageTypeReading, Data: reading},
	}
	select {
	case h.broadcast <- msg:
	default:
		logging.Warn().
			Str("sensor_uuid", sensorUUID.String()).
			Msg("broadcast channel full, dropping reading")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) deliverToSubscribers(msg sensorMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client
	for client := range h.clients {
		if client.sensorUUID != msg.sensorUUID {
			continue
		}
		select {
		case client.send <- msg.message:
		default:
			// Slow consumer: its buffer is full, disconnect it.
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WSClients.Set(float64(len(h.clients)))
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WSClients.Set(0)
}
