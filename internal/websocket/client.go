// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package websocket

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/therminator/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Client sits between one websocket connection and the hub. It is
// bound to a single sensor for its whole lifetime.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	sensorUUID uuid.UUID
	send       chan Message
}

// NewClient creates a client subscribed to one sensor's readings.
func NewClient(hub *Hub, conn *websocket.Conn, sensorUUID uuid.UUID) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		sensorUUID: sensorUUID,
		send:       make(chan Message, 64),
	}
}

// Start begins the read and write pumps for this client.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// readPump drains the connection. Sensor streams are server-push; the
// only inbound frames we act on are application-level pings.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Debug().Err(err).Msg("unexpected websocket close")
			}
			break
		}
		if msg.Type == MessageTypePing {
			select {
			case c.send <- Message{Type: MessageTypePong}:
			default:
			}
		}
	}
}

// writePump pushes hub messages and keepalive pings to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
