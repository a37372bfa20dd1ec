// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package websocket streams freshly ingested readings to live viewers.
//
// The Hub owns the set of connected clients, each bound to exactly one
// sensor. The ingestion handler calls BroadcastReading after a reading
// is committed, and the hub fans it out to the subscribers of that
// sensor only. Slow consumers whose send buffers fill are disconnected
// rather than allowed to stall the fan-out; a dropped frame is cheap
// because the readings listing endpoint is the source of truth.
package websocket
