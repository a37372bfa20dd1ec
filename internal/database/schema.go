// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package database

// Tables:
//   - users: accounts with unique email and API key
//   - homes: UNIQUE(user_id, name), IANA timezone per home
//   - sensors: UNIQUE(home_id, name), opaque UUID for external routing
//   - readings: UNIQUE(sensor_id, timestamp) plus humidity/resistance
//     check constraints; the append-only time series
//
// All invariants the application depends on are declared here so that
// concurrent writers race on constraints, not on application code.

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates the sequences, tables and indexes.
func (db *DB) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		api_key TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE SEQUENCE IF NOT EXISTS homes_id_seq`,
	`CREATE TABLE IF NOT EXISTS homes (
		id BIGINT PRIMARY KEY DEFAULT nextval('homes_id_seq'),
		user_id BIGINT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		timezone TEXT NOT NULL DEFAULT 'UTC',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, name)
	)`,

	`CREATE SEQUENCE IF NOT EXISTS sensors_id_seq`,
	`CREATE TABLE IF NOT EXISTS sensors (
		id BIGINT PRIMARY KEY DEFAULT nextval('sensors_id_seq'),
		home_id BIGINT NOT NULL REFERENCES homes(id),
		name TEXT NOT NULL,
		uuid TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (home_id, name)
	)`,

	`CREATE SEQUENCE IF NOT EXISTS readings_id_seq`,
	`CREATE TABLE IF NOT EXISTS readings (
		id BIGINT PRIMARY KEY DEFAULT nextval('readings_id_seq'),
		sensor_id BIGINT NOT NULL REFERENCES sensors(id),
		timestamp TIMESTAMP NOT NULL,
		int_temp DOUBLE NOT NULL DEFAULT 0.0,
		ext_temp DOUBLE NOT NULL,
		humidity DOUBLE NOT NULL CHECK (humidity >= 0 AND humidity <= 100),
		resistance DOUBLE NOT NULL CHECK (resistance >= 0),
		UNIQUE (sensor_id, timestamp)
	)`,

	// Day-window queries filter on (sensor_id, timestamp range).
	`CREATE INDEX IF NOT EXISTS idx_readings_sensor_timestamp
		ON readings (sensor_id, timestamp)`,
}
