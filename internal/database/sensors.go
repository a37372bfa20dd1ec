// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/therminator/internal/metrics"
	"github.com/tomtom215/therminator/internal/models"
)

// CreateSensor inserts a sensor under a home and populates its generated
// id. A duplicate name within the same home returns ErrConflict.
func (db *DB) CreateSensor(ctx context.Context, sensor *models.Sensor) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO sensors (home_id, name, uuid)
		 VALUES (?, ?, ?) RETURNING id, created_at`,
		sensor.HomeID, sensor.Name, sensor.UUID.String(),
	).Scan(&sensor.ID, &sensor.CreatedAt)
	metrics.RecordDBQuery("insert", "sensors", time.Since(start), err)

	if err != nil {
		if classified := classifyConstraint(err); errors.Is(classified, ErrConflict) {
			return fmt.Errorf("create sensor: %w", ErrConflict)
		}
		return fmt.Errorf("failed to insert sensor: %w", err)
	}
	return nil
}

// ListSensors returns all sensors under a home, ordered by name.
func (db *DB) ListSensors(ctx context.Context, homeID int64) ([]models.Sensor, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, home_id, name, uuid, created_at
		 FROM sensors WHERE home_id = ? ORDER BY name`,
		homeID,
	)
	metrics.RecordDBQuery("select", "sensors", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query sensors: %w", err)
	}
	defer closeQuietly(rows)

	sensors := make([]models.Sensor, 0)
	for rows.Next() {
		sensor, err := scanSensor(rows)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, *sensor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sensors: %w", err)
	}
	return sensors, nil
}

// GetOwnedSensor resolves a sensor by its public UUID, scoped to the
// given owner via the home it belongs to. Both the sensor and its home
// are returned so callers have the home's timezone at hand. A sensor
// owned by another user returns ErrNotFound, never a distinct error.
func (db *DB) GetOwnedSensor(ctx context.Context, sensorUUID uuid.UUID, userID int64) (*models.Sensor, *models.Home, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var (
		sensor  models.Sensor
		home    models.Home
		rawUUID string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT s.id, s.home_id, s.name, s.uuid, s.created_at,
		        h.id, h.user_id, h.name, h.timezone, h.created_at
		 FROM sensors s
		 JOIN homes h ON h.id = s.home_id
		 WHERE s.uuid = ? AND h.user_id = ?`,
		sensorUUID.String(), userID,
	).Scan(
		&sensor.ID, &sensor.HomeID, &sensor.Name, &rawUUID, &sensor.CreatedAt,
		&home.ID, &home.UserID, &home.Name, &home.Timezone, &home.CreatedAt,
	)
	metrics.RecordDBQuery("select", "sensors", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query sensor: %w", err)
	}

	sensor.UUID, err = uuid.Parse(rawUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse stored sensor uuid: %w", err)
	}
	sensor.CreatedAt = sensor.CreatedAt.UTC()
	home.CreatedAt = home.CreatedAt.UTC()
	return &sensor, &home, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSensor(row rowScanner) (*models.Sensor, error) {
	var (
		sensor  models.Sensor
		rawUUID string
	)
	if err := row.Scan(&sensor.ID, &sensor.HomeID, &sensor.Name, &rawUUID, &sensor.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan sensor: %w", err)
	}
	parsed, err := uuid.Parse(rawUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored sensor uuid: %w", err)
	}
	sensor.UUID = parsed
	sensor.CreatedAt = sensor.CreatedAt.UTC()
	return &sensor, nil
}
