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

	"github.com/tomtom215/therminator/internal/metrics"
	"github.com/tomtom215/therminator/internal/models"
)

// InsertReading persists a reading and populates its generated id. The
// UNIQUE(sensor_id, timestamp) constraint is the concurrency mechanism:
// there is no check-then-insert window, concurrent duplicates race at
// the database and exactly one wins. The loser gets ErrConflict.
func (db *DB) InsertReading(ctx context.Context, reading *models.Reading) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO readings (sensor_id, timestamp, int_temp, ext_temp, humidity, resistance)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		reading.SensorID, reading.Timestamp.UTC(),
		reading.IntTemp, reading.ExtTemp, reading.Humidity, reading.Resistance,
	).Scan(&reading.ID)
	metrics.RecordDBQuery("insert", "readings", time.Since(start), err)

	if err != nil {
		switch classified := classifyConstraint(err); {
		case errors.Is(classified, ErrConflict):
			return fmt.Errorf("insert reading: %w", ErrConflict)
		case errors.Is(classified, ErrCheckViolation):
			return fmt.Errorf("insert reading: %w", ErrCheckViolation)
		}
		return fmt.Errorf("failed to insert reading: %w", err)
	}
	return nil
}

// ListReadings returns a sensor's readings within the half-open window
// [start, end), ordered by timestamp ascending. Both bounds are expected
// in UTC; the layer stores and compares instants, never local times.
func (db *DB) ListReadings(ctx context.Context, sensorID int64, start, end time.Time) ([]models.Reading, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	began := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, sensor_id, timestamp, int_temp, ext_temp, humidity, resistance
		 FROM readings
		 WHERE sensor_id = ? AND timestamp >= ? AND timestamp < ?
		 ORDER BY timestamp`,
		sensorID, start.UTC(), end.UTC(),
	)
	metrics.RecordDBQuery("select", "readings", time.Since(began), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer closeQuietly(rows)

	readings := make([]models.Reading, 0)
	for rows.Next() {
		var reading models.Reading
		if err := rows.Scan(
			&reading.ID, &reading.SensorID, &reading.Timestamp,
			&reading.IntTemp, &reading.ExtTemp, &reading.Humidity, &reading.Resistance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		reading.Timestamp = reading.Timestamp.UTC()
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}
	return readings, nil
}

// LatestReading returns a sensor's most recent reading, or (nil, nil)
// when the sensor has none yet.
func (db *DB) LatestReading(ctx context.Context, sensorID int64) (*models.Reading, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var reading models.Reading
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, sensor_id, timestamp, int_temp, ext_temp, humidity, resistance
		 FROM readings WHERE sensor_id = ?
		 ORDER BY timestamp DESC LIMIT 1`,
		sensorID,
	).Scan(
		&reading.ID, &reading.SensorID, &reading.Timestamp,
		&reading.IntTemp, &reading.ExtTemp, &reading.Humidity, &reading.Resistance,
	)
	metrics.RecordDBQuery("select", "readings", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest reading: %w", err)
	}
	reading.Timestamp = reading.Timestamp.UTC()
	return &reading, nil
}

// CountReadings returns the number of readings stored for a sensor.
func (db *DB) CountReadings(ctx context.Context, sensorID int64) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var count int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM readings WHERE sensor_id = ?`, sensorID,
	).Scan(&count)
	metrics.RecordDBQuery("count", "readings", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count readings: %w", err)
	}
	return count, nil
}
