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

// CreateHome inserts a home for a user and populates its generated id.
// A duplicate name within the same user returns ErrConflict; the same
// name under a different user is allowed by the UNIQUE(user_id, name)
// constraint.
func (db *DB) CreateHome(ctx context.Context, home *models.Home) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO homes (user_id, name, timezone)
		 VALUES (?, ?, ?) RETURNING id, created_at`,
		home.UserID, home.Name, home.Timezone,
	).Scan(&home.ID, &home.CreatedAt)
	metrics.RecordDBQuery("insert", "homes", time.Since(start), err)

	if err != nil {
		if classified := classifyConstraint(err); errors.Is(classified, ErrConflict) {
			return fmt.Errorf("create home: %w", ErrConflict)
		}
		return fmt.Errorf("failed to insert home: %w", err)
	}
	return nil
}

// ListHomes returns all homes owned by a user, ordered by name.
func (db *DB) ListHomes(ctx context.Context, userID int64) ([]models.Home, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, timezone, created_at
		 FROM homes WHERE user_id = ? ORDER BY name`,
		userID,
	)
	metrics.RecordDBQuery("select", "homes", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query homes: %w", err)
	}
	defer closeQuietly(rows)

	homes := make([]models.Home, 0)
	for rows.Next() {
		var home models.Home
		if err := rows.Scan(&home.ID, &home.UserID, &home.Name, &home.Timezone, &home.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan home: %w", err)
		}
		home.CreatedAt = home.CreatedAt.UTC()
		homes = append(homes, home)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate homes: %w", err)
	}
	return homes, nil
}

// GetHome retrieves a home by id, scoped to the given owner. A home that
// exists but belongs to another user is indistinguishable from one that
// does not exist: both return ErrNotFound.
func (db *DB) GetHome(ctx context.Context, homeID, userID int64) (*models.Home, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var home models.Home
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, timezone, created_at
		 FROM homes WHERE id = ? AND user_id = ?`,
		homeID, userID,
	).Scan(&home.ID, &home.UserID, &home.Name, &home.Timezone, &home.CreatedAt)
	metrics.RecordDBQuery("select", "homes", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query home: %w", err)
	}
	home.CreatedAt = home.CreatedAt.UTC()
	return &home, nil
}
