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

const userColumns = `id, name, email, password, api_key, created_at`

// CreateUser inserts a user and populates its generated id. The password
// must already be a bcrypt hash and the API key already generated; the
// storage layer never sees plaintext credentials.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password, api_key)
		 VALUES (?, ?, ?, ?) RETURNING id, created_at`,
		user.Name, user.Email, user.Password, user.APIKey,
	).Scan(&user.ID, &user.CreatedAt)
	metrics.RecordDBQuery("insert", "users", time.Since(start), err)

	if err != nil {
		if classified := classifyConstraint(err); errors.Is(classified, ErrConflict) {
			return fmt.Errorf("create user: %w", ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by primary key.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetUserByEmail retrieves a user by email for credential verification.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetUserByAPIKey retrieves a user by its API key for header-based
// authentication. The key is compared verbatim.
func (db *DB) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	return db.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE api_key = ?`, apiKey)
}

// CountUsers returns the total number of users. Used by the bootstrap
// logic to decide whether the admin account needs creating.
func (db *DB) CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var count int64
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	metrics.RecordDBQuery("count", "users", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (db *DB) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var user models.User
	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.APIKey, &user.CreatedAt,
	)
	metrics.RecordDBQuery("select", "users", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}
