// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package database

import (
	"fmt"
	"time"
)

// Migration is a versioned schema change, applied exactly once and tracked
// in schema_migrations. The initial schema lives in schema.go; migrations
// exist for changes after databases with real data are in the field.
type Migration struct {
	Version     int
	Name        string
	Description string
	SQL         string
	AppliedAt   time.Time
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// getMigrations returns all versioned migrations in order. Append-only:
// never modify or remove an entry once released.
func (db *DB) getMigrations() []Migration {
	return []Migration{
		// Future schema changes go here, starting from version 1.
	}
}

func (db *DB) createMigrationsTable() error {
	ctx, cancel := schemaContext()
	defer cancel()
	_, err := db.conn.ExecContext(ctx, schemaMigrationsTable)
	return err
}

// runMigrations applies every migration not yet recorded, in version order.
func (db *DB) runMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	applied := make(map[int]bool)
	rows, err := db.conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer closeQuietly(rows)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating migrations: %w", err)
	}

	for _, m := range db.getMigrations() {
		if applied[m.Version] {
			continue
		}
		if _, err := db.conn.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		_, err := db.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`,
			m.Version, m.Name, m.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		db.logger.Info().Int("version", m.Version).Str("name", m.Name).Msg("migration applied")
	}

	return nil
}
