// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/therminator/internal/config"
	"github.com/tomtom215/therminator/internal/logging"
)

// defaultQueryTimeout bounds queries whose caller context has no deadline.
const defaultQueryTimeout = 30 * time.Second

// DB wraps the DuckDB connection and provides all data access for users,
// homes, sensors and readings. Integrity rules (uniqueness, check
// constraints, foreign keys) live in the schema; DB performs no
// application-level locking and never check-then-inserts.
type DB struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	logger zerolog.Logger
}

// New opens the database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	connStr := ""
	if cfg.Path != "" && cfg.Path != ":memory:" {
		// Ensure parent directory exists for the database file.
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}

		threads := cfg.Threads
		if threads <= 0 {
			threads = runtime.NumCPU()
		}
		connStr = fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
			cfg.Path, threads, cfg.MaxMemory)
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		logger: logging.Logger().With().Str("component", "database").Logger(),
	}

	if err := db.createMigrationsTable(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	if err := db.createSchema(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := db.runMigrations(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db.logger.Info().Str("path", cfg.Path).Msg("database initialized")
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive. Used by the readiness endpoint.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// ensureContext attaches the default query timeout when the caller's
// context carries no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
