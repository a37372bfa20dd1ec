// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package main is the entry point for the therminator server.
//
// Therminator records environmental readings (temperatures, humidity,
// photoresistance) from home sensors and serves them back per local
// calendar day in each home's timezone.
//
// Startup order:
//
//  1. Configuration: layered defaults, YAML file, THERMINATOR_* env (Koanf v2)
//  2. Logging: zerolog, console or JSON output
//  3. Database: embedded DuckDB, schema and migrations applied
//  4. Bootstrap: admin account created when the users table is empty
//  5. Supervision: suture tree running the websocket hub and HTTP server
//
// Shutdown on SIGINT/SIGTERM is graceful: the listener drains in-flight
// requests, the hub closes its clients, then the database closes.
//
// Minimal production configuration:
//
//	export THERMINATOR_SECURITY_SESSION_SECRET=$(openssl rand -hex 32)
//	export THERMINATOR_SECURITY_ADMIN_NAME=admin
//	export THERMINATOR_SECURITY_ADMIN_EMAIL=admin@example.com
//	export THERMINATOR_SECURITY_ADMIN_PASSWORD=secure-password
//	export THERMINATOR_DATABASE_PATH=/var/lib/therminator/therminator.db
//	./therminator
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/therminator/internal/api"
	"github.com/tomtom215/therminator/internal/auth"
	"github.com/tomtom215/therminator/internal/config"
	"github.com/tomtom215/therminator/internal/database"
	"github.com/tomtom215/therminator/internal/logging"
	"github.com/tomtom215/therminator/internal/models"
	"github.com/tomtom215/therminator/internal/supervisor"
	ws "github.com/tomtom215/therminator/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	}); err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize logging")
	}

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting therminator")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if err := bootstrapAdmin(context.Background(), db, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Failed to bootstrap admin account")
	}

	sessions, err := auth.NewSessionManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session manager")
	}
	resolver := auth.NewResolver(
		auth.NewSessionAuthenticator(sessions, db),
		auth.NewAPIKeyAuthenticator(db),
	)

	hub := ws.NewHub()
	handler := api.NewHandler(db, sessions, hub, cfg)
	router := api.NewRouter(handler, resolver, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(supervisor.NewWebSocketHubService(hub))
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Shutdown complete")
}

// bootstrapAdmin creates the configured admin account when the users
// table is empty, so a fresh install has a usable login. The generated
// API key is logged once; it is not retrievable afterwards.
func bootstrapAdmin(ctx context.Context, db *database.DB, cfg *config.Config) error {
	if !cfg.BootstrapAdmin() {
		logging.Info().Msg("No admin account configured, skipping bootstrap")
		return nil
	}

	count, err := db.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Security.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		return fmt.Errorf("failed to generate admin API key: %w", err)
	}

	admin := &models.User{
		Name:     cfg.Security.AdminName,
		Email:    cfg.Security.AdminEmail,
		Password: hash,
		APIKey:   apiKey,
	}
	if err := db.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logging.Info().
		Str("email", admin.Email).
		Str("api_key", apiKey).
		Msg("Bootstrapped admin account")
	return nil
}
