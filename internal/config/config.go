// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package config holds all application configuration, loaded with Koanf v2
// from layered sources (highest priority wins):
//
//  1. Environment variables (THERMINATOR_ prefix, e.g. THERMINATOR_SERVER_PORT)
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Built-in defaults
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Therminator server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8137
	Port int `koanf:"port"`

	// Timeout bounds request read/write and graceful shutdown.
	Timeout time.Duration `koanf:"timeout"`

	// CORSOrigins lists allowed CORS origins. Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" opens an in-memory
	// database, used by tests.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB's memory usage (e.g. "512MB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// SessionSecret signs session tokens. Required, 32+ characters.
	SessionSecret string `koanf:"session_secret"`

	// SessionTimeout is the lifetime of a browser session. Default: 24h.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// CookieName is the session cookie name.
	CookieName string `koanf:"cookie_name"`

	// CookieSecure marks the session cookie Secure. Default: true.
	CookieSecure bool `koanf:"cookie_secure"`

	// Bootstrap account created at startup when the users table is empty.
	// All three must be set together or not at all.
	AdminName     string `koanf:"admin_name"`
	AdminEmail    string `koanf:"admin_email"`
	AdminPassword string `koanf:"admin_password"`

	// RateLimitReqs requests per RateLimitWindow on API routes.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// SignInLimitReqs requests per SignInLimitWindow on the sign-in route
	// (brute force prevention).
	SignInLimitReqs   int           `koanf:"sign_in_limit_reqs"`
	SignInLimitWindow time.Duration `koanf:"sign_in_limit_window"`

	// RateLimitDisabled disables rate limiting (for testing).
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks invariants that the layered load cannot express.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if len(c.Security.SessionSecret) < 32 {
		return fmt.Errorf("security.session_secret must be at least 32 characters")
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive")
	}

	admin := []string{c.Security.AdminName, c.Security.AdminEmail, c.Security.AdminPassword}
	set := 0
	for _, v := range admin {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(admin) {
		return fmt.Errorf("security.admin_name, admin_email and admin_password must be set together")
	}

	return nil
}

// BootstrapAdmin reports whether a bootstrap admin account is configured.
func (c *Config) BootstrapAdmin() bool {
	return c.Security.AdminEmail != ""
}
