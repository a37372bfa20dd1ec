// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.SessionSecret = strings.Repeat("s", 32)
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "short session secret",
			mutate:  func(c *Config) { c.Security.SessionSecret = "short" },
			wantErr: "session_secret",
		},
		{
			name:    "zero session timeout",
			mutate:  func(c *Config) { c.Security.SessionTimeout = 0 },
			wantErr: "session_timeout",
		},
		{
			name:    "partial admin bootstrap",
			mutate:  func(c *Config) { c.Security.AdminEmail = "admin@example.com" },
			wantErr: "must be set together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("THERMINATOR_SERVER_PORT", "9000")
	t.Setenv("THERMINATOR_DATABASE_PATH", ":memory:")
	t.Setenv("THERMINATOR_SECURITY_SESSION_SECRET", strings.Repeat("x", 32))
	t.Setenv("THERMINATOR_SECURITY_SESSION_TIMEOUT", "1h")
	t.Setenv("THERMINATOR_LOGGING_LEVEL", "debug")
	t.Setenv(ConfigPathEnvVar, "/nonexistent-so-no-file-is-loaded.yaml")

	// The nonexistent CONFIG_PATH must fail loudly rather than being
	// silently skipped.
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.Security.SessionTimeout != time.Hour {
		t.Errorf("SessionTimeout = %v, want 1h", cfg.Security.SessionTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Untouched values keep their defaults.
	if cfg.Security.CookieName != "therminator_session" {
		t.Errorf("CookieName = %q, want default", cfg.Security.CookieName)
	}
}

func TestEnvToKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"THERMINATOR_SERVER_PORT", "server.port"},
		{"THERMINATOR_SECURITY_SESSION_SECRET", "security.session_secret"},
		{"THERMINATOR_DATABASE_MAX_MEMORY", "database.max_memory"},
		{"THERMINATOR_LOGGING_LEVEL", "logging.level"},
	}
	for _, tt := range tests {
		if got := envToKey(tt.in); got != tt.want {
			t.Errorf("envToKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
