// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package auth

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/therminator/internal/config"
	"github.com/tomtom215/therminator/internal/models"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		SessionSecret:  "0123456789abcdef0123456789abcdef",
		SessionTimeout: time.Hour,
		CookieName:     "therminator_session",
	}
}

func TestSessionManagerRoundTrip(t *testing.T) {
	manager, err := NewSessionManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := &models.User{ID: 42, Email: "alice@example.com"}
	token, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("failed to extract user id: %v", err)
	}
	if id != 42 {
		t.Errorf("got user id %d, want 42", id)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("got email %q, want alice@example.com", claims.Email)
	}
}

func TestSessionManagerRejectsTampering(t *testing.T) {
	manager, err := NewSessionManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token, err := manager.Issue(&models.User{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"truncated", token[:len(token)-5]},
		{"wrong signature", token[:strings.LastIndex(token, ".")+1] + "AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Validate(tt.token); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestSessionManagerRejectsExpired(t *testing.T) {
	cfg := testSecurityConfig()
	cfg.SessionTimeout = -time.Minute
	manager, err := NewSessionManager(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := manager.Issue(&models.User{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for expired token, got %v", err)
	}
}

func TestSessionManagerRequiresLongSecret(t *testing.T) {
	cfg := testSecurityConfig()
	cfg.SessionSecret = "too-short"
	if _, err := NewSessionManager(cfg); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestSessionCookies(t *testing.T) {
	manager, err := NewSessionManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	manager.SetCookie(rec, "token-value")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "therminator_session" || cookie.Value != "token-value" {
		t.Errorf("unexpected cookie %s=%s", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	rec = httptest.NewRecorder()
	manager.ClearCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("expected a single expiring cookie, got %+v", cookies)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash must not equal plaintext")
	}
	if err := CheckPassword(hash, "hunter2hunter2"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGenerateAPIKey(t *testing.T) {
	first, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("got key length %d, want 64", len(first))
	}
	second, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("two generated keys must differ")
	}
}
