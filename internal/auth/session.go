// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package auth

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/therminator/internal/config"
	"github.com/tomtom215/therminator/internal/models"
)

// SessionClaims are the JWT claims carried in the session cookie. The
// user id rides in the registered Subject claim; email is informational.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim as the numeric user id.
func (c *SessionClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed subject claim: %w", err)
	}
	return id, nil
}

// SessionManager issues and validates stateless session tokens.
// Tokens are HS256-signed JWTs; there is no server-side session store,
// so sign-out is purely a cookie clear and tokens remain valid until
// they expire.
type SessionManager struct {
	secret       []byte
	timeout      time.Duration
	cookieName   string
	cookieSecure bool
}

// NewSessionManager creates a session manager from security config.
// The secret must be at least 32 characters; config validation enforces
// this before we get here, but the check is repeated for callers that
// construct the config by hand.
func NewSessionManager(cfg *config.SecurityConfig) (*SessionManager, error) {
	if len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}
	return &SessionManager{
		secret:       []byte(cfg.SessionSecret),
		timeout:      cfg.SessionTimeout,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
	}, nil
}

// Issue creates a signed session token for an authenticated user.
func (m *SessionManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a session token. Any failure, from a
// garbled token to an expired one, collapses to ErrInvalidCredentials
// so callers cannot leak why validation failed.
func (m *SessionManager) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// SetCookie attaches the session token to the response as an HTTP-only
// cookie.
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.timeout.Seconds()),
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieName exposes the configured cookie name for handlers and tests.
func (m *SessionManager) CookieName() string {
	return m.cookieName
}
