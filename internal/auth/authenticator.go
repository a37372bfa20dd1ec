// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/therminator/internal/database"
	"github.com/tomtom215/therminator/internal/models"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	User   *models.User
	Method string // "session" or "api_key"
}

// Authenticator extracts and verifies credentials from a request.
// Implementations return ErrNoCredentials when the request carries
// nothing they recognize, letting the Resolver try the next one.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*Principal, error)
	Name() string
}

// UserStore is the subset of the storage layer authentication needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
}

// SessionAuthenticator validates the session cookie and loads its user.
type SessionAuthenticator struct {
	sessions *SessionManager
	store    UserStore
}

// NewSessionAuthenticator creates a cookie-based authenticator.
func NewSessionAuthenticator(sessions *SessionManager, store UserStore) *SessionAuthenticator {
	return &SessionAuthenticator{sessions: sessions, store: store}
}

// Name identifies this authenticator in logs.
func (a *SessionAuthenticator) Name() string { return "session" }

// Authenticate reads the session cookie, validates the token, and loads
// the user it names. A cookie for a since-deleted user is treated as
// invalid credentials, not as a missing user.
func (a *SessionAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Principal, error) {
	cookie, err := r.Cookie(a.sessions.CookieName())
	if err != nil || cookie.Value == "" {
		return nil, ErrNoCredentials
	}

	claims, err := a.sessions.Validate(cookie.Value)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := a.store.GetUserByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return &Principal{User: user, Method: a.Name()}, nil
}

// APIKeyAuthenticator matches the Authorization header against stored
// API keys. The header value is the raw key with no scheme prefix, so
// "Bearer <key>" does not authenticate.
type APIKeyAuthenticator struct {
	store UserStore
}

// NewAPIKeyAuthenticator creates a header-based authenticator.
func NewAPIKeyAuthenticator(store UserStore) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{store: store}
}

// Name identifies this authenticator in logs.
func (a *APIKeyAuthenticator) Name() string { return "api_key" }

// Authenticate looks up the user whose API key exactly equals the
// Authorization header value.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Principal, error) {
	key := r.Header.Get("Authorization")
	if key == "" {
		return nil, ErrNoCredentials
	}

	user, err := a.store.GetUserByAPIKey(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up API key: %w", err)
	}

	return &Principal{User: user, Method: a.Name()}, nil
}

// Resolver tries each authenticator in order until one produces a
// principal or returns something other than ErrNoCredentials.
type Resolver struct {
	authenticators []Authenticator
}

// NewResolver creates a resolver over the given authenticators, tried
// in the order given.
func NewResolver(authenticators ...Authenticator) *Resolver {
	return &Resolver{authenticators: authenticators}
}

// Resolve authenticates the request. ErrNoCredentials is returned only
// when no authenticator found anything to work with.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (*Principal, error) {
	for _, a := range r.authenticators {
		principal, err := a.Authenticate(ctx, req)
		if err == nil {
			return principal, nil
		}
		if errors.Is(err, ErrNoCredentials) {
			continue
		}
		return nil, err
	}
	return nil, ErrNoCredentials
}
