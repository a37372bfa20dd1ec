// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/therminator/internal/database"
	"github.com/tomtom215/therminator/internal/models"
)

// fakeUserStore serves users from memory, keyed by id and API key.
type fakeUserStore struct {
	byID  map[int64]*models.User
	byKey map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	store := &fakeUserStore{
		byID:  make(map[int64]*models.User),
		byKey: make(map[string]*models.User),
	}
	for _, user := range users {
		store.byID[user.ID] = user
		store.byKey[user.APIKey] = user
	}
	return store
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) GetUserByAPIKey(_ context.Context, apiKey string) (*models.User, error) {
	if user, ok := s.byKey[apiKey]; ok {
		return user, nil
	}
	return nil, database.ErrNotFound
}

func TestAPIKeyAuthenticator(t *testing.T) {
	user := &models.User{ID: 7, Email: "alice@example.com", APIKey: "secret-key"}
	authenticator := NewAPIKeyAuthenticator(newFakeUserStore(user))

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"valid key", "secret-key", nil},
		{"no header", "", ErrNoCredentials},
		{"unknown key", "other-key", ErrInvalidCredentials},
		{"bearer prefix is not stripped", "Bearer secret-key", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			principal, err := authenticator.Authenticate(context.Background(), req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if principal.User.ID != user.ID || principal.Method != "api_key" {
				t.Errorf("unexpected principal %+v", principal)
			}
		})
	}
}

func TestSessionAuthenticator(t *testing.T) {
	manager, err := NewSessionManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := &models.User{ID: 7, Email: "alice@example.com", APIKey: "secret-key"}
	authenticator := NewSessionAuthenticator(manager, newFakeUserStore(user))

	token, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: manager.CookieName(), Value: token})
		principal, err := authenticator.Authenticate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if principal.User.ID != 7 || principal.Method != "session" {
			t.Errorf("unexpected principal %+v", principal)
		}
	})

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := authenticator.Authenticate(context.Background(), req); !errors.Is(err, ErrNoCredentials) {
			t.Errorf("got %v, want ErrNoCredentials", err)
		}
	})

	t.Run("garbage cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: manager.CookieName(), Value: "garbage"})
		if _, err := authenticator.Authenticate(context.Background(), req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("cookie for deleted user", func(t *testing.T) {
		orphan, err := manager.Issue(&models.User{ID: 999, Email: "gone@example.com"})
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: manager.CookieName(), Value: orphan})
		if _, err := authenticator.Authenticate(context.Background(), req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestResolverOrder(t *testing.T) {
	manager, err := NewSessionManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessionUser := &models.User{ID: 1, Email: "session@example.com", APIKey: "session-key"}
	keyUser := &models.User{ID: 2, Email: "key@example.com", APIKey: "api-key"}
	store := newFakeUserStore(sessionUser, keyUser)

	resolver := NewResolver(
		NewSessionAuthenticator(manager, store),
		NewAPIKeyAuthenticator(store),
	)

	token, err := manager.Issue(sessionUser)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	t.Run("session wins when both present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: manager.CookieName(), Value: token})
		req.Header.Set("Authorization", "api-key")
		principal, err := resolver.Resolve(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if principal.User.ID != 1 {
			t.Errorf("got user %d, want session user 1", principal.User.ID)
		}
	})

	t.Run("falls through to api key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "api-key")
		principal, err := resolver.Resolve(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if principal.User.ID != 2 {
			t.Errorf("got user %d, want key user 2", principal.User.ID)
		}
	})

	t.Run("nothing presented", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := resolver.Resolve(context.Background(), req); !errors.Is(err, ErrNoCredentials) {
			t.Errorf("got %v, want ErrNoCredentials", err)
		}
	})
}

func TestRequireUser(t *testing.T) {
	manager, err := NewSessionManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := &models.User{ID: 1, Email: "alice@example.com", APIKey: "api-key"}
	store := newFakeUserStore(user)
	resolver := NewResolver(
		NewSessionAuthenticator(manager, store),
		NewAPIKeyAuthenticator(store),
	)

	var seen *Principal
	handler := RequireUser(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("authenticated request passes principal", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/v1/homes", nil)
		req.Header.Set("Authorization", "api-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200", rec.Code)
		}
		if seen == nil || seen.User.ID != 1 {
			t.Errorf("principal not propagated: %+v", seen)
		}
	})

	t.Run("json client gets 401 body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/homes", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got status %d, want 401", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), UnauthorizedMessage) {
			t.Errorf("body %q missing unauthorized message", rec.Body.String())
		}
	})

	t.Run("missing accept header gets 401 not redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/homes", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want 401", rec.Code)
		}
	})

	t.Run("browser gets redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/homes", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusFound {
			t.Fatalf("got status %d, want 302", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != SignInPath {
			t.Errorf("got location %q, want %q", loc, SignInPath)
		}
	})

	t.Run("invalid key with html accept still redirects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/homes", nil)
		req.Header.Set("Accept", "text/html")
		req.Header.Set("Authorization", "wrong-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusFound {
			t.Errorf("got status %d, want 302", rec.Code)
		}
	})
}
