// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package auth

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/therminator/internal/logging"
)

type contextKey string

const principalContextKey contextKey = "auth.principal"

// UnauthorizedMessage is the body returned to API clients that present
// no valid credentials.
const UnauthorizedMessage = "Please include a valid API key in the Authorization header."

// SignInPath is where unauthenticated browser traffic is redirected.
const SignInPath = "/sign-in"

// PrincipalFromContext returns the principal stored by RequireUser, or
// nil for unauthenticated requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	principal, _ := ctx.Value(principalContextKey).(*Principal)
	return principal
}

// WithPrincipal returns a context carrying the principal. Exported for
// handler tests that bypass the middleware.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// RequireUser authenticates the request via the resolver and rejects it
// if no principal results. JSON-preferring clients get a 401 with an
// error body; everything else is redirected to the sign-in page. The
// two cases are distinguished purely by Accept header negotiation, not
// by which credentials failed.
func RequireUser(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := resolver.Resolve(r.Context(), r)
			if err != nil {
				logging.Debug().
					Str("component", "auth").
					Str("path", r.URL.Path).
					Err(err).
					Msg("Request rejected: no valid credentials")
				unauthorized(w, r)
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	if !AcceptsJSON(r.Header.Get("Accept")) {
		http.Redirect(w, r, SignInPath, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": UnauthorizedMessage}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode unauthorized response")
	}
}
