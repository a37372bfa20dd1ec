// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/therminator/internal/auth"
	"github.com/tomtom215/therminator/internal/config"
	"github.com/tomtom215/therminator/internal/middleware"
)

// Router wires handlers, authentication, and middleware onto chi.
type Router struct {
	handler  *Handler
	resolver *auth.Resolver
	cfg      *config.Config
}

// NewRouter creates the router.
func NewRouter(handler *Handler, resolver *auth.Resolver, cfg *config.Config) *Router {
	return &Router{handler: handler, resolver: resolver, cfg: cfg}
}

// Setup builds the full route tree.
//
// Health and metrics are unauthenticated: they serve probes, not data.
// Sign-in carries a strict per-IP rate limit on top of the general
// one. Every data route sits behind RequireUser and per-route
// Prometheus instrumentation.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", rt.handler.HealthReady)
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(rt.rateLimit(rt.cfg.Security.RateLimitReqs, rt.cfg.Security.RateLimitWindow))
		r.With(rt.rateLimit(
			rt.cfg.Security.SignInLimitReqs,
			rt.cfg.Security.SignInLimitWindow,
		)).Post("/sign-in", rt.handler.SignIn)
		r.Post("/sign-out", rt.handler.SignOut)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.rateLimit(rt.cfg.Security.RateLimitReqs, rt.cfg.Security.RateLimitWindow))
		r.Use(middleware.PrometheusMetrics)
		r.Use(auth.RequireUser(rt.resolver))

		r.Get("/homes", rt.handler.ListHomes)
		r.Post("/homes", rt.handler.CreateHome)
		r.Get("/homes/{home_id}/sensors", rt.handler.ListSensors)
		r.Post("/homes/{home_id}/sensors", rt.handler.CreateSensor)
		r.Get("/sensors/{sensor_uuid}", rt.handler.GetSensor)
		r.Get("/{sensor_uuid}/readings/{date}", rt.handler.ListReadings)
		r.Post("/{sensor_uuid}/readings", rt.handler.CreateReading)
		r.Get("/{sensor_uuid}/live", rt.handler.LiveReadings)
	})

	return r
}

// rateLimit returns a per-IP limiter, or a no-op when disabled in
// config so tests are not throttled.
func (rt *Router) rateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if rt.cfg.Security.RateLimitDisabled || requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(requests, window)
}
