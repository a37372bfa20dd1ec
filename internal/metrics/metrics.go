// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

// Package metrics provides Prometheus instrumentation for the HTTP API,
// the DuckDB storage layer, reading ingestion, and WebSocket connections.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "therminator_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "therminator_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	apiActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "therminator_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "therminator_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "therminator_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Ingestion metrics
	ReadingsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "therminator_readings_ingested_total",
			Help: "Total number of reading ingestion attempts by outcome",
		},
		[]string{"outcome"}, // "created", "conflict", "invalid"
	)

	// WebSocket metrics
	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "therminator_websocket_clients",
			Help: "Number of connected WebSocket clients",
		},
	)
)

// Ingestion outcomes recorded by ReadingsIngested.
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
)

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		apiActiveRequests.Inc()
	} else {
		apiActiveRequests.Dec()
	}
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, path string, status int, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database operation, and counts the
// error if it failed.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}
