// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextWithRequestID returns a context whose logger tags every event
// with the request id. Handlers retrieve it with FromContext.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	logger := Logger().With().Str("request_id", requestID).Logger()
	return logger.WithContext(ctx)
}

// FromContext returns the request-scoped logger, falling back to the
// global logger when the context carries none.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger != nil && logger.GetLevel() != zerolog.Disabled {
		return *logger
	}
	return Logger()
}
