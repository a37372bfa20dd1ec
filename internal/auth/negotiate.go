// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package auth

import (
	"strconv"
	"strings"
)

// AcceptsJSON reports whether the client prefers a JSON response over
// HTML, judged by Accept header q-values. A request with no Accept
// header at all is assumed to be an API client and gets JSON. JSON wins
// ties: a browser sending "text/html,application/json" still counts as
// HTML-preferring only when html's quality is strictly higher.
func AcceptsJSON(accept string) bool {
	if strings.TrimSpace(accept) == "" {
		return true
	}

	qJSON := acceptQuality(accept, "application/json", "application/*")
	qHTML := acceptQuality(accept, "text/html", "text/*")
	return qJSON > 0 && qJSON >= qHTML
}

// acceptQuality returns the effective quality for a media type, taking
// the most specific match among the exact type, its type wildcard, and
// "*/*".
func acceptQuality(accept, exact, typeWildcard string) float64 {
	var (
		qExact, qType, qAny float64
		hasExact, hasType   bool
		hasAny              bool
	)

	for _, part := range strings.Split(accept, ",") {
		mediaType, q := parseAcceptPart(part)
		if mediaType == "" {
			continue
		}
		switch mediaType {
		case exact:
			qExact, hasExact = q, true
		case typeWildcard:
			qType, hasType = q, true
		case "*/*":
			qAny, hasAny = q, true
		}
	}

	switch {
	case hasExact:
		return qExact
	case hasType:
		return qType
	case hasAny:
		return qAny
	default:
		return 0
	}
}

func parseAcceptPart(part string) (string, float64) {
	fields := strings.Split(part, ";")
	mediaType := strings.ToLower(strings.TrimSpace(fields[0]))
	if mediaType == "" {
		return "", 0
	}

	q := 1.0
	for _, field := range fields[1:] {
		field = strings.TrimSpace(field)
		if !strings.HasPrefix(field, "q=") {
			continue
		}
		parsed, err := strconv.ParseFloat(field[2:], 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return mediaType, 0
		}
		q = parsed
	}
	return mediaType, q
}
