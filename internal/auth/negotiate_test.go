// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package auth

import "testing"

func TestAcceptsJSON(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   bool
	}{
		{"missing header", "", true},
		{"whitespace only", "   ", true},
		{"plain json", "application/json", true},
		{"plain html", "text/html", false},
		{"browser default", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", false},
		{"json preferred over html", "application/json,text/html;q=0.9", true},
		{"html preferred over json", "text/html,application/json;q=0.9", false},
		{"equal quality favors json", "text/html,application/json", true},
		{"explicit equal q favors json", "text/html;q=0.8,application/json;q=0.8", true},
		{"json via wildcard only", "*/*", true},
		{"json excluded by zero q", "application/json;q=0,text/html", false},
		{"application wildcard", "application/*", true},
		{"text wildcard beats application wildcard at higher q", "text/*;q=1.0,application/*;q=0.5", false},
		{"case insensitive type", "Application/JSON", true},
		{"malformed q treated as zero", "application/json;q=bogus", false},
		{"curl style wildcard with html", "text/html;q=0.5,*/*;q=0.8", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AcceptsJSON(tt.accept); got != tt.want {
				t.Errorf("AcceptsJSON(%q) = %v, want %v", tt.accept, got, tt.want)
			}
		})
	}
}
