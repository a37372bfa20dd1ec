// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package validation

import (
	"strings"
	"testing"
)

type homeRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		payload     any
		wantErr     bool
		wantMessage string
	}{
		{
			name:    "valid home",
			payload: &homeRequest{Name: "Cottage", Timezone: "America/New_York"},
		},
		{
			name:    "empty timezone allowed",
			payload: &homeRequest{Name: "Cottage"},
		},
		{
			name:        "blank name",
			payload:     &homeRequest{Timezone: "UTC"},
			wantErr:     true,
			wantMessage: "name can't be blank",
		},
		{
			name:        "bogus timezone",
			payload:     &homeRequest{Name: "Cottage", Timezone: "Mars/Olympus_Mons"},
			wantErr:     true,
			wantMessage: "timezone must be a valid IANA timezone",
		},
		{
			name:        "name too long",
			payload:     &homeRequest{Name: strings.Repeat("x", 121)},
			wantErr:     true,
			wantMessage: "name must be at most 120 characters",
		},
		{
			name:        "bad email",
			payload:     &signInRequest{Email: "not-an-email", Password: "pw"},
			wantErr:     true,
			wantMessage: "email must be a valid email address",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.payload)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("error %q missing %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestValidateStructCollectsAllFields(t *testing.T) {
	err := ValidateStruct(&signInRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d field errors, want 2", len(err.Errors()))
	}
	message := err.Error()
	for _, want := range []string{"email can't be blank", "password can't be blank"} {
		if !strings.Contains(message, want) {
			t.Errorf("message %q missing %q", message, want)
		}
	}
}
