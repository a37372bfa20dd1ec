// Therminator - Multi-Tenant Home Sensor Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/therminator

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/therminator/internal/auth"
	"github.com/tomtom215/therminator/internal/database"
	"github.com/tomtom215/therminator/internal/logging"
	"github.com/tomtom215/therminator/internal/validation"
)

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInResponse struct {
	Token string `json:"token"`
}

// SignIn answers POST /api/v1/auth/sign-in. On success it both sets
// the session cookie for browsers and returns the token in the body
// for clients that prefer to carry it themselves. Unknown email and
// wrong password share one message so accounts cannot be enumerated.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if validationErr := validation.ValidateStruct(&req); validationErr != nil {
		respondError(w, http.StatusUnprocessableEntity, validationErr.Error())
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, msgInvalidSignIn)
		return
	}
	if err != nil {
		respondInternalError(w, err)
		return
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		logging.Info().
			Str("email", sanitizeLogValue(req.Email)).
			Msg("Sign-in rejected: wrong password")
		respondError(w, http.StatusUnauthorized, msgInvalidSignIn)
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		respondInternalError(w, err)
		return
	}

	h.sessions.SetCookie(w, token)
	respondJSON(w, http.StatusOK, signInResponse{Token: token})
}

// SignOut answers POST /api/v1/auth/sign-out. Sessions are stateless
// tokens, so signing out clears the cookie and nothing else.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
