package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/auth-service/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service errors to HTTP responses. Every token failure,
// whatever the internal reason, collapses to the same 401 body so a caller
// cannot probe which check rejected a credential.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication failed"})
	case errors.Is(err, model.ErrOAuthFailed):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication with provider failed"})
	case errors.Is(err, model.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
	case errors.Is(err, model.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "conflict"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeAuthError is writeError for the token endpoints. There a missing
// owning user is an authentication failure like any other and must be
// indistinguishable from an invalid or revoked token; the 404 mapping is
// reserved for the profile and internal user endpoints.
func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrUserNotFound) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication failed"})
		return
	}
	writeError(w, err)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
