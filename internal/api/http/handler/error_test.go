package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/auth-service/internal/model"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid token",
			err:        model.ErrTokenInvalid,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"authentication failed"}`,
		},
		{
			name:       "expired token",
			err:        model.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"authentication failed"}`,
		},
		{
			name:       "revoked token",
			err:        model.ErrTokenRevoked,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"authentication failed"}`,
		},
		{
			name:       "missing record",
			err:        model.ErrNotFound,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"authentication failed"}`,
		},
		{
			name:       "provider failure",
			err:        model.ErrOAuthFailed,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"authentication with provider failed"}`,
		},
		{
			name:       "user not found",
			err:        model.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"user not found"}`,
		},
		{
			name:       "conflict",
			err:        model.ErrConflict,
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"conflict"}`,
		},
		{
			name:       "wrapped sentinel",
			err:        fmt.Errorf("failed to look up refresh token: %w", model.ErrTokenInvalid),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"authentication failed"}`,
		},
		{
			name:       "unknown error",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteAuthError(t *testing.T) {
	t.Run("collapses missing user into the uniform auth failure", func(t *testing.T) {
		rec := httptest.NewRecorder()

		writeAuthError(rec, model.ErrUserNotFound)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication failed"}`, rec.Body.String())
	})

	t.Run("delegates everything else", func(t *testing.T) {
		rec := httptest.NewRecorder()

		writeAuthError(rec, model.ErrTokenRevoked)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication failed"}`, rec.Body.String())
	})
}
