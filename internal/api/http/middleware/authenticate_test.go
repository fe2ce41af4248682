package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authctx "github.com/dtroode/auth-service/internal/api/http/context"
	"github.com/dtroode/auth-service/internal/api/http/middleware"
	"github.com/dtroode/auth-service/internal/mocks"
	"github.com/dtroode/auth-service/internal/model"
	"github.com/dtroode/auth-service/internal/testutil"
)

func TestAuthenticate_Handle(t *testing.T) {
	contextManager := authctx.NewManager()

	newServer := func(parser middleware.TokenParser) (http.Handler, *authctx.Identity) {
		var captured authctx.Identity
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := contextManager.GetIdentityFromContext(r.Context())
			require.True(t, ok)
			captured = identity
			w.WriteHeader(http.StatusOK)
		})
		m := middleware.NewAuthenticate(parser, contextManager, testutil.MakeNoopLogger())
		return m.Handle(next), &captured
	}

	t.Run("accepts gateway headers", func(t *testing.T) {
		parser := new(mocks.TokenManager)
		handler, captured := newServer(parser)

		userID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("X-User-ID", userID.String())
		req.Header.Set("X-User-Email", "user@example.com")
		req.Header.Set("X-User-Role", "admin")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, captured.UserID)
		assert.Equal(t, "user@example.com", captured.Email)
		assert.Equal(t, model.RoleAdmin, captured.Role)
		parser.AssertNotCalled(t, "ParseAccessToken", mock.Anything)
	})

	t.Run("falls back to bearer token when gateway headers are incomplete", func(t *testing.T) {
		claims := model.AccessClaims{
			UserID: uuid.New(),
			Email:  "user@example.com",
			Role:   model.RoleUser,
		}
		parser := new(mocks.TokenManager)
		parser.On("ParseAccessToken", "access-jwt").Return(claims, nil)
		handler, captured := newServer(parser)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("X-User-ID", claims.UserID.String())
		req.Header.Set("Authorization", "Bearer access-jwt")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, claims.UserID, captured.UserID)
	})

	t.Run("rejects invalid bearer token", func(t *testing.T) {
		parser := new(mocks.TokenManager)
		parser.On("ParseAccessToken", "bad-jwt").
			Return(model.AccessClaims{}, model.ErrTokenInvalid)
		handler, _ := newServer(parser)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer bad-jwt")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication failed"}`, rec.Body.String())
	})

	t.Run("rejects malformed gateway user id without leaking the reason", func(t *testing.T) {
		parser := new(mocks.TokenManager)
		handler, _ := newServer(parser)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")
		req.Header.Set("X-User-Email", "user@example.com")
		req.Header.Set("X-User-Role", "user")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication failed"}`, rec.Body.String())
	})

	t.Run("rejects request with no credentials", func(t *testing.T) {
		parser := new(mocks.TokenManager)
		handler, _ := newServer(parser)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
