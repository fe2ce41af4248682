package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	authctx "github.com/dtroode/auth-service/internal/api/http/context"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

// TokenParser validates access tokens and extracts their claims.
type TokenParser interface {
	ParseAccessToken(token string) (model.AccessClaims, error)
}

// Authenticate resolves the caller identity and injects it into the request
// context. Identity comes from the trusted gateway headers when all three are
// present, otherwise from the Authorization bearer token. Requests that
// satisfy neither are rejected with a uniform 401: the response never reveals
// which check failed.
type Authenticate struct {
	parser         TokenParser
	contextManager *authctx.Manager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(parser TokenParser, contextManager *authctx.Manager, logger *logger.Logger) *Authenticate {
	return &Authenticate{parser: parser, contextManager: contextManager, logger: logger}
}

// Handle wraps next with authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := m.identityFromHeaders(r)
		if !ok {
			identity, ok = m.identityFromBearer(r)
		}
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication failed"}`))
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) identityFromHeaders(r *http.Request) (authctx.Identity, bool) {
	id := r.Header.Get("X-User-ID")
	email := r.Header.Get("X-User-Email")
	role := r.Header.Get("X-User-Role")
	if id == "" || email == "" || role == "" {
		return authctx.Identity{}, false
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		m.logger.Debug("Authenticate middleware: malformed gateway user id header")
		return authctx.Identity{}, false
	}

	return authctx.Identity{
		UserID: userID,
		Email:  email,
		Role:   model.Role(role),
	}, true
}

func (m *Authenticate) identityFromBearer(r *http.Request) (authctx.Identity, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return authctx.Identity{}, false
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header || tokenString == "" {
		return authctx.Identity{}, false
	}

	claims, err := m.parser.ParseAccessToken(tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: access token rejected",
			"error", err.Error())
		return authctx.Identity{}, false
	}

	return authctx.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, true
}
