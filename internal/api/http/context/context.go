// Package context carries the authenticated caller identity through the
// request context.
package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/auth-service/internal/model"
)

type identityKey struct{}

// Identity is the authenticated caller extracted by the authentication
// middleware, either from trusted gateway headers or from a bearer token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   model.Role
}

// Manager sets and retrieves the caller identity on a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext retrieves the identity set by the authentication
// middleware. The boolean is false for unauthenticated requests.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
