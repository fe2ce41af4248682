package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/auth-service/internal/model"
)

// IdentityProvider is a mock implementation of model.IdentityProvider.
type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *IdentityProvider) Exchange(ctx context.Context, code string) (model.ExternalIdentity, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.ExternalIdentity), args.Error(1)
}
