package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/auth-service/internal/model"
)

// AuthService is a mock implementation of the auth handler's service
// dependency.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) LoginURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *AuthService) Login(ctx context.Context, code string, device model.DeviceMeta) (string, error) {
	args := m.Called(ctx, code, device)
	return args.String(0), args.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, rawRefresh string, device model.DeviceMeta) (model.TokenPair, error) {
	args := m.Called(ctx, rawRefresh, device)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	args := m.Called(ctx, rawRefresh)
	return args.Error(0)
}

func (m *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
