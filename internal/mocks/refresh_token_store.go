package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/auth-service/internal/model"
)

// RefreshTokenStore is a mock implementation of model.RefreshTokenStore.
type RefreshTokenStore struct {
	mock.Mock
}

func (m *RefreshTokenStore) Create(ctx context.Context, userID uuid.UUID, rawToken string, expiresAt time.Time, device model.DeviceMeta) (model.RefreshToken, error) {
	args := m.Called(ctx, userID, rawToken, expiresAt, device)
	return args.Get(0).(model.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) GetByToken(ctx context.Context, rawToken string) (model.RefreshToken, error) {
	args := m.Called(ctx, rawToken)
	return args.Get(0).(model.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) Revoke(ctx context.Context, rawToken string) (bool, error) {
	args := m.Called(ctx, rawToken)
	return args.Bool(0), args.Error(1)
}

func (m *RefreshTokenStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *RefreshTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
