package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

// User provides profile operations over the user directory.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{userStore: userStore, logger: logger}
}

// GetByID returns the user with the given id.
func (s *User) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Exists reports whether a user with the given id exists.
func (s *User) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.userStore.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile applies a partial profile update. Unset fields are left
// untouched.
func (s *User) UpdateProfile(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	user, err := s.userStore.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: profile updated",
		"user_id", id)
	return user, nil
}
