package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

// Identity reconciles external identity assertions with local user records.
type Identity struct {
	userStore model.UserStore
	logger    *logger.Logger
}

// NewIdentity creates a new Identity service.
func NewIdentity(userStore model.UserStore, logger *logger.Logger) *Identity {
	return &Identity{userStore: userStore, logger: logger}
}

// Reconcile finds or creates the local user for an assertion. The external
// provider id is the only join key: email may change upstream and must never
// be used to match accounts. For an existing user only the mutable profile
// fields (name, picture) are refreshed; email, role and external id stay as
// they are.
func (s *Identity) Reconcile(ctx context.Context, assertion model.ExternalIdentity) (model.User, error) {
	user, err := s.userStore.GetByExternalID(ctx, assertion.ExternalID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("failed to get user by external id: %w", err)
		}

		s.logger.Info("Identity service: registering new user",
			"email", assertion.Email)

		created, err := s.userStore.Create(ctx, model.User{
			ID:         uuid.New(),
			Email:      assertion.Email,
			Name:       assertion.Name,
			PictureURL: assertion.PictureURL,
			Role:       model.RoleUser,
			ExternalID: assertion.ExternalID,
			IsActive:   true,
		})
		if err != nil {
			return model.User{}, fmt.Errorf("failed to create user: %w", err)
		}

		return created, nil
	}

	s.logger.Debug("Identity service: refreshing user profile",
		"user_id", user.ID)

	updated, err := s.userStore.Update(ctx, user.ID, model.UserUpdate{
		Name:       &assertion.Name,
		PictureURL: assertion.PictureURL,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user profile: %w", err)
	}

	return updated, nil
}
