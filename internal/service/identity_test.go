package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/auth-service/internal/mocks"
	"github.com/dtroode/auth-service/internal/model"
	"github.com/dtroode/auth-service/internal/service"
	"github.com/dtroode/auth-service/internal/testutil"
)

func TestIdentity_Reconcile(t *testing.T) {
	ctx := context.Background()
	l := testutil.MakeNoopLogger()

	picture := "https://example.com/a.png"
	assertion := model.ExternalIdentity{
		ExternalID: "google-sub-1",
		Email:      "user@example.com",
		Name:       "Test User",
		PictureURL: &picture,
	}

	t.Run("creates user on first sign-in", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		userStore.On("GetByExternalID", mock.Anything, assertion.ExternalID).
			Return(model.User{}, model.ErrNotFound)
		userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.ID != uuid.Nil &&
				u.Email == assertion.Email &&
				u.Name == assertion.Name &&
				u.PictureURL == assertion.PictureURL &&
				u.Role == model.RoleUser &&
				u.ExternalID == assertion.ExternalID &&
				u.IsActive
		})).Return(model.User{ID: uuid.New(), Email: assertion.Email}, nil)

		s := service.NewIdentity(userStore, l)

		user, err := s.Reconcile(ctx, assertion)

		require.NoError(t, err)
		assert.Equal(t, assertion.Email, user.Email)
		userStore.AssertExpectations(t)
	})

	t.Run("refreshes profile of known user", func(t *testing.T) {
		existing := model.User{
			ID:         uuid.New(),
			Email:      "old@example.com",
			Name:       "Old Name",
			Role:       model.RoleAdmin,
			ExternalID: assertion.ExternalID,
			IsActive:   true,
		}

		userStore := new(mocks.UserStore)
		userStore.On("GetByExternalID", mock.Anything, assertion.ExternalID).
			Return(existing, nil)
		userStore.On("Update", mock.Anything, existing.ID, mock.MatchedBy(func(u model.UserUpdate) bool {
			return u.Name != nil && *u.Name == assertion.Name &&
				u.PictureURL == assertion.PictureURL
		})).Return(existing, nil)

		s := service.NewIdentity(userStore, l)

		user, err := s.Reconcile(ctx, assertion)

		require.NoError(t, err)
		// Email and role come from the stored record, not the assertion.
		assert.Equal(t, existing.Email, user.Email)
		assert.Equal(t, model.RoleAdmin, user.Role)
		userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		userStore.AssertExpectations(t)
	})

	t.Run("is idempotent across repeated sign-ins", func(t *testing.T) {
		existing := model.User{ID: uuid.New(), ExternalID: assertion.ExternalID}

		userStore := new(mocks.UserStore)
		userStore.On("GetByExternalID", mock.Anything, assertion.ExternalID).
			Return(existing, nil).Twice()
		userStore.On("Update", mock.Anything, existing.ID, mock.Anything).
			Return(existing, nil).Twice()

		s := service.NewIdentity(userStore, l)

		first, err := s.Reconcile(ctx, assertion)
		require.NoError(t, err)
		second, err := s.Reconcile(ctx, assertion)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		userStore.AssertExpectations(t)
	})

	t.Run("propagates lookup error", func(t *testing.T) {
		storeErr := errors.New("connection reset")

		userStore := new(mocks.UserStore)
		userStore.On("GetByExternalID", mock.Anything, assertion.ExternalID).
			Return(model.User{}, storeErr)

		s := service.NewIdentity(userStore, l)

		_, err := s.Reconcile(ctx, assertion)

		require.ErrorIs(t, err, storeErr)
		userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
