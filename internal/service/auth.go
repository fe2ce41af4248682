package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

// Auth drives the refresh-token lifecycle: login, refresh-with-rotation,
// logout and logout-everywhere. It holds no state between calls; everything
// durable lives in the stores.
type Auth struct {
	provider   model.IdentityProvider
	identity   *Identity
	userStore  model.UserStore
	tokenStore model.RefreshTokenStore
	manager    model.TokenManager
	tx         model.TxRunner
	logger     *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	provider model.IdentityProvider,
	userStore model.UserStore,
	tokenStore model.RefreshTokenStore,
	manager model.TokenManager,
	tx model.TxRunner,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		provider:   provider,
		identity:   NewIdentity(userStore, logger),
		userStore:  userStore,
		tokenStore: tokenStore,
		manager:    manager,
		tx:         tx,
		logger:     logger,
	}
}

// LoginURL returns the external provider's authorization page URL.
func (a *Auth) LoginURL(state string) string {
	return a.provider.AuthCodeURL(state)
}

// Login exchanges the authorization code, reconciles the asserted identity
// with a local user and issues a refresh token. The user upsert and the
// token insert commit together or not at all.
func (a *Auth) Login(ctx context.Context, code string, device model.DeviceMeta) (string, error) {
	a.logger.Debug("Auth service: starting external login")

	assertion, err := a.provider.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	var refresh string
	err = a.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := a.identity.Reconcile(ctx, assertion)
		if err != nil {
			return err
		}

		refresh, err = a.manager.GenerateRefreshToken(user.ID)
		if err != nil {
			return fmt.Errorf("failed to issue refresh token: %w", err)
		}

		expiresAt := time.Now().Add(a.manager.RefreshTTL())
		if _, err := a.tokenStore.Create(ctx, user.ID, refresh, expiresAt, device); err != nil {
			return fmt.Errorf("failed to persist refresh token: %w", err)
		}

		a.logger.Info("Auth service: user authenticated",
			"user_id", user.ID)
		return nil
	})
	if err != nil {
		a.logger.Error("Auth service: login failed",
			"error", err.Error())
		return "", err
	}

	return refresh, nil
}

// Refresh rotates a presented refresh token: the old record is revoked and a
// new token pair is minted inside one transaction. A token redeemed once can
// never be redeemed again; a concurrent attempt on the same token observes
// it as revoked.
func (a *Auth) Refresh(ctx context.Context, rawRefresh string, device model.DeviceMeta) (model.TokenPair, error) {
	a.logger.Debug("Auth service: starting token refresh")

	userID, err := a.manager.ParseRefreshToken(rawRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	record, err := a.tokenStore.GetByToken(ctx, rawRefresh)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, fmt.Errorf("%w: refresh token is unknown", model.ErrTokenInvalid)
		}
		return model.TokenPair{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if record.Revoked {
		return model.TokenPair{}, model.ErrTokenRevoked
	}
	if time.Now().After(record.ExpiresAt) {
		return model.TokenPair{}, model.ErrTokenExpired
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrUserNotFound
		}
		return model.TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}

	var pair model.TokenPair
	err = a.tx.WithTx(ctx, func(ctx context.Context) error {
		// Conditional revoke is the rotation tie-break: when two refreshes
		// race on the same token, only one flips the record and proceeds.
		revoked, err := a.tokenStore.Revoke(ctx, rawRefresh)
		if err != nil {
			return fmt.Errorf("failed to revoke old refresh token: %w", err)
		}
		if !revoked {
			return model.ErrTokenRevoked
		}

		access, err := a.manager.GenerateAccessToken(user)
		if err != nil {
			return fmt.Errorf("failed to issue access token: %w", err)
		}

		newRefresh, err := a.manager.GenerateRefreshToken(user.ID)
		if err != nil {
			return fmt.Errorf("failed to issue refresh token: %w", err)
		}

		expiresAt := time.Now().Add(a.manager.RefreshTTL())
		if _, err := a.tokenStore.Create(ctx, user.ID, newRefresh, expiresAt, device); err != nil {
			return fmt.Errorf("failed to persist refresh token: %w", err)
		}

		pair = model.TokenPair{
			AccessToken:  access,
			TokenType:    "Bearer",
			ExpiresIn:    int64(a.manager.AccessTTL().Seconds()),
			RefreshToken: newRefresh,
		}
		return nil
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	a.logger.Info("Auth service: tokens rotated",
		"user_id", user.ID)
	return pair, nil
}

// Logout revokes the presented refresh token. A token that is found but
// already revoked is treated as a normal revoke; only a token with no record
// at all is an error.
func (a *Auth) Logout(ctx context.Context, rawRefresh string) error {
	if _, err := a.tokenStore.GetByToken(ctx, rawRefresh); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if _, err := a.tokenStore.Revoke(ctx, rawRefresh); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	a.logger.Info("Auth service: token revoked")
	return nil
}

// LogoutAll revokes every live token owned by the user. Revoking zero
// tokens is still a success.
func (a *Auth) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := a.tokenStore.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	a.logger.Info("Auth service: all tokens revoked",
		"user_id", userID)
	return nil
}
