package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists refresh-token provenance. Implementations store
// a one-way hash of the raw token, never the raw token itself.
type RefreshTokenStore interface {
	Create(ctx context.Context, userID uuid.UUID, rawToken string, expiresAt time.Time, device DeviceMeta) (RefreshToken, error)
	GetByToken(ctx context.Context, rawToken string) (RefreshToken, error)
	// Revoke marks the matching live record revoked. The returned bool
	// reports whether this call flipped the record; false means the record
	// was already revoked or does not exist.
	Revoke(ctx context.Context, rawToken string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// DeviceMeta is optional client metadata captured when a token is issued.
type DeviceMeta struct {
	UserAgent *string
	IPAddress *string
}

// RefreshToken is the stored provenance of an issued refresh token.
type RefreshToken struct {
	ID        uuid.UUID
	TokenHash string
	UserID    uuid.UUID
	UserAgent *string
	IPAddress *string
	Revoked   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Live reports whether the record is redeemable: not revoked and not expired.
func (t RefreshToken) Live(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
