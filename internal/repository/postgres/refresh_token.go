package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/auth-service/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// HashToken returns the hex-encoded SHA-256 digest of a raw refresh token.
// Only this digest is ever persisted.
func HashToken(rawToken string) string {
	h := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(h[:])
}

func (r *RefreshTokenRepository) Create(
	ctx context.Context,
	userID uuid.UUID,
	rawToken string,
	expiresAt time.Time,
	device model.DeviceMeta,
) (model.RefreshToken, error) {
	const query = `
        INSERT INTO refresh_tokens (id, token_hash, user_id, user_agent, ip_address, is_revoked, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5, FALSE, $6, NOW())
        RETURNING created_at
    `

	rt := model.RefreshToken{
		ID:        uuid.New(),
		TokenHash: HashToken(rawToken),
		UserID:    userID,
		UserAgent: device.UserAgent,
		IPAddress: device.IPAddress,
		Revoked:   false,
		ExpiresAt: expiresAt,
	}

	err := r.db.q(ctx).QueryRow(ctx, query,
		rt.ID, rt.TokenHash, rt.UserID, rt.UserAgent, rt.IPAddress, rt.ExpiresAt,
	).Scan(&rt.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.RefreshToken{}, model.ErrConflict
		}
		return model.RefreshToken{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return rt, nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, rawToken string) (model.RefreshToken, error) {
	const query = `
        SELECT id, token_hash, user_id, user_agent, ip_address, is_revoked, expires_at, created_at
        FROM refresh_tokens WHERE token_hash = $1
    `

	var rt model.RefreshToken
	err := r.db.q(ctx).QueryRow(ctx, query, HashToken(rawToken)).Scan(
		&rt.ID, &rt.TokenHash, &rt.UserID, &rt.UserAgent, &rt.IPAddress,
		&rt.Revoked, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by hash: %w", err)
	}

	return rt, nil
}

// Revoke is a conditional update: only a currently-live record is flipped.
// The returned bool is the rotation tie-break; under concurrent refresh of
// the same token, exactly one caller observes true.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, rawToken string) (bool, error) {
	const query = `
        UPDATE refresh_tokens SET is_revoked = TRUE
        WHERE token_hash = $1 AND is_revoked = FALSE
    `

	tag, err := r.db.q(ctx).Exec(ctx, query, HashToken(rawToken))
	if err != nil {
		return false, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE refresh_tokens SET is_revoked = TRUE
        WHERE user_id = $1 AND is_revoked = FALSE
    `

	if _, err := r.db.q(ctx).Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return nil
}

// DeleteExpired purges rows past their expiry regardless of revocation
// state. Maintenance only, never on the request path.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM refresh_tokens WHERE expires_at < NOW()`

	tag, err := r.db.q(ctx).Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
