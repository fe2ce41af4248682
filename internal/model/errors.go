package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on unique-key violations (email, external id,
	// token hash).
	ErrConflict = errors.New("already exists")

	// ErrTokenInvalid covers malformed, unsigned and wrong-kind tokens, and
	// presented tokens with no store record.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when either the signature-embedded or the
	// stored expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked is returned when the stored record is revoked.
	ErrTokenRevoked = errors.New("refresh token revoked")

	// ErrUserNotFound is returned when a token's owning user is missing.
	ErrUserNotFound = errors.New("user not found")

	// ErrOAuthFailed is returned when the external provider exchange fails.
	ErrOAuthFailed = errors.New("external authentication failed")
)
