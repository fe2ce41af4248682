package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(user User) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (AccessClaims, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// AccessClaims are the verified claims of an access token.
type AccessClaims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// TokenPair is the result of a successful refresh: a new access token with
// its declared lifetime plus the replacement raw refresh token.
type TokenPair struct {
	AccessToken  string
	TokenType    string
	ExpiresIn    int64
	RefreshToken string
}
