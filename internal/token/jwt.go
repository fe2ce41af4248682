package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/auth-service/internal/model"
)

// Claims represents JWT claims with token type and kind-specific fields.
// Access tokens carry email and role; refresh tokens carry only the subject
// plus a random JTI so two tokens minted in the same instant still differ.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string     `json:"typ"`
	Email     string     `json:"email,omitempty"`
	Role      model.Role `json:"role,omitempty"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// token lifetimes.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) model.TokenManager {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// GenerateAccessToken creates a short-lived access token carrying the user's
// email and role.
func (j *JWT) GenerateAccessToken(user model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		TokenType: typeAccess,
		Email:     user.Email,
		Role:      user.Role,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
		},
		TokenType: typeRefresh,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and extracts its claims.
func (j *JWT) ParseAccessToken(tokenString string) (model.AccessClaims, error) {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return model.AccessClaims{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return model.AccessClaims{}, fmt.Errorf("%w: subject claim missing or malformed", model.ErrTokenInvalid)
	}

	return model.AccessClaims{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}

// ParseRefreshToken validates a refresh token and extracts the user ID.
func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString, typeRefresh)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject claim missing or malformed", model.ErrTokenInvalid)
	}

	return userID, nil
}

// AccessTTL returns the configured access-token lifetime.
func (j *JWT) AccessTTL() time.Duration {
	return j.accessTTL
}

// RefreshTTL returns the configured refresh-token lifetime.
func (j *JWT) RefreshTTL() time.Duration {
	return j.refreshTTL
}

// parse verifies signature and expiry before trusting any claim, then checks
// the embedded kind. Access and refresh tokens are never interchangeable.
func (j *JWT) parse(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %s", model.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %s", model.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, model.ErrTokenInvalid
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: token type mismatch: %s", model.ErrTokenInvalid, claims.TokenType)
	}
	return claims, nil
}
