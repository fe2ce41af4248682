package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/auth-service/internal/model"
)

func TestRefreshToken_Live(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token model.RefreshToken
		want  bool
	}{
		{
			name:  "live token",
			token: model.RefreshToken{ExpiresAt: now.Add(time.Hour)},
			want:  true,
		},
		{
			name:  "revoked token",
			token: model.RefreshToken{Revoked: true, ExpiresAt: now.Add(time.Hour)},
			want:  false,
		},
		{
			name:  "expired token",
			token: model.RefreshToken{ExpiresAt: now.Add(-time.Second)},
			want:  false,
		},
		{
			name:  "revoked and expired",
			token: model.RefreshToken{Revoked: true, ExpiresAt: now.Add(-time.Second)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.token.Live(now))
		})
	}
}

func TestUserUpdate_Empty(t *testing.T) {
	name := "Name"

	assert.True(t, model.UserUpdate{}.Empty())
	assert.False(t, model.UserUpdate{Name: &name}.Empty())
	assert.False(t, model.UserUpdate{PictureURL: &name}.Empty())
}
