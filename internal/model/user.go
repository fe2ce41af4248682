package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is a user authorization role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByExternalID(ctx context.Context, externalID string) (User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
}

// User represents a stored user linked to an external identity provider.
type User struct {
	ID         uuid.UUID
	Email      string
	Name       string
	PictureURL *string
	Role       Role
	ExternalID string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
// Email, role and external id are immutable once the account is linked and
// are deliberately absent here.
type UserUpdate struct {
	Name       *string
	PictureURL *string
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.PictureURL == nil
}
