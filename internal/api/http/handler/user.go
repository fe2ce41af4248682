package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authctx "github.com/dtroode/auth-service/internal/api/http/context"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

// UserService defines profile operations.
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error)
}

// User handles the HTTP user endpoints.
type User struct {
	service        UserService
	contextManager *authctx.Manager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service UserService, contextManager *authctx.Manager, logger *logger.Logger) *User {
	return &User{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

type userResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	PictureURL *string    `json:"picture_url"`
	Role       model.Role `json:"role"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		PictureURL: u.PictureURL,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// Me returns the authenticated user's profile.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrTokenInvalid)
		return
	}

	user, err := h.service.GetByID(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("User handler: profile lookup failed",
			"user_id", identity.UserID,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Name       *string `json:"name"`
	PictureURL *string `json:"picture_url"`
}

// UpdateMe applies a partial update to the authenticated user's profile.
// Absent fields are left untouched; email and role cannot be changed here.
func (h *User) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrTokenInvalid)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), identity.UserID, model.UserUpdate{
		Name:       req.Name,
		PictureURL: req.PictureURL,
	})
	if err != nil {
		h.logger.Error("User handler: profile update failed",
			"user_id", identity.UserID,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Get returns a user by id. Served on the internal surface for
// service-to-service lookups.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed user id"})
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// Exists reports whether a user id is known. Served on the internal surface.
func (h *User) Exists(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed user id"})
		return
	}

	exists, err := h.service.Exists(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, existsResponse{Exists: exists})
}
