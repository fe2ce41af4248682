package handler

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	authctx "github.com/dtroode/auth-service/internal/api/http/context"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

const (
	refreshCookieName = "refresh_token"
	stateCookieName   = "oauth_state"
	cookiePath        = "/api/v1/auth"
	stateTTL          = 10 * time.Minute
)

// AuthService defines login, refresh and revoke operations.
type AuthService interface {
	LoginURL(state string) string
	Login(ctx context.Context, code string, device model.DeviceMeta) (string, error)
	Refresh(ctx context.Context, rawRefresh string, device model.DeviceMeta) (model.TokenPair, error)
	Logout(ctx context.Context, rawRefresh string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
}

// AuthConfig carries the transport knobs the auth endpoints need.
type AuthConfig struct {
	FrontendURL string
	RefreshTTL  time.Duration
	Secure      bool
	SameSite    http.SameSite
}

// Auth handles the HTTP authentication endpoints. The refresh token only
// ever travels in an HttpOnly cookie scoped to the auth path; response
// bodies carry the access token alone.
type Auth struct {
	service        AuthService
	config         AuthConfig
	contextManager *authctx.Manager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, config AuthConfig, contextManager *authctx.Manager, logger *logger.Logger) *Auth {
	return &Auth{
		service:        service,
		config:         config,
		contextManager: contextManager,
		logger:         logger,
	}
}

// GoogleLogin redirects the browser to the external provider's consent page.
// The anti-forgery state is mirrored into a short-lived cookie.
func (h *Auth) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	h.setCookie(w, stateCookieName, state, int(stateTTL.Seconds()))

	http.Redirect(w, r, h.service.LoginURL(state), http.StatusFound)
}

// GoogleCallback finishes the provider round trip: it checks the state,
// exchanges the code and hands the browser back to the frontend with a
// refresh cookie set.
func (h *Auth) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing provider callback")

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	stateCookie, err := r.Cookie(stateCookieName)
	h.clearCookie(w, stateCookieName)
	if err != nil || state == "" || stateCookie.Value != state {
		h.logger.Error("Auth handler: state mismatch in provider callback")
		writeAuthError(w, model.ErrOAuthFailed)
		return
	}
	if code == "" {
		writeAuthError(w, model.ErrOAuthFailed)
		return
	}

	refresh, err := h.service.Login(r.Context(), code, deviceMeta(r))
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"error", err.Error())
		writeAuthError(w, err)
		return
	}

	h.setCookie(w, refreshCookieName, refresh, int(h.config.RefreshTTL.Seconds()))
	http.Redirect(w, r, h.config.FrontendURL+"/auth/success", http.StatusFound)
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Refresh rotates the refresh cookie and returns a fresh access token.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing token refresh request")

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeAuthError(w, model.ErrTokenInvalid)
		return
	}

	pair, err := h.service.Refresh(r.Context(), cookie.Value, deviceMeta(r))
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err.Error())
		writeAuthError(w, err)
		return
	}

	h.setCookie(w, refreshCookieName, pair.RefreshToken, int(h.config.RefreshTTL.Seconds()))
	writeJSON(w, http.StatusOK, refreshResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   pair.ExpiresIn,
	})
}

// Logout revokes the presented refresh token and clears the cookie.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeAuthError(w, model.ErrTokenInvalid)
		return
	}

	if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"error", err.Error())
		writeAuthError(w, err)
		return
	}

	h.clearCookie(w, refreshCookieName)
	w.WriteHeader(http.StatusNoContent)
}

// LogoutAll revokes every session of the authenticated user.
func (h *Auth) LogoutAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeAuthError(w, model.ErrTokenInvalid)
		return
	}

	if err := h.service.LogoutAll(r.Context(), identity.UserID); err != nil {
		h.logger.Error("Auth handler: logout all failed",
			"user_id", identity.UserID,
			"error", err.Error())
		writeAuthError(w, err)
		return
	}

	h.clearCookie(w, refreshCookieName)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Auth) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.config.Secure,
		SameSite: h.config.SameSite,
	})
}

func (h *Auth) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     cookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.Secure,
		SameSite: h.config.SameSite,
	})
}

func deviceMeta(r *http.Request) model.DeviceMeta {
	meta := model.DeviceMeta{}
	if ua := r.UserAgent(); ua != "" {
		meta.UserAgent = &ua
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		meta.IPAddress = &host
	}
	return meta
}

// ParseSameSite maps a configuration string to the cookie SameSite mode.
// Unknown values fall back to Lax.
func ParseSameSite(s string) http.SameSite {
	switch s {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
