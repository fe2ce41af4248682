// Package router assembles the HTTP surface: public auth and user routes,
// the internal service-to-service routes and the health probe.
package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	authctx "github.com/dtroode/auth-service/internal/api/http/context"
	"github.com/dtroode/auth-service/internal/api/http/handler"
	"github.com/dtroode/auth-service/internal/api/http/middleware"
	"github.com/dtroode/auth-service/internal/config"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router builds the chi mux for the service.
type Router struct {
	authService    handler.AuthService
	userService    handler.UserService
	tokenManager   model.TokenManager
	contextManager *authctx.Manager
	pinger         Pinger
	config         *config.Config
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	userService handler.UserService,
	tokenManager model.TokenManager,
	contextManager *authctx.Manager,
	pinger Pinger,
	cfg *config.Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		pinger:         pinger,
		config:         cfg,
		logger:         logger,
	}
}

// Register wires middleware and routes and returns the mux.
func (r *Router) Register() *chi.Mux {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, handler.AuthConfig{
		FrontendURL: r.config.FrontendURL,
		RefreshTTL:  r.config.JWT.RefreshTTL(),
		Secure:      r.config.Cookie.Secure,
		SameSite:    handler.ParseSameSite(r.config.Cookie.SameSite),
	}, r.contextManager, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Get("/healthz", r.handleHealth)

	mux.Route("/api/v1/auth", func(mux chi.Router) {
		mux.Get("/google", authHandler.GoogleLogin)
		mux.Get("/google/callback", authHandler.GoogleCallback)
		mux.Post("/refresh", authHandler.Refresh)
		mux.Post("/logout", authHandler.Logout)

		mux.Group(func(mux chi.Router) {
			mux.Use(authenticate.Handle)
			mux.Post("/logout/all", authHandler.LogoutAll)
		})
	})

	mux.Route("/api/v1/users", func(mux chi.Router) {
		mux.Use(authenticate.Handle)
		mux.Get("/me", userHandler.Me)
		mux.Patch("/me", userHandler.UpdateMe)
	})

	// Internal surface: reachable only inside the deployment network,
	// no end-user authentication.
	mux.Route("/internal/users", func(mux chi.Router) {
		mux.Get("/{id}", userHandler.Get)
		mux.Get("/{id}/exists", userHandler.Exists)
	})

	return mux
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if err := r.pinger.Ping(req.Context()); err != nil {
		r.logger.Error("Router: health check failed",
			"error", err.Error())
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}
