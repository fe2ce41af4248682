// Package oauth implements the external identity provider collaborator via
// OIDC discovery and the authorization-code flow.
package oauth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

// Config contains the provider client registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Issuer       string
}

// Google implements model.IdentityProvider against an OIDC issuer. Endpoints
// are discovered from {Issuer}/.well-known/openid-configuration; ID tokens
// are verified against the issuer's key set before any claim is trusted.
type Google struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	logger      *logger.Logger
}

var _ model.IdentityProvider = (*Google)(nil)

// NewGoogle performs OIDC discovery and builds the provider client.
func NewGoogle(ctx context.Context, cfg Config, logger *logger.Logger) (*Google, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC endpoints: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}

	return &Google{
		oauthConfig: oauthConfig,
		verifier:    provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		logger:      logger,
	}, nil
}

// AuthCodeURL returns the provider's authorization page URL for state.
func (g *Google) AuthCodeURL(state string) string {
	return g.oauthConfig.AuthCodeURL(state)
}

// Exchange trades the authorization code for tokens, verifies the ID token
// and extracts the identity assertion. Every failure here is an external
// authentication failure, never an internal fault.
func (g *Google) Exchange(ctx context.Context, code string) (model.ExternalIdentity, error) {
	token, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		g.logger.Error("OAuth: code exchange failed", "error", err.Error())
		return model.ExternalIdentity{}, fmt.Errorf("%w: code exchange: %s", model.ErrOAuthFailed, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return model.ExternalIdentity{}, fmt.Errorf("%w: no id_token in provider response", model.ErrOAuthFailed)
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		g.logger.Error("OAuth: id token verification failed", "error", err.Error())
		return model.ExternalIdentity{}, fmt.Errorf("%w: id token verification: %s", model.ErrOAuthFailed, err)
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return model.ExternalIdentity{}, fmt.Errorf("%w: failed to decode claims: %s", model.ErrOAuthFailed, err)
	}

	if idToken.Subject == "" || claims.Email == "" {
		return model.ExternalIdentity{}, fmt.Errorf("%w: assertion is missing subject or email", model.ErrOAuthFailed)
	}

	identity := model.ExternalIdentity{
		ExternalID: idToken.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
	}
	if claims.Picture != "" {
		identity.PictureURL = &claims.Picture
	}

	return identity, nil
}
