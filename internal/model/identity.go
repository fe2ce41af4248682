package model

import "context"

// ExternalIdentity is the identity assertion produced by the external
// provider after a successful authorization-code exchange.
type ExternalIdentity struct {
	ExternalID string
	Email      string
	Name       string
	PictureURL *string
}

// IdentityProvider abstracts the external OAuth/OIDC provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (ExternalIdentity, error)
}
