package oauth

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/oauth2-proxy/mockoidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/auth-service/internal/model"
	"github.com/dtroode/auth-service/internal/testutil"
)

const redirectURI = "http://localhost:8080/api/v1/auth/google/callback"

func newTestProvider(t *testing.T) (*Google, *mockoidc.MockOIDC) {
	t.Helper()

	m, err := mockoidc.Run()
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown() })

	cfg := m.Config()
	provider, err := NewGoogle(context.Background(), Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  redirectURI,
		Issuer:       cfg.Issuer,
	}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	return provider, m
}

// authorize walks the provider's authorization endpoint and captures the
// code from the redirect back to our callback.
func authorize(t *testing.T, m *mockoidc.MockOIDC, state string) string {
	t.Helper()

	params := url.Values{}
	params.Set("client_id", m.Config().ClientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("state", state)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(m.AuthorizationEndpoint() + "?" + params.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, state, location.Query().Get("state"))

	code := location.Query().Get("code")
	require.NotEmpty(t, code)
	return code
}

func TestNewGoogle_DiscoveryFailure(t *testing.T) {
	_, err := NewGoogle(context.Background(), Config{
		Issuer: "http://127.0.0.1:1/nowhere",
	}, testutil.MakeNoopLogger())
	require.Error(t, err)
}

func TestGoogle_AuthCodeURL(t *testing.T) {
	provider, m := newTestProvider(t)

	authURL, err := url.Parse(provider.AuthCodeURL("state-123"))
	require.NoError(t, err)

	assert.Equal(t, "state-123", authURL.Query().Get("state"))
	assert.Equal(t, m.Config().ClientID, authURL.Query().Get("client_id"))
	assert.Equal(t, redirectURI, authURL.Query().Get("redirect_uri"))
	assert.Contains(t, authURL.Query().Get("scope"), "openid")
}

func TestGoogle_Exchange(t *testing.T) {
	provider, m := newTestProvider(t)

	m.QueueUser(&mockoidc.MockUser{
		Subject: "g-12345",
		Email:   "user@example.com",
	})

	code := authorize(t, m, "state-abc")

	identity, err := provider.Exchange(context.Background(), code)
	require.NoError(t, err)

	assert.Equal(t, "g-12345", identity.ExternalID)
	assert.Equal(t, "user@example.com", identity.Email)
}

func TestGoogle_Exchange_BadCode(t *testing.T) {
	provider, _ := newTestProvider(t)

	_, err := provider.Exchange(context.Background(), "bogus-code")
	require.ErrorIs(t, err, model.ErrOAuthFailed)
}
