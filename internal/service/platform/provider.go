package platform

import (
	"context"

	"onboardly.app/portal/internal/model"
)

// Provider is one OAuth platform: consent URL, code exchange, identity and
// asset discovery. Implementations hold their credentials from config and
// never read the environment.
type Provider interface {
	Platform() model.Platform

	// AuthorizationURL builds the consent URL the browser is sent to.
	AuthorizationURL(req AuthorizationRequest) (string, error)

	// ExchangeCode trades an authorization code for tokens. Any failure is a
	// *TokenExchangeError and ends the OAuth flow.
	ExchangeCode(ctx context.Context, req ExchangeRequest) (*TokenResponse, error)

	// FetchIdentity resolves the external account behind a token. Any failure
	// is an *IdentityFetchError.
	FetchIdentity(ctx context.Context, token *TokenResponse, shop string) (*Identity, error)

	// DiscoverAssets queries the sub-APIs unlocked by the granted scopes. It
	// never fails and never returns an empty list.
	DiscoverAssets(ctx context.Context, req DiscoveryRequest) []model.Asset
}

type AuthorizationRequest struct {
	State       string
	RedirectURI string
	Scopes      []string
	Shop        string // Shopify only
}

type ExchangeRequest struct {
	Code        string
	RedirectURI string
	Shop        string // Shopify only
}

// TokenResponse is the provider token payload normalised across platforms.
type TokenResponse struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	IDToken      string
	OpenID       string // TikTok user id, returned with the token
	Scopes       []string
	ExpiresIn    int64 // seconds, 0 when the provider did not say
}

type Identity struct {
	ID       string
	Username string
	Name     string
	Email    string
	Picture  string
}

// DisplayName is the best human label for the account.
func (i *Identity) DisplayName() string {
	switch {
	case i.Username != "":
		return i.Username
	case i.Name != "":
		return i.Name
	default:
		return i.Email
	}
}

type DiscoveryRequest struct {
	AccessToken string
	Scopes      []string
	Shop        string // Shopify only
}
