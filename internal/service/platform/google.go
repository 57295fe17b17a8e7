package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/model"
)

const (
	googleAuthURL         = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL        = "https://oauth2.googleapis.com/token"
	googleUserInfoURL     = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleAnalyticsURL    = "https://analyticsadmin.googleapis.com/v1beta/accountSummaries"
	googleTagManagerURL   = "https://tagmanager.googleapis.com/tagmanager/v2/accounts"
	googleSearchSitesURL  = "https://www.googleapis.com/webmasters/v3/sites"
	googleBusinessURL     = "https://mybusinessaccountmanagement.googleapis.com/v1/accounts"
	googleMerchantURL     = "https://merchantapi.googleapis.com/accounts/v1beta/accounts"
	googleAdsCustomersURL = "https://googleads.googleapis.com/v17/customers:listAccessibleCustomers"
)

type googleProvider struct {
	discoverer
	cfg   config.GoogleConfig
	oauth oauth2.Config
}

func NewGoogleProvider(cfg config.GoogleConfig, deps Deps) Provider {
	deps = deps.withDefaults()
	return &googleProvider{
		discoverer: discoverer{platform: model.PlatformGoogle, deps: deps},
		cfg:        cfg,
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  googleAuthURL,
				TokenURL: googleTokenURL,
			},
		},
	}
}

func (p *googleProvider) Platform() model.Platform {
	return model.PlatformGoogle
}

func (p *googleProvider) AuthorizationURL(req AuthorizationRequest) (string, error) {
	cfg := p.oauth
	cfg.RedirectURL = req.RedirectURI
	cfg.Scopes = ConsentScopes(model.PlatformGoogle, req.Scopes)
	return cfg.AuthCodeURL(req.State,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

func (p *googleProvider) ExchangeCode(ctx context.Context, req ExchangeRequest) (*TokenResponse, error) {
	return exchangeCode(ctx, p.deps.Client, p.deps.Metrics, model.PlatformGoogle, p.oauth, req)
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (p *googleProvider) FetchIdentity(ctx context.Context, token *TokenResponse, _ string) (*Identity, error) {
	var info googleUserInfo
	if err := getJSON(ctx, p.deps.Client, googleUserInfoURL, bearer(token.AccessToken), &info); err != nil {
		return nil, identityError(model.PlatformGoogle, err)
	}

	id := info.ID
	if sub := subjectFromIDToken(token.IDToken); sub != "" {
		id = sub
	}
	if id == "" {
		return nil, &IdentityFetchError{Platform: model.PlatformGoogle, Err: fmt.Errorf("no user id in id_token or userinfo")}
	}

	return &Identity{
		ID:       id,
		Username: info.Email,
		Name:     info.Name,
		Email:    info.Email,
		Picture:  info.Picture,
	}, nil
}

// subjectFromIDToken reads the sub claim. The token came straight from
// Google's token endpoint over TLS, so the signature is not re-verified.
func subjectFromIDToken(idToken string) string {
	if idToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

func (p *googleProvider) DiscoverAssets(ctx context.Context, req DiscoveryRequest) []model.Asset {
	return p.run(ctx, req, []subAPI{
		{category: "analytics", granted: grantedAny("analytics"), fetch: p.analyticsProperties},
		{category: "tagmanager", granted: grantedAny("tagmanager"), fetch: p.tagManagerAccounts},
		{category: "searchconsole", granted: grantedAny("webmasters"), fetch: p.searchConsoleSites},
		{category: "business_profile", granted: grantedAny("business.manage"), fetch: p.businessAccounts},
		{category: "merchant", granted: grantedAny("content"), fetch: p.merchantAccounts},
		{category: "ads", granted: p.adsGranted, fetch: p.adsCustomers},
		{category: "debug", granted: p.debugGranted, fetch: p.debugAssets},
	})
}

type googleAccountSummaries struct {
	AccountSummaries []struct {
		Account           string                  `json:"account"`
		DisplayName       string                  `json:"displayName"`
		PropertySummaries []googlePropertySummary `json:"propertySummaries"`
	} `json:"accountSummaries"`
}

type googlePropertySummary struct {
	Property    string `json:"property"`
	DisplayName string `json:"displayName"`
}

type googleTagManagerAccounts struct {
	Account []struct {
		AccountID string `json:"accountId"`
		Name      string `json:"name"`
	} `json:"account"`
}

type googleSites struct {
	SiteEntry []struct {
		SiteURL         string `json:"siteUrl"`
		PermissionLevel string `json:"permissionLevel"`
	} `json:"siteEntry"`
}

type googleBusinessAccounts struct {
	Accounts []struct {
		Name        string `json:"name"`
		AccountName string `json:"accountName"`
	} `json:"accounts"`
}

type googleMerchantAccounts struct {
	Accounts []struct {
		Name        string `json:"name"`
		AccountID   string `json:"accountId"`
		AccountName string `json:"accountName"`
	} `json:"accounts"`
}

type googleAdsCustomers struct {
	ResourceNames []string `json:"resourceNames"`
}

func googleAnalyticsAsset(ps googlePropertySummary) model.Asset {
	return model.NewAsset(strings.TrimPrefix(ps.Property, "properties/"), ps.DisplayName, model.AssetTypeAnalyticsProperty)
}

func (p *googleProvider) analyticsProperties(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var resp googleAccountSummaries
	if err := getJSON(ctx, p.deps.Client, googleAnalyticsURL, bearer(req.AccessToken), &resp); err != nil {
		return nil, err
	}
	var assets []model.Asset
	for _, acct := range resp.AccountSummaries {
		for _, ps := range acct.PropertySummaries {
			assets = append(assets, googleAnalyticsAsset(ps))
		}
	}
	return assets, nil
}

func (p *googleProvider) tagManagerAccounts(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var resp googleTagManagerAccounts
	if err := getJSON(ctx, p.deps.Client, googleTagManagerURL, bearer(req.AccessToken), &resp); err != nil {
		return nil, err
	}
	assets := make([]model.Asset, 0, len(resp.Account))
	for _, a := range resp.Account {
		assets = append(assets, model.NewAsset(a.AccountID, a.Name, model.AssetTypeTagManagerAccount))
	}
	return assets, nil
}

func (p *googleProvider) searchConsoleSites(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var resp googleSites
	if err := getJSON(ctx, p.deps.Client, googleSearchSitesURL, bearer(req.AccessToken), &resp); err != nil {
		return nil, err
	}
	assets := make([]model.Asset, 0, len(resp.SiteEntry))
	for _, s := range resp.SiteEntry {
		assets = append(assets, model.NewAsset(s.SiteURL, s.SiteURL, model.AssetTypeSearchConsoleSite))
	}
	return assets, nil
}

func (p *googleProvider) businessAccounts(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var resp googleBusinessAccounts
	if err := getJSON(ctx, p.deps.Client, googleBusinessURL, bearer(req.AccessToken), &resp); err != nil {
		return nil, err
	}
	assets := make([]model.Asset, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		assets = append(assets, model.NewAsset(strings.TrimPrefix(a.Name, "accounts/"), a.AccountName, model.AssetTypeBusinessAccount))
	}
	return assets, nil
}

func (p *googleProvider) merchantAccounts(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var resp googleMerchantAccounts
	if err := getJSON(ctx, p.deps.Client, googleMerchantURL, bearer(req.AccessToken), &resp); err != nil {
		return nil, err
	}
	assets := make([]model.Asset, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		id := a.AccountID
		if id == "" {
			id = strings.TrimPrefix(a.Name, "accounts/")
		}
		assets = append(assets, model.NewAsset(id, a.AccountName, model.AssetTypeMerchantAccount))
	}
	return assets, nil
}

func (p *googleProvider) adsGranted(scopes []string) bool {
	return p.cfg.AdsDeveloperToken != "" && model.ScopesGrant(scopes, "adwords")
}

func (p *googleProvider) adsCustomers(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	header := bearer(req.AccessToken)
	header.Set("developer-token", p.cfg.AdsDeveloperToken)

	var resp googleAdsCustomers
	if err := getJSON(ctx, p.deps.Client, googleAdsCustomersURL, header, &resp); err != nil {
		return nil, err
	}
	assets := make([]model.Asset, 0, len(resp.ResourceNames))
	for _, rn := range resp.ResourceNames {
		assets = append(assets, model.NewAsset(strings.TrimPrefix(rn, "customers/"), "", model.AssetTypeAdAccount))
	}
	return assets, nil
}

func (p *googleProvider) debugGranted(scopes []string) bool {
	return p.deps.Discovery.DebugAssets && model.ScopesGrant(scopes, "analytics")
}

// debugAssets returns a fixed property so the client flow can be exercised
// against accounts with no analytics data. Local development only.
func (p *googleProvider) debugAssets(context.Context, DiscoveryRequest) ([]model.Asset, error) {
	return []model.Asset{{ID: "test-analytics-123", Name: "Test Analytics Property", Type: model.AssetTypeAnalyticsProperty}}, nil
}
