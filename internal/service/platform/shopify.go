package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/model"
)

var shopDomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

// NormalizeShop lower-cases a shop domain, strips any scheme or path and
// checks it is a *.myshopify.com host.
func NormalizeShop(shop string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(shop))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")
	if !shopDomainPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidShop, shop)
	}
	return s, nil
}

type shopifyProvider struct {
	discoverer
	cfg config.ShopifyConfig
}

func NewShopifyProvider(cfg config.ShopifyConfig, deps Deps) Provider {
	deps = deps.withDefaults()
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-01"
	}
	return &shopifyProvider{
		discoverer: discoverer{platform: model.PlatformShopify, deps: deps},
		cfg:        cfg,
	}
}

func (p *shopifyProvider) Platform() model.Platform {
	return model.PlatformShopify
}

func (p *shopifyProvider) AuthorizationURL(req AuthorizationRequest) (string, error) {
	shop, err := NormalizeShop(req.Shop)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("client_id", p.cfg.APIKey)
	q.Set("scope", joinScopes(req.Scopes))
	q.Set("redirect_uri", req.RedirectURI)
	q.Set("state", req.State)
	return "https://" + shop + "/admin/oauth/authorize?" + q.Encode(), nil
}

func (p *shopifyProvider) ExchangeCode(ctx context.Context, req ExchangeRequest) (*TokenResponse, error) {
	shop, err := NormalizeShop(req.Shop)
	if err != nil {
		return nil, &TokenExchangeError{Platform: model.PlatformShopify, Err: err}
	}
	cfg := oauth2.Config{
		ClientID:     p.cfg.APIKey,
		ClientSecret: p.cfg.APISecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://" + shop + "/admin/oauth/authorize",
			TokenURL: "https://" + shop + "/admin/oauth/access_token",
		},
	}
	return exchangeCode(ctx, p.deps.Client, p.deps.Metrics, model.PlatformShopify, cfg, req)
}

type shopifyShop struct {
	Shop struct {
		ID              int64  `json:"id"`
		Name            string `json:"name"`
		Email           string `json:"email"`
		MyshopifyDomain string `json:"myshopify_domain"`
		ShopOwner       string `json:"shop_owner"`
	} `json:"shop"`
}

type shopifyCount struct {
	Count int `json:"count"`
}

func (p *shopifyProvider) FetchIdentity(ctx context.Context, token *TokenResponse, shop string) (*Identity, error) {
	resp, err := p.shop(ctx, shop, token.AccessToken)
	if err != nil {
		return nil, identityError(model.PlatformShopify, err)
	}
	if resp.Shop.ID == 0 {
		return nil, &IdentityFetchError{Platform: model.PlatformShopify, Err: fmt.Errorf("response missing shop id")}
	}
	username := resp.Shop.MyshopifyDomain
	if username == "" {
		username = shop
	}
	return &Identity{
		ID:       strconv.FormatInt(resp.Shop.ID, 10),
		Username: username,
		Name:     resp.Shop.Name,
		Email:    resp.Shop.Email,
	}, nil
}

func (p *shopifyProvider) DiscoverAssets(ctx context.Context, req DiscoveryRequest) []model.Asset {
	return p.run(ctx, req, []subAPI{
		{category: "store", granted: grantedAny("read_"), fetch: p.store},
		{category: "catalog", granted: grantedAny("read_products"), fetch: p.productCatalog},
	})
}

func shopifyStoreAsset(s shopifyShop) model.Asset {
	return model.NewAsset(strconv.FormatInt(s.Shop.ID, 10), s.Shop.Name, model.AssetTypeBusinessAccount)
}

func (p *shopifyProvider) store(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	resp, err := p.shop(ctx, req.Shop, req.AccessToken)
	if err != nil {
		return nil, err
	}
	return []model.Asset{shopifyStoreAsset(*resp)}, nil
}

func (p *shopifyProvider) productCatalog(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	shop, err := NormalizeShop(req.Shop)
	if err != nil {
		return nil, err
	}
	var count shopifyCount
	if err := getJSON(ctx, p.deps.Client, p.adminURL(shop, "/products/count.json"), shopifyHeader(req.AccessToken), &count); err != nil {
		return nil, err
	}
	handle := strings.TrimSuffix(shop, ".myshopify.com")
	return []model.Asset{{
		ID:   handle + "_products",
		Name: fmt.Sprintf("%s Products (%d)", handle, count.Count),
		Type: model.AssetTypeCatalog,
	}}, nil
}

func (p *shopifyProvider) shop(ctx context.Context, shop, token string) (*shopifyShop, error) {
	domain, err := NormalizeShop(shop)
	if err != nil {
		return nil, err
	}
	var resp shopifyShop
	if err := getJSON(ctx, p.deps.Client, p.adminURL(domain, "/shop.json"), shopifyHeader(token), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *shopifyProvider) adminURL(shop, path string) string {
	return "https://" + shop + "/admin/api/" + p.cfg.APIVersion + path
}

func shopifyHeader(token string) http.Header {
	return http.Header{"X-Shopify-Access-Token": []string{token}}
}
