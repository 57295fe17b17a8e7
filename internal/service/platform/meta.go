package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/model"
)

const (
	metaGraphHost  = "https://graph.facebook.com"
	metaDialogHost = "https://www.facebook.com"
)

type metaProvider struct {
	discoverer
	cfg      config.MetaConfig
	graphURL string
	oauth    oauth2.Config
}

func NewMetaProvider(cfg config.MetaConfig, deps Deps) Provider {
	deps = deps.withDefaults()
	version := cfg.GraphVersion
	if version == "" {
		version = "v19.0"
	}
	return &metaProvider{
		discoverer: discoverer{platform: model.PlatformMeta, deps: deps},
		cfg:        cfg,
		graphURL:   metaGraphHost + "/" + version,
		oauth: oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  metaDialogHost + "/" + version + "/dialog/oauth",
				TokenURL: metaGraphHost + "/" + version + "/oauth/access_token",
			},
		},
	}
}

func (p *metaProvider) Platform() model.Platform {
	return model.PlatformMeta
}

func (p *metaProvider) AuthorizationURL(req AuthorizationRequest) (string, error) {
	cfg := p.oauth
	cfg.RedirectURL = req.RedirectURI
	// The dialog expects one comma separated scope value.
	cfg.Scopes = []string{joinScopes(ConsentScopes(model.PlatformMeta, req.Scopes))}
	return cfg.AuthCodeURL(req.State), nil
}

func (p *metaProvider) ExchangeCode(ctx context.Context, req ExchangeRequest) (*TokenResponse, error) {
	return exchangeCode(ctx, p.deps.Client, p.deps.Metrics, model.PlatformMeta, p.oauth, req)
}

type metaUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func (p *metaProvider) FetchIdentity(ctx context.Context, token *TokenResponse, _ string) (*Identity, error) {
	var me metaUser
	if err := p.get(ctx, token.AccessToken, "/me", "id,name,email,picture", &me); err != nil {
		return nil, identityError(model.PlatformMeta, err)
	}
	if me.ID == "" {
		return nil, &IdentityFetchError{Platform: model.PlatformMeta, Err: fmt.Errorf("response missing id")}
	}
	return &Identity{
		ID:      me.ID,
		Name:    me.Name,
		Email:   me.Email,
		Picture: me.Picture.Data.URL,
	}, nil
}

func (p *metaProvider) DiscoverAssets(ctx context.Context, req DiscoveryRequest) []model.Asset {
	return p.run(ctx, req, []subAPI{
		{category: "ad_accounts", granted: grantedAny("ads_management", "ads_read"), fetch: p.adAccounts},
		{category: "pages", granted: grantedAny("pages_"), fetch: p.pages},
		{category: "instagram", granted: grantedAny("instagram_"), fetch: p.instagramAccounts},
		{category: "catalogs", granted: grantedAny("catalog_management"), fetch: p.catalogs},
		{category: "datasets", granted: grantedAny("business_management"), fetch: p.datasets},
	})
}

// Graph API list responses wrap entries in "data".
type metaList[T any] struct {
	Data []T `json:"data"`
}

type metaAdAccount struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
}

type metaPage struct {
	ID                       string            `json:"id"`
	Name                     string            `json:"name"`
	InstagramBusinessAccount *metaInstagramRef `json:"instagram_business_account"`
}

type metaInstagramRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// metaNode covers catalogs, businesses and pixels, which share id+name.
type metaNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func metaAdAccountAsset(a metaAdAccount) model.Asset {
	id := a.ID
	if id == "" && a.AccountID != "" {
		id = "act_" + a.AccountID
	}
	return model.NewAsset(id, a.Name, model.AssetTypeAdAccount)
}

func metaPageAsset(pg metaPage) model.Asset {
	return model.NewAsset(pg.ID, pg.Name, model.AssetTypePage)
}

func metaInstagramAsset(ig metaInstagramRef) model.Asset {
	name := ig.Username
	if name == "" {
		name = ig.Name
	}
	return model.NewAsset(ig.ID, name, model.AssetTypeInstagramAccount)
}

func metaCatalogAsset(c metaNode) model.Asset {
	return model.NewAsset(c.ID, c.Name, model.AssetTypeCatalog)
}

func metaDatasetAsset(px metaNode) model.Asset {
	return model.NewAsset(px.ID, px.Name, model.AssetTypeBusinessDataset)
}

// catalogPlaceholder stands in when catalog access was granted but no
// catalog could be listed.
func catalogPlaceholder() model.Asset {
	return model.Asset{ID: "catalog_placeholder", Name: "Product Catalog (Access Granted)", Type: model.AssetTypeCatalog}
}

// adAccounts keeps only the first account: consent already had the user
// choose a primary ad account.
func (p *metaProvider) adAccounts(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var resp metaList[metaAdAccount]
	if err := p.get(ctx, req.AccessToken, "/me/adaccounts", "id,name,account_id", &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return []model.Asset{metaAdAccountAsset(resp.Data[0])}, nil
}

func (p *metaProvider) pages(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var resp metaList[metaPage]
	if err := p.get(ctx, req.AccessToken, "/me/accounts", "id,name", &resp); err != nil {
		return nil, err
	}
	assets := make([]model.Asset, 0, len(resp.Data))
	for _, pg := range resp.Data {
		assets = append(assets, metaPageAsset(pg))
	}
	return assets, nil
}

func (p *metaProvider) instagramAccounts(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var resp metaList[metaPage]
	if err := p.get(ctx, req.AccessToken, "/me/accounts", "instagram_business_account{id,username,name}", &resp); err != nil {
		return nil, err
	}
	var assets []model.Asset
	for _, pg := range resp.Data {
		if pg.InstagramBusinessAccount == nil || pg.InstagramBusinessAccount.ID == "" {
			continue
		}
		assets = append(assets, metaInstagramAsset(*pg.InstagramBusinessAccount))
	}
	return assets, nil
}

// catalogs looks at user-owned catalogs, then catalogs owned by the user's
// businesses, then falls back to a placeholder. Tier failures are logged and
// read as empty.
func (p *metaProvider) catalogs(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	var owned metaList[metaNode]
	if err := p.get(ctx, req.AccessToken, "/me/owned_product_catalogs", "id,name", &owned); err != nil {
		p.callFailed(ctx, "catalogs.owned", err)
	}
	assets := make([]model.Asset, 0, len(owned.Data))
	for _, c := range owned.Data {
		assets = append(assets, metaCatalogAsset(c))
	}
	if len(assets) > 0 {
		return assets, nil
	}

	businesses, err := p.businesses(ctx, req.AccessToken)
	if err != nil {
		p.callFailed(ctx, "catalogs.businesses", err)
	}
	for _, b := range businesses {
		var resp metaList[metaNode]
		if err := p.get(ctx, req.AccessToken, "/"+url.PathEscape(b.ID)+"/owned_product_catalogs", "id,name", &resp); err != nil {
			p.callFailed(ctx, "catalogs.business", err)
			continue
		}
		for _, c := range resp.Data {
			assets = append(assets, metaCatalogAsset(c))
		}
	}
	if len(assets) > 0 {
		return assets, nil
	}

	return []model.Asset{catalogPlaceholder()}, nil
}

func (p *metaProvider) datasets(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	businesses, err := p.businesses(ctx, req.AccessToken)
	if err != nil {
		return nil, err
	}
	var assets []model.Asset
	for _, b := range businesses {
		var resp metaList[metaNode]
		if err := p.get(ctx, req.AccessToken, "/"+url.PathEscape(b.ID)+"/owned_pixels", "id,name", &resp); err != nil {
			p.callFailed(ctx, "datasets.business", err)
			continue
		}
		for _, px := range resp.Data {
			assets = append(assets, metaDatasetAsset(px))
		}
	}
	return assets, nil
}

func (p *metaProvider) businesses(ctx context.Context, token string) ([]metaNode, error) {
	var resp metaList[metaNode]
	if err := p.get(ctx, token, "/me/businesses", "id,name", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// get calls a Graph API path with the token as access_token query param.
func (p *metaProvider) get(ctx context.Context, token, path, fields string, out any) error {
	q := url.Values{}
	q.Set("access_token", token)
	if fields != "" {
		q.Set("fields", fields)
	}
	return getJSON(ctx, p.deps.Client, p.graphURL+path+"?"+q.Encode(), http.Header{}, out)
}
