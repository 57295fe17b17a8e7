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
	tiktokAuthURL        = "https://www.tiktok.com/v2/auth/authorize/"
	tiktokTokenURL       = "https://open.tiktokapis.com/v2/oauth/token/"
	tiktokUserInfoURL    = "https://open.tiktokapis.com/v2/user/info/"
	tiktokAdvertisersURL = "https://business-api.tiktok.com/open_api/v1.3/oauth2/advertiser/get/"
)

type tiktokProvider struct {
	discoverer
	cfg   config.TikTokConfig
	oauth oauth2.Config
}

func NewTikTokProvider(cfg config.TikTokConfig, deps Deps) Provider {
	deps = deps.withDefaults()
	return &tiktokProvider{
		discoverer: discoverer{platform: model.PlatformTikTok, deps: deps},
		cfg:        cfg,
		oauth: oauth2.Config{
			ClientID:     cfg.ClientKey,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  tiktokAuthURL,
				TokenURL: tiktokTokenURL,
			},
		},
	}
}

func (p *tiktokProvider) Platform() model.Platform {
	return model.PlatformTikTok
}

// AuthorizationURL uses client_key and a comma scope list, which TikTok
// requires instead of the standard client_id and space list.
func (p *tiktokProvider) AuthorizationURL(req AuthorizationRequest) (string, error) {
	q := url.Values{}
	q.Set("client_key", p.cfg.ClientKey)
	q.Set("response_type", "code")
	q.Set("scope", joinScopes(ConsentScopes(model.PlatformTikTok, req.Scopes)))
	q.Set("redirect_uri", req.RedirectURI)
	q.Set("state", req.State)
	return tiktokAuthURL + "?" + q.Encode(), nil
}

func (p *tiktokProvider) ExchangeCode(ctx context.Context, req ExchangeRequest) (*TokenResponse, error) {
	return exchangeCode(ctx, p.deps.Client, p.deps.Metrics, model.PlatformTikTok, p.oauth, req,
		oauth2.SetAuthURLParam("client_key", p.cfg.ClientKey),
	)
}

type tiktokUserInfo struct {
	Data struct {
		User struct {
			OpenID      string `json:"open_id"`
			UnionID     string `json:"union_id"`
			AvatarURL   string `json:"avatar_url"`
			DisplayName string `json:"display_name"`
			Username    string `json:"username"`
		} `json:"user"`
	} `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *tiktokProvider) FetchIdentity(ctx context.Context, token *TokenResponse, _ string) (*Identity, error) {
	q := url.Values{}
	q.Set("fields", "open_id,union_id,avatar_url,display_name,username")

	var info tiktokUserInfo
	if err := getJSON(ctx, p.deps.Client, tiktokUserInfoURL+"?"+q.Encode(), bearer(token.AccessToken), &info); err != nil {
		return nil, identityError(model.PlatformTikTok, err)
	}
	if info.Error.Code != "" && info.Error.Code != "ok" {
		return nil, &IdentityFetchError{
			Platform: model.PlatformTikTok,
			Err:      fmt.Errorf("tiktok error %s: %s", info.Error.Code, info.Error.Message),
		}
	}

	user := info.Data.User
	id := user.OpenID
	if id == "" {
		id = token.OpenID
	}
	if id == "" {
		return nil, &IdentityFetchError{Platform: model.PlatformTikTok, Err: fmt.Errorf("response missing open_id")}
	}

	return &Identity{
		ID:       id,
		Username: user.Username,
		Name:     user.DisplayName,
		Picture:  user.AvatarURL,
	}, nil
}

func (p *tiktokProvider) DiscoverAssets(ctx context.Context, req DiscoveryRequest) []model.Asset {
	return p.run(ctx, req, []subAPI{
		{category: "advertisers", granted: grantedAny("advertiser", "ads", "ad."), fetch: p.advertisers},
	})
}

type tiktokAdvertisers struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		List []tiktokAdvertiser `json:"list"`
	} `json:"data"`
}

type tiktokAdvertiser struct {
	AdvertiserID   string `json:"advertiser_id"`
	AdvertiserName string `json:"advertiser_name"`
}

func tiktokAdvertiserAsset(a tiktokAdvertiser) model.Asset {
	return model.NewAsset(a.AdvertiserID, a.AdvertiserName, model.AssetTypeAdAccount)
}

func (p *tiktokProvider) advertisers(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error) {
	q := url.Values{}
	q.Set("app_id", p.cfg.AppID)
	q.Set("secret", p.cfg.ClientSecret)

	var resp tiktokAdvertisers
	header := http.Header{"Access-Token": []string{req.AccessToken}}
	if err := getJSON(ctx, p.deps.Client, tiktokAdvertisersURL+"?"+q.Encode(), header, &resp); err != nil {
		return nil, err
	}
	// The Business API reports errors in the body with HTTP 200.
	if resp.Code != 0 {
		return nil, fmt.Errorf("tiktok business api error %d: %s", resp.Code, resp.Message)
	}

	assets := make([]model.Asset, 0, len(resp.Data.List))
	for _, a := range resp.Data.List {
		assets = append(assets, tiktokAdvertiserAsset(a))
	}
	return assets, nil
}
