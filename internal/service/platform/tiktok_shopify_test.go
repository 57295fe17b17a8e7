package platform

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/model"
)

var _ = Describe("TikTok provider", func() {
	var (
		ctx      context.Context
		api      *fakeAPI
		provider Provider
	)

	BeforeEach(func() {
		ctx = context.Background()
		api = newFakeAPI()
		provider = NewTikTokProvider(config.TikTokConfig{ClientKey: "ck", ClientSecret: "cs", AppID: "app-1"}, api.deps())
	})

	AfterEach(func() {
		api.close()
	})

	It("sends client_key on exchange and keeps open_id", func() {
		api.json("/v2/oauth/token/", http.StatusOK, map[string]any{
			"access_token": "act", "open_id": "oid-1", "scope": "user.info.basic,advertiser.read",
			"expires_in": 86400, "refresh_token": "rft", "token_type": "Bearer",
		})

		tok, err := provider.ExchangeCode(ctx, ExchangeRequest{Code: "c", RedirectURI: "https://api/cb"})

		Expect(err).NotTo(HaveOccurred())
		Expect(tok.OpenID).To(Equal("oid-1"))
		Expect(tok.Scopes).To(Equal([]string{"user.info.basic", "advertiser.read"}))
		Expect(api.lastForm("/v2/oauth/token/").Get("client_key")).To(Equal("ck"))
	})

	It("requests user.info.basic on the consent URL", func() {
		raw, err := provider.AuthorizationURL(AuthorizationRequest{State: "st", RedirectURI: "https://api/cb", Scopes: []string{"advertiser.read"}})

		Expect(err).NotTo(HaveOccurred())
		u, err := url.Parse(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Query().Get("scope")).To(Equal("user.info.basic,advertiser.read"))
		Expect(u.Query().Get("client_key")).To(Equal("ck"))
	})

	It("maps advertisers to ad accounts", func() {
		api.json("/open_api/v1.3/oauth2/advertiser/get/", http.StatusOK, map[string]any{
			"code": 0,
			"data": map[string]any{"list": []map[string]string{
				{"advertiser_id": "7001", "advertiser_name": "Acme Ads"},
				{"advertiser_id": "7002"},
			}},
		})

		assets := provider.DiscoverAssets(ctx, DiscoveryRequest{AccessToken: "act", Scopes: []string{"advertiser.read"}})

		Expect(assets).To(Equal([]model.Asset{
			{ID: "7001", Name: "Acme Ads", Type: model.AssetTypeAdAccount},
			{ID: "7002", Name: "Ad Account (7002)", Type: model.AssetTypeAdAccount},
		}))
		req := api.lastRequest("/open_api/v1.3/oauth2/advertiser/get/")
		Expect(req.Header.Get("Access-Token")).To(Equal("act"))
		Expect(req.URL.Query().Get("app_id")).To(Equal("app-1"))
	})

	It("treats a business api error code as a failed sub-API call", func() {
		api.json("/open_api/v1.3/oauth2/advertiser/get/", http.StatusOK, map[string]any{"code": 40001, "message": "no permission"})

		assets := provider.DiscoverAssets(ctx, DiscoveryRequest{AccessToken: "act", Scopes: []string{"advertiser.read"}})

		Expect(assets).To(Equal([]model.Asset{{ID: "tiktok_basic", Name: "TikTok Profile Access", Type: model.AssetTypeBasic}}))
	})

	It("falls back to the token open_id for identity", func() {
		api.json("/v2/user/info/", http.StatusOK, map[string]any{
			"data":  map[string]any{"user": map[string]string{"display_name": "Creator"}},
			"error": map[string]string{"code": "ok"},
		})

		identity, err := provider.FetchIdentity(ctx, &TokenResponse{AccessToken: "act", OpenID: "oid-1"}, "")

		Expect(err).NotTo(HaveOccurred())
		Expect(identity.ID).To(Equal("oid-1"))
		Expect(identity.Name).To(Equal("Creator"))
	})
})

var _ = Describe("Shopify provider", func() {
	var (
		ctx      context.Context
		api      *fakeAPI
		provider Provider
	)

	BeforeEach(func() {
		ctx = context.Background()
		api = newFakeAPI()
		provider = NewShopifyProvider(config.ShopifyConfig{APIKey: "key", APISecret: "secret", APIVersion: "2024-01"}, api.deps())
	})

	AfterEach(func() {
		api.close()
	})

	shop := map[string]any{"shop": map[string]any{"id": 9001, "name": "Acme", "email": "o@acme.test", "myshopify_domain": "acme.myshopify.com"}}

	DescribeTable("NormalizeShop",
		func(in, want string, ok bool) {
			got, err := NormalizeShop(in)
			if !ok {
				Expect(errors.Is(err, ErrInvalidShop)).To(BeTrue())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("plain", "acme.myshopify.com", "acme.myshopify.com", true),
		Entry("scheme and case", "https://Acme.myshopify.com/", "acme.myshopify.com", true),
		Entry("foreign host", "evil.example.com", "", false),
		Entry("suffix trick", "acme.myshopify.com.evil.io", "", false),
		Entry("empty", "", "", false),
	)

	It("discovers the store and product catalog", func() {
		api.json("/admin/api/2024-01/shop.json", http.StatusOK, shop)
		api.json("/admin/api/2024-01/products/count.json", http.StatusOK, map[string]int{"count": 12})

		assets := provider.DiscoverAssets(ctx, DiscoveryRequest{AccessToken: "shpat", Scopes: []string{"read_products"}, Shop: "acme.myshopify.com"})

		Expect(assets).To(Equal([]model.Asset{
			{ID: "9001", Name: "Acme", Type: model.AssetTypeBusinessAccount},
			{ID: "acme_products", Name: "acme Products (12)", Type: model.AssetTypeCatalog},
		}))
		Expect(api.lastRequest("/admin/api/2024-01/shop.json").Header.Get("X-Shopify-Access-Token")).To(Equal("shpat"))
	})

	It("uses the shop id as identity", func() {
		api.json("/admin/api/2024-01/shop.json", http.StatusOK, shop)

		identity, err := provider.FetchIdentity(ctx, &TokenResponse{AccessToken: "shpat"}, "acme.myshopify.com")

		Expect(err).NotTo(HaveOccurred())
		Expect(identity.ID).To(Equal("9001"))
		Expect(identity.Username).To(Equal("acme.myshopify.com"))
	})

	It("rejects an exchange for a foreign shop without calling out", func() {
		_, err := provider.ExchangeCode(ctx, ExchangeRequest{Code: "c", Shop: "evil.example.com"})

		var exErr *TokenExchangeError
		Expect(errors.As(err, &exErr)).To(BeTrue())
		Expect(errors.Is(err, ErrInvalidShop)).To(BeTrue())
	})

	It("builds a per-shop authorization URL with comma scopes", func() {
		raw, err := provider.AuthorizationURL(AuthorizationRequest{State: "st", RedirectURI: "https://api/cb", Scopes: []string{"read_products", "read_orders"}, Shop: "acme.myshopify.com"})

		Expect(err).NotTo(HaveOccurred())
		Expect(raw).To(HavePrefix("https://acme.myshopify.com/admin/oauth/authorize?"))
		Expect(raw).To(ContainSubstring("scope=read_products%2Cread_orders"))
	})
})
