package platform

import (
	"fmt"

	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/model"
)

// Registry holds the providers for every configured platform.
type Registry struct {
	providers map[model.Platform]Provider
}

// NewRegistry builds a provider for each platform with credentials in cfg.
func NewRegistry(cfg config.PlatformsConfig, deps Deps) *Registry {
	deps.Discovery = cfg.Discovery
	if deps.Client == nil && cfg.Discovery.RequestTimeout > 0 {
		deps.Client = NewHTTPClient(cfg.Discovery.RequestTimeout)
	}
	deps = deps.withDefaults()

	r := &Registry{providers: map[model.Platform]Provider{}}
	if cfg.Meta.Enabled() {
		r.providers[model.PlatformMeta] = NewMetaProvider(cfg.Meta, deps)
	}
	if cfg.Google.Enabled() {
		r.providers[model.PlatformGoogle] = NewGoogleProvider(cfg.Google, deps)
	}
	if cfg.TikTok.Enabled() {
		r.providers[model.PlatformTikTok] = NewTikTokProvider(cfg.TikTok, deps)
	}
	if cfg.Shopify.Enabled() {
		r.providers[model.PlatformShopify] = NewShopifyProvider(cfg.Shopify, deps)
	}
	return r
}

// NewRegistryWith wraps already built providers.
func NewRegistryWith(providers ...Provider) *Registry {
	r := &Registry{providers: map[model.Platform]Provider{}}
	for _, p := range providers {
		r.providers[p.Platform()] = p
	}
	return r
}

func (r *Registry) Get(platform model.Platform) (Provider, error) {
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
	}
	p, ok := r.providers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlatformDisabled, platform)
	}
	return p, nil
}

// Enabled lists configured platforms in display order.
func (r *Registry) Enabled() []model.Platform {
	var out []model.Platform
	for _, p := range model.Platforms {
		if _, ok := r.providers[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
