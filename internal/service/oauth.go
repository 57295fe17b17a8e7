package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"onboardly.app/portal/common/logger"
	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/metrics"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service/platform"
	"onboardly.app/portal/internal/store"
)

var (
	ErrStateInvalid         = errors.New("oauth state is invalid or expired")
	ErrPlatformNotRequested = errors.New("platform was not requested by this onboarding link")
	ErrInvalidSide          = errors.New("unknown oauth side")
)

// ProviderRegistry resolves the provider for a platform.
type ProviderRegistry interface {
	Get(p model.Platform) (platform.Provider, error)
}

type BeginParams struct {
	Side      model.SubjectKind
	Platform  model.Platform
	AdminID   int64  // admin side
	LinkToken string // client side
	Shop      string // Shopify only
}

type CompleteParams struct {
	Side     model.SubjectKind
	Platform model.Platform
	Code     string
	State    string
	Shop     string
}

type CompleteResult struct {
	Connection *model.PlatformConnection
	Outcome    UpsertOutcome
	LinkToken  string
}

type OAuthService interface {
	// Begin stores a fresh state and returns the provider consent URL.
	Begin(ctx context.Context, params BeginParams) (string, error)
	// Complete runs the callback: state check, code exchange, identity fetch,
	// asset discovery and connection upsert. Exchange and identity failures
	// end the flow; discovery never does.
	Complete(ctx context.Context, params CompleteParams) (*CompleteResult, error)
	// Cancel consumes the state of a flow the provider aborted and returns the
	// link token it was started from, if any.
	Cancel(ctx context.Context, side model.SubjectKind, p model.Platform, state string) string
	RedirectURI(side model.SubjectKind, p model.Platform) string
}

type oauthService struct {
	registry    ProviderRegistry
	links       LinkService
	connections ConnectionService
	states      store.OAuthStateStore
	metrics     *metrics.Metrics
	adminScopes map[model.Platform][]string
	apiURL      string
}

func NewOAuthService(
	registry ProviderRegistry,
	links LinkService,
	connections ConnectionService,
	states store.OAuthStateStore,
	m *metrics.Metrics,
	adminScopes map[model.Platform][]string,
	apiURL string,
) OAuthService {
	return &oauthService{
		registry:    registry,
		links:       links,
		connections: connections,
		states:      states,
		metrics:     m,
		adminScopes: adminScopes,
		apiURL:      apiURL,
	}
}

// AdminScopes collects the configured admin-side scopes per platform.
func AdminScopes(cfg config.PlatformsConfig) map[model.Platform][]string {
	return map[model.Platform][]string{
		model.PlatformMeta:    cfg.Meta.AdminScopes,
		model.PlatformGoogle:  cfg.Google.AdminScopes,
		model.PlatformTikTok:  cfg.TikTok.AdminScopes,
		model.PlatformShopify: cfg.Shopify.AdminScopes,
	}
}

func (s *oauthService) RedirectURI(side model.SubjectKind, p model.Platform) string {
	return fmt.Sprintf("%s/api/oauth/%s/connect/%s", s.apiURL, side, p)
}

func (s *oauthService) Begin(ctx context.Context, params BeginParams) (string, error) {
	provider, err := s.registry.Get(params.Platform)
	if err != nil {
		return "", err
	}

	state := &model.OAuthState{
		Side:      params.Side,
		Platform:  params.Platform,
		CreatedAt: time.Now(),
	}

	switch params.Side {
	case model.SubjectClient:
		link, err := s.links.Validate(ctx, params.LinkToken)
		if err != nil {
			return "", err
		}
		if !link.Requests(params.Platform) {
			return "", ErrPlatformNotRequested
		}
		state.SubjectID = link.ClientID
		state.LinkID = link.ID
		state.LinkToken = link.Token
		state.Scopes = link.ScopesFor(params.Platform)
	case model.SubjectAdmin:
		if params.AdminID == 0 {
			return "", fmt.Errorf("%w: admin id is required", ErrInvalidSide)
		}
		state.SubjectID = params.AdminID
		state.Scopes = s.adminScopes[params.Platform]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, params.Side)
	}

	state.Scopes = platform.ConsentScopes(params.Platform, state.Scopes)

	if params.Platform == model.PlatformShopify {
		shop, err := platform.NormalizeShop(params.Shop)
		if err != nil {
			return "", err
		}
		state.Shop = shop
	}

	key, err := s.states.Save(ctx, state)
	if err != nil {
		return "", fmt.Errorf("saving oauth state: %w", err)
	}

	authURL, err := provider.AuthorizationURL(platform.AuthorizationRequest{
		State:       key,
		RedirectURI: s.RedirectURI(params.Side, params.Platform),
		Scopes:      state.Scopes,
		Shop:        state.Shop,
	})
	if err != nil {
		return "", fmt.Errorf("building authorization url: %w", err)
	}

	slog.InfoContext(ctx, "oauth flow started",
		"side", params.Side,
		"platform", params.Platform,
		"subject_id", state.SubjectID,
		"scopes", state.Scopes,
	)
	return authURL, nil
}

func (s *oauthService) Cancel(ctx context.Context, side model.SubjectKind, p model.Platform, key string) string {
	s.metrics.RecordOAuthCallback(string(p), string(side), "denied")
	if key == "" {
		return ""
	}
	state, err := s.states.Consume(ctx, key)
	if err != nil {
		return ""
	}
	if state.Side != side || state.Platform != p {
		return ""
	}
	return state.LinkToken
}

func (s *oauthService) Complete(ctx context.Context, params CompleteParams) (*CompleteResult, error) {
	result, err := s.complete(ctx, params)
	s.metrics.RecordOAuthCallback(string(params.Platform), string(params.Side), callbackOutcome(err))
	return result, err
}

func (s *oauthService) complete(ctx context.Context, params CompleteParams) (*CompleteResult, error) {
	state, err := s.states.Consume(ctx, params.State)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrStateInvalid
		}
		return nil, fmt.Errorf("consuming oauth state: %w", err)
	}
	if state.Side != params.Side || state.Platform != params.Platform {
		slog.WarnContext(ctx, "oauth state does not match callback",
			"state_side", state.Side,
			"state_platform", state.Platform,
			"side", params.Side,
			"platform", params.Platform,
		)
		return nil, ErrStateInvalid
	}

	result := &CompleteResult{LinkToken: state.LinkToken}

	fields := logger.LogFields{
		Platform:  logger.Ptr(string(state.Platform)),
		Side:      logger.Ptr(string(state.Side)),
		Component: "portal.oauth",
	}
	if state.Side == model.SubjectClient {
		fields.ClientID = logger.Ptr(state.SubjectID)
		fields.LinkID = logger.Ptr(state.LinkID)
		if _, err := s.links.Validate(ctx, state.LinkToken); err != nil {
			return result, err
		}
	} else {
		fields.AdminID = logger.Ptr(state.SubjectID)
	}
	ctx = logger.WithLogFields(ctx, fields)

	shop := state.Shop
	if params.Shop != "" && state.Platform == model.PlatformShopify {
		got, err := platform.NormalizeShop(params.Shop)
		if err != nil || got != shop {
			slog.WarnContext(ctx, "shopify callback shop does not match state", "shop", params.Shop)
			return result, ErrStateInvalid
		}
	}

	provider, err := s.registry.Get(state.Platform)
	if err != nil {
		return result, err
	}

	token, err := provider.ExchangeCode(ctx, platform.ExchangeRequest{
		Code:        params.Code,
		RedirectURI: s.RedirectURI(state.Side, state.Platform),
		Shop:        shop,
	})
	if err != nil {
		slog.ErrorContext(ctx, "token exchange failed", "error", err)
		return result, err
	}

	identity, err := provider.FetchIdentity(ctx, token, shop)
	if err != nil {
		slog.ErrorContext(ctx, "identity fetch failed", "error", err)
		return result, err
	}

	scopes := token.Scopes
	if len(scopes) == 0 {
		scopes = state.Scopes
	}

	assets := provider.DiscoverAssets(ctx, platform.DiscoveryRequest{
		AccessToken: token.AccessToken,
		Scopes:      scopes,
		Shop:        shop,
	})

	conn, outcome, err := s.connections.Upsert(ctx, UpsertConnectionParams{
		Subject:          state.Subject(),
		Platform:         state.Platform,
		ExternalUserID:   identity.ID,
		ExternalUsername: externalUsername(state.Platform, identity, shop),
		AccessToken:      token.AccessToken,
		RefreshToken:     optionalString(token.RefreshToken),
		ExpiresAt:        tokenExpiry(token.ExpiresIn),
		Scopes:           scopes,
		Assets:           assets,
	})
	if err != nil {
		return result, err
	}

	result.Connection = conn
	result.Outcome = outcome
	return result, nil
}

// externalUsername is the label shown for the account. For Shopify it is the
// shop domain, which asset refresh needs to reach the store again.
func externalUsername(p model.Platform, identity *platform.Identity, shop string) *string {
	if p == model.PlatformShopify && shop != "" {
		return &shop
	}
	return optionalString(identity.DisplayName())
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func tokenExpiry(expiresIn int64) *time.Time {
	if expiresIn <= 0 {
		return nil
	}
	t := time.Now().Add(time.Duration(expiresIn) * time.Second)
	return &t
}

func callbackOutcome(err error) string {
	var (
		exchangeErr *platform.TokenExchangeError
		identityErr *platform.IdentityFetchError
	)
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrStateInvalid):
		return "invalid_state"
	case errors.As(err, &exchangeErr):
		return "exchange_failed"
	case errors.As(err, &identityErr):
		return "identity_failed"
	case errors.Is(err, ErrLinkNotFound), errors.Is(err, ErrLinkExpired),
		errors.Is(err, ErrLinkCompleted), errors.Is(err, ErrLinkRevoked):
		return "invalid_link"
	default:
		return "error"
	}
}
