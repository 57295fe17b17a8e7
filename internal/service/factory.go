package service

import (
	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/metrics"
	"onboardly.app/portal/internal/store"
)

type Services struct {
	stores   *store.Stores
	states   store.OAuthStateStore
	txRunner TxRunner
	registry ProviderRegistry
	workos   WorkOSClient
	metrics  *metrics.Metrics
	cfg      config.Config
}

func NewServices(
	stores *store.Stores,
	states store.OAuthStateStore,
	txRunner TxRunner,
	registry ProviderRegistry,
	workos WorkOSClient,
	m *metrics.Metrics,
	cfg config.Config,
) *Services {
	return &Services{
		stores:   stores,
		states:   states,
		txRunner: txRunner,
		registry: registry,
		workos:   workos,
		metrics:  m,
		cfg:      cfg,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Admins(), s.stores.Sessions(), s.workos, s.cfg.WorkOS)
}

func (s *Services) Links() LinkService {
	return NewLinkService(s.txRunner, s.stores.OnboardingLinks(), s.cfg.DashboardURL, s.cfg.LinkExpiry)
}

func (s *Services) Connections() ConnectionService {
	return NewConnectionService(s.stores.Connections(), s.metrics)
}

func (s *Services) OAuth() OAuthService {
	return NewOAuthService(
		s.registry,
		s.Links(),
		s.Connections(),
		s.states,
		s.metrics,
		AdminScopes(s.cfg.Platforms),
		s.cfg.APIURL,
	)
}

func (s *Services) Assets() AssetService {
	return NewAssetService(s.registry, s.stores.Clients(), s.stores.Connections())
}

func (s *Services) Submissions() SubmissionService {
	return NewSubmissionService(s.txRunner, s.Links())
}

func (s *Services) Clients() ClientService {
	return NewClientService(s.stores.Clients(), s.stores.OnboardingRequests(), s.stores.Connections())
}
