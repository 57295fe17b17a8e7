package store

import (
	"onboardly.app/portal/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Admins() AdminStore {
	return newAdminStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Clients() ClientStore {
	return newClientStore(s.queries)
}

func (s *Stores) OnboardingLinks() OnboardingLinkStore {
	return newOnboardingLinkStore(s.queries)
}

func (s *Stores) OnboardingRequests() OnboardingRequestStore {
	return newOnboardingRequestStore(s.queries)
}

func (s *Stores) Connections() ConnectionStore {
	return newConnectionStore(s.queries)
}
