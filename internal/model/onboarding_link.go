package model

import (
	"slices"
	"time"
)

type LinkStatus string

const (
	LinkStatusPending   LinkStatus = "pending"
	LinkStatusCompleted LinkStatus = "completed"
	LinkStatusExpired   LinkStatus = "expired"
	LinkStatusRevoked   LinkStatus = "revoked"
)

// OnboardingLink is an expiring invitation for a client to connect the listed
// platforms with the requested scopes.
type OnboardingLink struct {
	ID                   int64                 `json:"id"`
	AdminID              int64                 `json:"admin_id"`
	ClientID             int64                 `json:"client_id"`
	Token                string                `json:"token"`
	Platforms            []Platform            `json:"platforms"`
	RequestedPermissions map[Platform][]string `json:"requested_permissions"`
	Status               LinkStatus            `json:"status"`
	ExpiresAt            time.Time             `json:"expires_at"`
	CreatedAt            time.Time             `json:"created_at"`
	CompletedAt          *time.Time            `json:"completed_at,omitempty"`
}

func (l *OnboardingLink) IsValid() bool {
	return l.Status == LinkStatusPending && time.Now().Before(l.ExpiresAt)
}

func (l *OnboardingLink) Requests(p Platform) bool {
	return slices.Contains(l.Platforms, p)
}

// ScopesFor returns the scopes requested for p.
func (l *OnboardingLink) ScopesFor(p Platform) []string {
	return l.RequestedPermissions[p]
}
