package model

import "time"

// PlatformGrant is what a client approved for one platform on submit.
type PlatformGrant struct {
	Scopes []string `json:"scopes"`
	Assets []Asset  `json:"assets"`
}

type OnboardingRequest struct {
	ID                 int64                      `json:"id"`
	LinkID             int64                      `json:"link_id"`
	ClientID           int64                      `json:"client_id"`
	GrantedPermissions map[Platform]PlatformGrant `json:"granted_permissions"`
	SubmittedAt        time.Time                  `json:"submitted_at"`
}
