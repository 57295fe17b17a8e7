package dto

import (
	"time"

	"onboardly.app/portal/internal/model"
)

// PublicLinkResponse is what the client onboarding page sees. It carries no
// admin or client identifiers.
type PublicLinkResponse struct {
	Platforms            []model.Platform                   `json:"platforms"`
	RequestedPermissions map[string][]string                `json:"requested_permissions"`
	ExpiresAt            time.Time                          `json:"expires_at"`
	Connections          map[model.Platform]ConnectionBrief `json:"connections"`
}

type ConnectionBrief struct {
	ExternalUsername *string       `json:"external_username,omitempty"`
	Scopes           []string      `json:"scopes"`
	Assets           []model.Asset `json:"assets"`
}

func ToPublicLinkResponse(link *model.OnboardingLink, conns []model.PlatformConnection) PublicLinkResponse {
	resp := PublicLinkResponse{
		Platforms:            link.Platforms,
		RequestedPermissions: permissionsByName(link.RequestedPermissions),
		ExpiresAt:            link.ExpiresAt,
		Connections:          map[model.Platform]ConnectionBrief{},
	}
	for _, c := range conns {
		if !c.IsActive || !link.Requests(c.Platform) {
			continue
		}
		resp.Connections[c.Platform] = ConnectionBrief{
			ExternalUsername: c.ExternalUsername,
			Scopes:           c.Scopes,
			Assets:           c.Assets,
		}
	}
	return resp
}

// SubmitRequest accepts the grants under either "permissions" or "data";
// "permissions" wins when both are sent.
type SubmitRequest struct {
	Token       string                  `json:"token" binding:"required"`
	Permissions map[string]GrantRequest `json:"permissions"`
	Data        map[string]GrantRequest `json:"data"`
}

type GrantRequest struct {
	Scopes []string      `json:"scopes"`
	Assets []model.Asset `json:"assets"`
}

func (r *SubmitRequest) Grants() (map[model.Platform]model.PlatformGrant, error) {
	raw := r.Permissions
	if len(raw) == 0 {
		raw = r.Data
	}
	out := make(map[model.Platform]model.PlatformGrant, len(raw))
	for name, g := range raw {
		p, err := model.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		out[p] = model.PlatformGrant{Scopes: g.Scopes, Assets: g.Assets}
	}
	return out, nil
}

type SubmitResponse struct {
	RequestID int64  `json:"request_id,string"`
	Status    string `json:"status"`
}

type PlatformsResponse struct {
	Platforms []PlatformInfo `json:"platforms"`
}

type PlatformInfo struct {
	ID   model.Platform `json:"id"`
	Name string         `json:"name"`
}
