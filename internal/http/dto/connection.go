package dto

import (
	"time"

	"onboardly.app/portal/internal/model"
)

type ConnectionResponse struct {
	ID               int64          `json:"id,string"`
	Platform         model.Platform `json:"platform"`
	ExternalUserID   string         `json:"external_user_id"`
	ExternalUsername *string        `json:"external_username,omitempty"`
	Scopes           []string       `json:"scopes"`
	Assets           []model.Asset  `json:"assets"`
	IsActive         bool           `json:"is_active"`
	ExpiresAt        *time.Time     `json:"expires_at,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type ListConnectionsResponse struct {
	Connections []ConnectionResponse `json:"connections"`
}

func ToConnectionResponse(c *model.PlatformConnection) ConnectionResponse {
	return ConnectionResponse{
		ID:               c.ID,
		Platform:         c.Platform,
		ExternalUserID:   c.ExternalUserID,
		ExternalUsername: c.ExternalUsername,
		Scopes:           c.Scopes,
		Assets:           c.Assets,
		IsActive:         c.IsActive,
		ExpiresAt:        c.ExpiresAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func ToConnectionResponses(conns []model.PlatformConnection) []ConnectionResponse {
	out := make([]ConnectionResponse, len(conns))
	for i := range conns {
		out[i] = ToConnectionResponse(&conns[i])
	}
	return out
}

type AssetsResponse struct {
	Platform model.Platform `json:"platform"`
	ClientID int64          `json:"client_id,string"`
	Assets   []model.Asset  `json:"assets"`
}
