package dto

import (
	"time"

	"onboardly.app/portal/internal/model"
)

type ClientResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ClientDetailResponse struct {
	ClientResponse
	Connections []ConnectionResponse `json:"connections"`
	Requests    []RequestResponse    `json:"requests"`
}

type RequestResponse struct {
	ID                 int64                                  `json:"id,string"`
	LinkID             int64                                  `json:"link_id,string"`
	GrantedPermissions map[model.Platform]model.PlatformGrant `json:"granted_permissions"`
	SubmittedAt        time.Time                              `json:"submitted_at"`
}

func ToClientResponse(c *model.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func ToRequestResponse(r *model.OnboardingRequest) RequestResponse {
	return RequestResponse{
		ID:                 r.ID,
		LinkID:             r.LinkID,
		GrantedPermissions: r.GrantedPermissions,
		SubmittedAt:        r.SubmittedAt,
	}
}
