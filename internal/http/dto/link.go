package dto

import (
	"time"

	"onboardly.app/portal/internal/model"
)

type CreateLinkRequest struct {
	ClientName           string              `json:"client_name" binding:"max=255"`
	ClientEmail          string              `json:"client_email" binding:"required,email,max=255"`
	Platforms            []string            `json:"platforms" binding:"required,min=1,max=4"`
	RequestedPermissions map[string][]string `json:"requested_permissions" binding:"required"`
	ExpiresInDays        int                 `json:"expires_in_days,omitempty" binding:"omitempty,min=1,max=30"`
}

type LinkResponse struct {
	ID                   int64               `json:"id,string"`
	ClientID             int64               `json:"client_id,string"`
	URL                  string              `json:"url"`
	Platforms            []model.Platform    `json:"platforms"`
	RequestedPermissions map[string][]string `json:"requested_permissions"`
	Status               model.LinkStatus    `json:"status"`
	ExpiresAt            time.Time           `json:"expires_at"`
	CreatedAt            time.Time           `json:"created_at"`
	CompletedAt          *time.Time          `json:"completed_at,omitempty"`
}

type ListLinksResponse struct {
	Links []LinkResponse `json:"links"`
}

func ToLinkResponse(link *model.OnboardingLink, url string) LinkResponse {
	return LinkResponse{
		ID:                   link.ID,
		ClientID:             link.ClientID,
		URL:                  url,
		Platforms:            link.Platforms,
		RequestedPermissions: permissionsByName(link.RequestedPermissions),
		Status:               link.Status,
		ExpiresAt:            link.ExpiresAt,
		CreatedAt:            link.CreatedAt,
		CompletedAt:          link.CompletedAt,
	}
}

func permissionsByName(perms map[model.Platform][]string) map[string][]string {
	out := make(map[string][]string, len(perms))
	for p, scopes := range perms {
		out[string(p)] = scopes
	}
	return out
}
