package dto

import (
	"time"

	"onboardly.app/portal/internal/model"
)

type AdminResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToAdminResponse(a *model.Admin) *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		AvatarURL: a.AvatarURL,
		CreatedAt: a.CreatedAt,
	}
}
