package model

import "time"

type Session struct {
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	ID              int64     `json:"id"`
	AdminID         int64     `json:"admin_id"`
	WorkOSSessionID *string   `json:"workos_session_id,omitempty"`
}
