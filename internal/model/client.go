package model

import "time"

type Client struct {
	ID        int64     `json:"id"`
	AdminID   int64     `json:"admin_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
