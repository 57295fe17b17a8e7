package model

import (
	"slices"
	"time"
)

type SubjectKind string

const (
	SubjectClient SubjectKind = "client"
	SubjectAdmin  SubjectKind = "admin"
)

func (k SubjectKind) Valid() bool {
	return k == SubjectClient || k == SubjectAdmin
}

// Subject identifies who owns a connection: a client onboarding through a
// link, or an admin connecting their own accounts.
type Subject struct {
	Kind SubjectKind `json:"kind"`
	ID   int64       `json:"id"`
}

func ClientSubject(id int64) Subject { return Subject{Kind: SubjectClient, ID: id} }

func AdminSubject(id int64) Subject { return Subject{Kind: SubjectAdmin, ID: id} }

// PlatformConnection is the stored result of a completed OAuth flow. There is
// at most one per (subject, platform); rows are deactivated, never deleted.
type PlatformConnection struct {
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ExternalUsername *string    `json:"external_username,omitempty"`
	RefreshToken     *string    `json:"-"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	Subject          Subject    `json:"subject"`
	Platform         Platform   `json:"platform"`
	ExternalUserID   string     `json:"external_user_id"`
	AccessToken      string     `json:"-"`
	Scopes           []string   `json:"scopes"`
	Assets           []Asset    `json:"assets"`
	ID               int64      `json:"id"`
	IsActive         bool       `json:"is_active"`
}

// HasScope reports whether any granted scope contains fragment.
func (c *PlatformConnection) HasScope(fragment string) bool {
	return slices.ContainsFunc(c.Scopes, func(s string) bool {
		return containsFold(s, fragment)
	})
}
