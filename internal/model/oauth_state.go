package model

import "time"

// OAuthState is what the portal remembers between redirecting to a provider
// and receiving its callback. It is stored under a random key, which travels
// as the OAuth state parameter, and is consumed exactly once.
type OAuthState struct {
	Side      SubjectKind `json:"side"`
	Platform  Platform    `json:"platform"`
	SubjectID int64       `json:"subject_id"`
	LinkID    int64       `json:"link_id,omitempty"`
	LinkToken string      `json:"link_token,omitempty"`
	Shop      string      `json:"shop,omitempty"`
	Scopes    []string    `json:"scopes"`
	CreatedAt time.Time   `json:"created_at"`
}

func (s *OAuthState) Subject() Subject {
	return Subject{Kind: s.Side, ID: s.SubjectID}
}
