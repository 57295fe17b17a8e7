package store

import (
	"context"
	"errors"

	"onboardly.app/portal/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a create collides with a unique key
var ErrConflict = errors.New("already exists")

// AdminStore defines the contract for admin data access
type AdminStore interface {
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	// UpsertByWorkOSID creates the admin or refreshes profile fields of the
	// existing row with the same WorkOS id.
	UpsertByWorkOSID(ctx context.Context, admin *model.Admin) error
}

// SessionStore defines the contract for admin session data access
type SessionStore interface {
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) error
}

// ClientStore defines the contract for client data access
type ClientStore interface {
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	GetByAdminAndEmail(ctx context.Context, adminID int64, email string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	ListByAdmin(ctx context.Context, adminID int64) ([]model.Client, error)
}

// OnboardingLinkStore defines the contract for onboarding link data access
type OnboardingLinkStore interface {
	Create(ctx context.Context, link *model.OnboardingLink) error
	GetByID(ctx context.Context, id int64) (*model.OnboardingLink, error)
	GetByToken(ctx context.Context, token string) (*model.OnboardingLink, error)
	ListByAdmin(ctx context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error)
	// Complete and Revoke only transition pending links; anything else is ErrNotFound.
	Complete(ctx context.Context, id int64) (*model.OnboardingLink, error)
	Revoke(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error)
	MarkExpired(ctx context.Context, id int64) error
}

// OnboardingRequestStore defines the contract for submitted onboarding data access
type OnboardingRequestStore interface {
	Create(ctx context.Context, req *model.OnboardingRequest) error
	ListByClient(ctx context.Context, clientID int64) ([]model.OnboardingRequest, error)
}

// ConnectionStore defines the contract for platform connection data access.
// The subject kind selects the client or admin table.
type ConnectionStore interface {
	// Get returns the row for (subject, platform) whether active or not.
	Get(ctx context.Context, subject model.Subject, platform model.Platform) (*model.PlatformConnection, error)
	List(ctx context.Context, subject model.Subject) ([]model.PlatformConnection, error)
	Create(ctx context.Context, conn *model.PlatformConnection) error
	// Update overwrites identity, tokens, scopes and assets and reactivates the row.
	Update(ctx context.Context, conn *model.PlatformConnection) error
	UpdateAssets(ctx context.Context, conn *model.PlatformConnection) error
	Deactivate(ctx context.Context, subject model.Subject, platform model.Platform) error
}

// OAuthStateStore keeps in-flight OAuth state between redirect and callback
type OAuthStateStore interface {
	Save(ctx context.Context, state *model.OAuthState) (string, error)
	// Consume returns and deletes the state; a second call returns ErrNotFound.
	Consume(ctx context.Context, key string) (*model.OAuthState, error)
}
