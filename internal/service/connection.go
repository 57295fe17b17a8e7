package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"onboardly.app/portal/common/id"
	"onboardly.app/portal/internal/metrics"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/store"
)

var ErrConnectionNotFound = errors.New("platform connection not found")

type UpsertOutcome string

const (
	UpsertCreated   UpsertOutcome = "created"
	UpsertUpdated   UpsertOutcome = "updated"
	UpsertUnchanged UpsertOutcome = "unchanged"
)

// UpsertConnectionParams is everything a completed OAuth flow learned about
// one subject's account on one platform.
type UpsertConnectionParams struct {
	Subject          model.Subject
	Platform         model.Platform
	ExternalUserID   string
	ExternalUsername *string
	AccessToken      string
	RefreshToken     *string
	ExpiresAt        *time.Time
	Scopes           []string
	Assets           []model.Asset
}

type ConnectionService interface {
	// Upsert keeps one row per (subject, platform). An existing row, active or
	// not, is updated in place and reactivated; the write is skipped when
	// nothing changed.
	Upsert(ctx context.Context, params UpsertConnectionParams) (*model.PlatformConnection, UpsertOutcome, error)
	// Get returns the active connection.
	Get(ctx context.Context, subject model.Subject, platform model.Platform) (*model.PlatformConnection, error)
	List(ctx context.Context, subject model.Subject) ([]model.PlatformConnection, error)
	Deactivate(ctx context.Context, subject model.Subject, platform model.Platform) error
}

type connectionService struct {
	connStore store.ConnectionStore
	metrics   *metrics.Metrics
}

func NewConnectionService(connStore store.ConnectionStore, m *metrics.Metrics) ConnectionService {
	return &connectionService{connStore: connStore, metrics: m}
}

func (s *connectionService) Upsert(ctx context.Context, params UpsertConnectionParams) (*model.PlatformConnection, UpsertOutcome, error) {
	if !params.Subject.Kind.Valid() || params.Subject.ID == 0 {
		return nil, "", fmt.Errorf("invalid subject %s/%d", params.Subject.Kind, params.Subject.ID)
	}
	if params.Assets == nil {
		params.Assets = []model.Asset{}
	}

	conn, outcome, err := s.upsert(ctx, params)
	if errors.Is(err, store.ErrConflict) {
		// lost a create race; the row exists now
		conn, outcome, err = s.upsert(ctx, params)
	}
	if err != nil {
		return nil, "", err
	}

	s.metrics.RecordConnectionUpsert(string(params.Subject.Kind), string(outcome))
	slog.InfoContext(ctx, "platform connection upserted",
		"connection_id", conn.ID,
		"subject", params.Subject.Kind,
		"subject_id", params.Subject.ID,
		"platform", params.Platform,
		"outcome", outcome,
		"asset_count", len(conn.Assets),
	)
	return conn, outcome, nil
}

func (s *connectionService) upsert(ctx context.Context, params UpsertConnectionParams) (*model.PlatformConnection, UpsertOutcome, error) {
	existing, err := s.connStore.Get(ctx, params.Subject, params.Platform)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("getting connection: %w", err)
	}

	if existing == nil {
		conn := &model.PlatformConnection{
			ID:       id.New(),
			Subject:  params.Subject,
			Platform: params.Platform,
			IsActive: true,
		}
		applyUpsert(conn, params)
		if err := s.connStore.Create(ctx, conn); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return nil, "", err
			}
			return nil, "", fmt.Errorf("creating connection: %w", err)
		}
		return conn, UpsertCreated, nil
	}

	if existing.IsActive && !connectionChanged(existing, params) {
		return existing, UpsertUnchanged, nil
	}

	applyUpsert(existing, params)
	if err := s.connStore.Update(ctx, existing); err != nil {
		return nil, "", fmt.Errorf("updating connection: %w", err)
	}
	return existing, UpsertUpdated, nil
}

func applyUpsert(conn *model.PlatformConnection, params UpsertConnectionParams) {
	conn.ExternalUserID = params.ExternalUserID
	conn.ExternalUsername = params.ExternalUsername
	conn.AccessToken = params.AccessToken
	conn.RefreshToken = params.RefreshToken
	conn.ExpiresAt = params.ExpiresAt
	conn.Scopes = params.Scopes
	conn.Assets = params.Assets
	conn.IsActive = true
}

func connectionChanged(conn *model.PlatformConnection, params UpsertConnectionParams) bool {
	return conn.ExternalUserID != params.ExternalUserID ||
		!equalPtr(conn.ExternalUsername, params.ExternalUsername) ||
		conn.AccessToken != params.AccessToken ||
		!equalPtr(conn.RefreshToken, params.RefreshToken) ||
		!sameExpiry(conn.ExpiresAt, params.ExpiresAt) ||
		!slices.Equal(conn.Scopes, params.Scopes) ||
		!model.AssetsEqual(conn.Assets, params.Assets)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// sameExpiry compares at second precision; postgres keeps microseconds.
func sameExpiry(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Truncate(time.Second).Equal(b.Truncate(time.Second))
}

func (s *connectionService) Get(ctx context.Context, subject model.Subject, platform model.Platform) (*model.PlatformConnection, error) {
	conn, err := s.connStore.Get(ctx, subject, platform)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("getting connection: %w", err)
	}
	if !conn.IsActive {
		return nil, ErrConnectionNotFound
	}
	return conn, nil
}

func (s *connectionService) List(ctx context.Context, subject model.Subject) ([]model.PlatformConnection, error) {
	conns, err := s.connStore.List(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	return conns, nil
}

func (s *connectionService) Deactivate(ctx context.Context, subject model.Subject, platform model.Platform) error {
	if err := s.connStore.Deactivate(ctx, subject, platform); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrConnectionNotFound
		}
		return fmt.Errorf("deactivating connection: %w", err)
	}
	slog.InfoContext(ctx, "platform connection deactivated",
		"subject", subject.Kind,
		"subject_id", subject.ID,
		"platform", platform,
	)
	return nil
}
