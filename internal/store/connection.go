package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"onboardly.app/portal/core/db/sqlc"
	"onboardly.app/portal/internal/model"
)

type connectionStore struct {
	queries *sqlc.Queries
}

func newConnectionStore(queries *sqlc.Queries) ConnectionStore {
	return &connectionStore{queries: queries}
}

func (s *connectionStore) Get(ctx context.Context, subject model.Subject, platform model.Platform) (*model.PlatformConnection, error) {
	var (
		row connectionRow
		err error
	)
	switch subject.Kind {
	case model.SubjectClient:
		var r sqlc.ClientPlatformConnection
		r, err = s.queries.GetClientConnection(ctx, sqlc.GetClientConnectionParams{
			ClientID: subject.ID,
			Platform: string(platform),
		})
		row = clientRow(r)
	case model.SubjectAdmin:
		var r sqlc.AdminPlatformConnection
		r, err = s.queries.GetAdminConnection(ctx, sqlc.GetAdminConnectionParams{
			AdminID:  subject.ID,
			Platform: string(platform),
		})
		row = adminRow(r)
	default:
		return nil, unknownSubject(subject)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toConnectionModel(subject.Kind, row)
}

func (s *connectionStore) List(ctx context.Context, subject model.Subject) ([]model.PlatformConnection, error) {
	var rows []connectionRow
	switch subject.Kind {
	case model.SubjectClient:
		found, err := s.queries.ListClientConnections(ctx, subject.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range found {
			rows = append(rows, clientRow(r))
		}
	case model.SubjectAdmin:
		found, err := s.queries.ListAdminConnections(ctx, subject.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range found {
			rows = append(rows, adminRow(r))
		}
	default:
		return nil, unknownSubject(subject)
	}

	result := make([]model.PlatformConnection, 0, len(rows))
	for _, row := range rows {
		conn, err := toConnectionModel(subject.Kind, row)
		if err != nil {
			return nil, err
		}
		result = append(result, *conn)
	}
	return result, nil
}

func (s *connectionStore) Create(ctx context.Context, conn *model.PlatformConnection) error {
	assets, err := model.MarshalAssets(conn.Assets)
	if err != nil {
		return fmt.Errorf("encoding assets: %w", err)
	}

	var row connectionRow
	switch conn.Subject.Kind {
	case model.SubjectClient:
		var r sqlc.ClientPlatformConnection
		r, err = s.queries.CreateClientConnection(ctx, sqlc.CreateClientConnectionParams{
			ID:               conn.ID,
			ClientID:         conn.Subject.ID,
			Platform:         string(conn.Platform),
			ExternalUserID:   conn.ExternalUserID,
			ExternalUsername: conn.ExternalUsername,
			AccessToken:      conn.AccessToken,
			RefreshToken:     conn.RefreshToken,
			TokenExpiresAt:   toTimestamptz(conn.ExpiresAt),
			Scopes:           scopesOrEmpty(conn.Scopes),
			Assets:           assets,
		})
		row = clientRow(r)
	case model.SubjectAdmin:
		var r sqlc.AdminPlatformConnection
		r, err = s.queries.CreateAdminConnection(ctx, sqlc.CreateAdminConnectionParams{
			ID:               conn.ID,
			AdminID:          conn.Subject.ID,
			Platform:         string(conn.Platform),
			ExternalUserID:   conn.ExternalUserID,
			ExternalUsername: conn.ExternalUsername,
			AccessToken:      conn.AccessToken,
			RefreshToken:     conn.RefreshToken,
			TokenExpiresAt:   toTimestamptz(conn.ExpiresAt),
			Scopes:           scopesOrEmpty(conn.Scopes),
			Assets:           assets,
		})
		row = adminRow(r)
	default:
		return unknownSubject(conn.Subject)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}

	created, err := toConnectionModel(conn.Subject.Kind, row)
	if err != nil {
		return err
	}
	*conn = *created
	return nil
}

func (s *connectionStore) Update(ctx context.Context, conn *model.PlatformConnection) error {
	assets, err := model.MarshalAssets(conn.Assets)
	if err != nil {
		return fmt.Errorf("encoding assets: %w", err)
	}

	var row connectionRow
	switch conn.Subject.Kind {
	case model.SubjectClient:
		var r sqlc.ClientPlatformConnection
		r, err = s.queries.UpdateClientConnection(ctx, sqlc.UpdateClientConnectionParams{
			ID:               conn.ID,
			ExternalUserID:   conn.ExternalUserID,
			ExternalUsername: conn.ExternalUsername,
			AccessToken:      conn.AccessToken,
			RefreshToken:     conn.RefreshToken,
			TokenExpiresAt:   toTimestamptz(conn.ExpiresAt),
			Scopes:           scopesOrEmpty(conn.Scopes),
			Assets:           assets,
		})
		row = clientRow(r)
	case model.SubjectAdmin:
		var r sqlc.AdminPlatformConnection
		r, err = s.queries.UpdateAdminConnection(ctx, sqlc.UpdateAdminConnectionParams{
			ID:               conn.ID,
			ExternalUserID:   conn.ExternalUserID,
			ExternalUsername: conn.ExternalUsername,
			AccessToken:      conn.AccessToken,
			RefreshToken:     conn.RefreshToken,
			TokenExpiresAt:   toTimestamptz(conn.ExpiresAt),
			Scopes:           scopesOrEmpty(conn.Scopes),
			Assets:           assets,
		})
		row = adminRow(r)
	default:
		return unknownSubject(conn.Subject)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	updated, err := toConnectionModel(conn.Subject.Kind, row)
	if err != nil {
		return err
	}
	*conn = *updated
	return nil
}

func (s *connectionStore) UpdateAssets(ctx context.Context, conn *model.PlatformConnection) error {
	assets, err := model.MarshalAssets(conn.Assets)
	if err != nil {
		return fmt.Errorf("encoding assets: %w", err)
	}

	switch conn.Subject.Kind {
	case model.SubjectClient:
		return s.queries.UpdateClientConnectionAssets(ctx, sqlc.UpdateClientConnectionAssetsParams{
			ID:     conn.ID,
			Assets: assets,
		})
	case model.SubjectAdmin:
		return s.queries.UpdateAdminConnectionAssets(ctx, sqlc.UpdateAdminConnectionAssetsParams{
			ID:     conn.ID,
			Assets: assets,
		})
	default:
		return unknownSubject(conn.Subject)
	}
}

func (s *connectionStore) Deactivate(ctx context.Context, subject model.Subject, platform model.Platform) error {
	var (
		n   int64
		err error
	)
	switch subject.Kind {
	case model.SubjectClient:
		n, err = s.queries.DeactivateClientConnection(ctx, sqlc.DeactivateClientConnectionParams{
			ClientID: subject.ID,
			Platform: string(platform),
		})
	case model.SubjectAdmin:
		n, err = s.queries.DeactivateAdminConnection(ctx, sqlc.DeactivateAdminConnectionParams{
			AdminID:  subject.ID,
			Platform: string(platform),
		})
	default:
		return unknownSubject(subject)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// connectionRow is the column set client_platform_connections and
// admin_platform_connections share; OwnerID is client_id or admin_id.
type connectionRow struct {
	ID               int64
	OwnerID          int64
	Platform         string
	ExternalUserID   string
	ExternalUsername *string
	AccessToken      string
	RefreshToken     *string
	TokenExpiresAt   pgtype.Timestamptz
	Scopes           []string
	IsActive         bool
	Assets           []byte
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

func clientRow(r sqlc.ClientPlatformConnection) connectionRow {
	return connectionRow{
		ID:               r.ID,
		OwnerID:          r.ClientID,
		Platform:         r.Platform,
		ExternalUserID:   r.ExternalUserID,
		ExternalUsername: r.ExternalUsername,
		AccessToken:      r.AccessToken,
		RefreshToken:     r.RefreshToken,
		TokenExpiresAt:   r.TokenExpiresAt,
		Scopes:           r.Scopes,
		IsActive:         r.IsActive,
		Assets:           r.Assets,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func adminRow(r sqlc.AdminPlatformConnection) connectionRow {
	return connectionRow{
		ID:               r.ID,
		OwnerID:          r.AdminID,
		Platform:         r.Platform,
		ExternalUserID:   r.ExternalUserID,
		ExternalUsername: r.ExternalUsername,
		AccessToken:      r.AccessToken,
		RefreshToken:     r.RefreshToken,
		TokenExpiresAt:   r.TokenExpiresAt,
		Scopes:           r.Scopes,
		IsActive:         r.IsActive,
		Assets:           r.Assets,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toConnectionModel(kind model.SubjectKind, row connectionRow) (*model.PlatformConnection, error) {
	assets, err := model.UnmarshalAssets(row.Assets)
	if err != nil {
		return nil, fmt.Errorf("decoding assets of connection %d: %w", row.ID, err)
	}

	conn := &model.PlatformConnection{
		ID:               row.ID,
		Subject:          model.Subject{Kind: kind, ID: row.OwnerID},
		Platform:         model.Platform(row.Platform),
		ExternalUserID:   row.ExternalUserID,
		ExternalUsername: row.ExternalUsername,
		AccessToken:      row.AccessToken,
		RefreshToken:     row.RefreshToken,
		Scopes:           scopesOrEmpty(row.Scopes),
		IsActive:         row.IsActive,
		Assets:           assets,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
	if row.TokenExpiresAt.Valid {
		conn.ExpiresAt = &row.TokenExpiresAt.Time
	}
	return conn, nil
}

func toTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func scopesOrEmpty(scopes []string) []string {
	if scopes == nil {
		return []string{}
	}
	return scopes
}

func unknownSubject(subject model.Subject) error {
	return fmt.Errorf("unknown subject kind %q", subject.Kind)
}
