package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"onboardly.app/portal/core/db/sqlc"
	"onboardly.app/portal/internal/model"
)

type adminStore struct {
	queries *sqlc.Queries
}

func newAdminStore(queries *sqlc.Queries) AdminStore {
	return &adminStore{queries: queries}
}

func (s *adminStore) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	row, err := s.queries.GetAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toAdminModel(row), nil
}

func (s *adminStore) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	row, err := s.queries.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toAdminModel(row), nil
}

func (s *adminStore) UpsertByWorkOSID(ctx context.Context, admin *model.Admin) error {
	row, err := s.queries.UpsertAdminByWorkOSID(ctx, sqlc.UpsertAdminByWorkOSIDParams{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		AvatarUrl: admin.AvatarURL,
		WorkosID:  admin.WorkOSID,
	})
	if err != nil {
		return err
	}
	*admin = *toAdminModel(row)
	return nil
}

func toAdminModel(row sqlc.Admin) *model.Admin {
	return &model.Admin{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		AvatarURL: row.AvatarUrl,
		WorkOSID:  row.WorkosID,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
