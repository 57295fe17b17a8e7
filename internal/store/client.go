package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"onboardly.app/portal/core/db/sqlc"
	"onboardly.app/portal/internal/model"
)

type clientStore struct {
	queries *sqlc.Queries
}

func newClientStore(queries *sqlc.Queries) ClientStore {
	return &clientStore{queries: queries}
}

func (s *clientStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	row, err := s.queries.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toClientModel(row), nil
}

func (s *clientStore) GetByAdminAndEmail(ctx context.Context, adminID int64, email string) (*model.Client, error) {
	row, err := s.queries.GetClientByAdminAndEmail(ctx, sqlc.GetClientByAdminAndEmailParams{
		AdminID: adminID,
		Email:   email,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toClientModel(row), nil
}

func (s *clientStore) Create(ctx context.Context, client *model.Client) error {
	row, err := s.queries.CreateClient(ctx, sqlc.CreateClientParams{
		ID:      client.ID,
		AdminID: client.AdminID,
		Name:    client.Name,
		Email:   client.Email,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	*client = *toClientModel(row)
	return nil
}

func (s *clientStore) ListByAdmin(ctx context.Context, adminID int64) ([]model.Client, error) {
	rows, err := s.queries.ListClientsByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Client, len(rows))
	for i, row := range rows {
		result[i] = *toClientModel(row)
	}
	return result, nil
}

func toClientModel(row sqlc.Client) *model.Client {
	return &model.Client{
		ID:        row.ID,
		AdminID:   row.AdminID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
