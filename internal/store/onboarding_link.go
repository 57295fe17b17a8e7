package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"onboardly.app/portal/core/db/sqlc"
	"onboardly.app/portal/internal/model"
)

type onboardingLinkStore struct {
	queries *sqlc.Queries
}

func newOnboardingLinkStore(queries *sqlc.Queries) OnboardingLinkStore {
	return &onboardingLinkStore{queries: queries}
}

func (s *onboardingLinkStore) Create(ctx context.Context, link *model.OnboardingLink) error {
	perms, err := json.Marshal(link.RequestedPermissions)
	if err != nil {
		return fmt.Errorf("encoding requested permissions: %w", err)
	}

	row, err := s.queries.CreateOnboardingLink(ctx, sqlc.CreateOnboardingLinkParams{
		ID:                   link.ID,
		AdminID:              link.AdminID,
		ClientID:             link.ClientID,
		Token:                link.Token,
		Platforms:            platformStrings(link.Platforms),
		RequestedPermissions: perms,
		ExpiresAt:            pgtype.Timestamptz{Time: link.ExpiresAt, Valid: true},
	})
	if err != nil {
		return err
	}

	created, err := toOnboardingLinkModel(row)
	if err != nil {
		return err
	}
	*link = *created
	return nil
}

func (s *onboardingLinkStore) GetByID(ctx context.Context, id int64) (*model.OnboardingLink, error) {
	row, err := s.queries.GetOnboardingLink(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOnboardingLinkModel(row)
}

func (s *onboardingLinkStore) GetByToken(ctx context.Context, token string) (*model.OnboardingLink, error) {
	row, err := s.queries.GetOnboardingLinkByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOnboardingLinkModel(row)
}

func (s *onboardingLinkStore) ListByAdmin(ctx context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error) {
	rows, err := s.queries.ListOnboardingLinksByAdmin(ctx, sqlc.ListOnboardingLinksByAdminParams{
		AdminID: adminID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.OnboardingLink, 0, len(rows))
	for _, row := range rows {
		link, err := toOnboardingLinkModel(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *link)
	}
	return result, nil
}

func (s *onboardingLinkStore) Complete(ctx context.Context, id int64) (*model.OnboardingLink, error) {
	row, err := s.queries.CompleteOnboardingLink(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOnboardingLinkModel(row)
}

func (s *onboardingLinkStore) Revoke(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error) {
	row, err := s.queries.RevokeOnboardingLink(ctx, sqlc.RevokeOnboardingLinkParams{
		ID:      id,
		AdminID: adminID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOnboardingLinkModel(row)
}

func (s *onboardingLinkStore) MarkExpired(ctx context.Context, id int64) error {
	return s.queries.ExpireOnboardingLink(ctx, id)
}

func toOnboardingLinkModel(row sqlc.OnboardingLink) (*model.OnboardingLink, error) {
	perms := map[model.Platform][]string{}
	if len(row.RequestedPermissions) > 0 {
		if err := json.Unmarshal(row.RequestedPermissions, &perms); err != nil {
			return nil, fmt.Errorf("decoding requested permissions of link %d: %w", row.ID, err)
		}
	}

	platforms := make([]model.Platform, len(row.Platforms))
	for i, p := range row.Platforms {
		platforms[i] = model.Platform(p)
	}

	link := &model.OnboardingLink{
		ID:                   row.ID,
		AdminID:              row.AdminID,
		ClientID:             row.ClientID,
		Token:                row.Token,
		Platforms:            platforms,
		RequestedPermissions: perms,
		Status:               model.LinkStatus(row.Status),
		ExpiresAt:            row.ExpiresAt.Time,
		CreatedAt:            row.CreatedAt.Time,
	}
	if row.CompletedAt.Valid {
		link.CompletedAt = &row.CompletedAt.Time
	}
	return link, nil
}

func platformStrings(platforms []model.Platform) []string {
	out := make([]string, len(platforms))
	for i, p := range platforms {
		out[i] = string(p)
	}
	return out
}
