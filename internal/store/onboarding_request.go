package store

import (
	"context"
	"encoding/json"
	"fmt"

	"onboardly.app/portal/core/db/sqlc"
	"onboardly.app/portal/internal/model"
)

type onboardingRequestStore struct {
	queries *sqlc.Queries
}

func newOnboardingRequestStore(queries *sqlc.Queries) OnboardingRequestStore {
	return &onboardingRequestStore{queries: queries}
}

func (s *onboardingRequestStore) Create(ctx context.Context, req *model.OnboardingRequest) error {
	granted, err := json.Marshal(req.GrantedPermissions)
	if err != nil {
		return fmt.Errorf("encoding granted permissions: %w", err)
	}

	row, err := s.queries.CreateOnboardingRequest(ctx, sqlc.CreateOnboardingRequestParams{
		ID:                 req.ID,
		LinkID:             req.LinkID,
		ClientID:           req.ClientID,
		GrantedPermissions: granted,
	})
	if err != nil {
		return err
	}

	created, err := toOnboardingRequestModel(row)
	if err != nil {
		return err
	}
	*req = *created
	return nil
}

func (s *onboardingRequestStore) ListByClient(ctx context.Context, clientID int64) ([]model.OnboardingRequest, error) {
	rows, err := s.queries.ListOnboardingRequestsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := make([]model.OnboardingRequest, 0, len(rows))
	for _, row := range rows {
		req, err := toOnboardingRequestModel(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, nil
}

func toOnboardingRequestModel(row sqlc.OnboardingRequest) (*model.OnboardingRequest, error) {
	granted := map[model.Platform]model.PlatformGrant{}
	if len(row.GrantedPermissions) > 0 {
		if err := json.Unmarshal(row.GrantedPermissions, &granted); err != nil {
			return nil, fmt.Errorf("decoding granted permissions of request %d: %w", row.ID, err)
		}
	}
	return &model.OnboardingRequest{
		ID:                 row.ID,
		LinkID:             row.LinkID,
		ClientID:           row.ClientID,
		GrantedPermissions: granted,
		SubmittedAt:        row.SubmittedAt.Time,
	}, nil
}
