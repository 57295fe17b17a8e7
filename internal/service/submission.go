package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"onboardly.app/portal/common/id"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/store"
)

var (
	ErrNothingSubmitted   = errors.New("no platforms submitted")
	ErrAssetNotDiscovered = errors.New("asset was not discovered for this connection")
)

type SubmissionService interface {
	// Submit records what the client granted and completes the link.
	Submit(ctx context.Context, token string, grants map[model.Platform]model.PlatformGrant) (*model.OnboardingRequest, error)
}

type submissionService struct {
	txRunner TxRunner
	links    LinkService
}

func NewSubmissionService(txRunner TxRunner, links LinkService) SubmissionService {
	return &submissionService{txRunner: txRunner, links: links}
}

func (s *submissionService) Submit(ctx context.Context, token string, grants map[model.Platform]model.PlatformGrant) (*model.OnboardingRequest, error) {
	link, err := s.links.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return nil, ErrNothingSubmitted
	}

	for p := range grants {
		if !link.Requests(p) {
			return nil, fmt.Errorf("%w: %s", ErrPlatformNotRequested, p)
		}
	}

	req := &model.OnboardingRequest{
		ID:                 id.New(),
		LinkID:             link.ID,
		ClientID:           link.ClientID,
		GrantedPermissions: make(map[model.Platform]model.PlatformGrant, len(grants)),
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		subject := model.ClientSubject(link.ClientID)
		for p, grant := range grants {
			conn, err := stores.Connections().Get(ctx, subject, p)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("%w: %s", ErrConnectionNotFound, p)
				}
				return fmt.Errorf("getting %s connection: %w", p, err)
			}
			if !conn.IsActive {
				return fmt.Errorf("%w: %s", ErrConnectionNotFound, p)
			}

			checked, err := checkGrant(p, grant, conn)
			if err != nil {
				return err
			}
			req.GrantedPermissions[p] = checked
		}

		if err := stores.OnboardingRequests().Create(ctx, req); err != nil {
			return fmt.Errorf("creating onboarding request: %w", err)
		}
		if _, err := stores.OnboardingLinks().Complete(ctx, link.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// completed or revoked since Validate
				return ErrLinkCompleted
			}
			return fmt.Errorf("completing onboarding link: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "onboarding submitted",
		"link_id", link.ID,
		"client_id", link.ClientID,
		"request_id", req.ID,
		"platforms", len(req.GrantedPermissions),
	)
	return req, nil
}

// checkGrant keeps only discovered assets, using the stored copy of each.
// Scopes default to what the connection was granted.
func checkGrant(p model.Platform, grant model.PlatformGrant, conn *model.PlatformConnection) (model.PlatformGrant, error) {
	out := model.PlatformGrant{Scopes: grant.Scopes, Assets: []model.Asset{}}
	if len(out.Scopes) == 0 {
		out.Scopes = conn.Scopes
	}

	for _, a := range grant.Assets {
		stored, ok := model.FindAsset(conn.Assets, a.ID)
		if !ok && a.ID == model.BasicAsset(p).ID {
			stored, ok = model.BasicAsset(p), true
		}
		if !ok || stored.Type == model.AssetTypeError {
			return model.PlatformGrant{}, fmt.Errorf("%w: %s %s", ErrAssetNotDiscovered, p, a.ID)
		}
		if !slices.ContainsFunc(out.Assets, func(x model.Asset) bool { return x.ID == stored.ID }) {
			out.Assets = append(out.Assets, stored)
		}
	}

	for _, scope := range out.Scopes {
		if strings.TrimSpace(scope) == "" {
			return model.PlatformGrant{}, fmt.Errorf("%w: empty scope for %s", ErrInvalidLink, p)
		}
	}
	return out, nil
}
