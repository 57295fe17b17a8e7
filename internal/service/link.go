package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"time"

	"onboardly.app/portal/common/id"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/store"
)

const (
	LinkTokenBytes        = 32
	DefaultLinkExpiryDays = 7
	MaxLinkExpiryDays     = 30
)

var (
	ErrLinkNotFound  = errors.New("onboarding link not found")
	ErrLinkExpired   = errors.New("onboarding link has expired")
	ErrLinkCompleted = errors.New("onboarding link has already been completed")
	ErrLinkRevoked   = errors.New("onboarding link has been revoked")
	ErrInvalidLink   = errors.New("invalid onboarding link request")
)

type CreateLinkParams struct {
	ClientName           string
	ClientEmail          string
	Platforms            []model.Platform
	RequestedPermissions map[model.Platform][]string
	ExpiresInDays        int
}

type LinkService interface {
	Create(ctx context.Context, adminID int64, params CreateLinkParams) (*model.OnboardingLink, string, error)
	// Validate returns the link only while it is pending and unexpired.
	Validate(ctx context.Context, token string) (*model.OnboardingLink, error)
	Get(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error)
	List(ctx context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error)
	Revoke(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error)
	URL(token string) string
}

type linkService struct {
	txRunner      TxRunner
	linkStore     store.OnboardingLinkStore
	dashboardURL  string
	defaultExpiry time.Duration
}

func NewLinkService(txRunner TxRunner, linkStore store.OnboardingLinkStore, dashboardURL string, defaultExpiry time.Duration) LinkService {
	if defaultExpiry <= 0 {
		defaultExpiry = DefaultLinkExpiryDays * 24 * time.Hour
	}
	return &linkService{
		txRunner:      txRunner,
		linkStore:     linkStore,
		dashboardURL:  dashboardURL,
		defaultExpiry: defaultExpiry,
	}
}

func (s *linkService) Create(ctx context.Context, adminID int64, params CreateLinkParams) (*model.OnboardingLink, string, error) {
	email := strings.ToLower(strings.TrimSpace(params.ClientEmail))
	name := strings.TrimSpace(params.ClientName)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: client email %q", ErrInvalidLink, params.ClientEmail)
	}
	if name == "" {
		name = email
	}

	platforms, perms, err := normalizeRequest(params.Platforms, params.RequestedPermissions)
	if err != nil {
		return nil, "", err
	}

	expiry := s.defaultExpiry
	if params.ExpiresInDays != 0 {
		if params.ExpiresInDays < 1 || params.ExpiresInDays > MaxLinkExpiryDays {
			return nil, "", fmt.Errorf("%w: expiry must be between 1 and %d days", ErrInvalidLink, MaxLinkExpiryDays)
		}
		expiry = time.Duration(params.ExpiresInDays) * 24 * time.Hour
	}

	token, err := id.Token(LinkTokenBytes)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	link := &model.OnboardingLink{
		ID:                   id.New(),
		AdminID:              adminID,
		Token:                token,
		Platforms:            platforms,
		RequestedPermissions: perms,
		Status:               model.LinkStatusPending,
		ExpiresAt:            time.Now().Add(expiry),
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		client, err := findOrCreateClient(ctx, stores.Clients(), adminID, name, email)
		if err != nil {
			return err
		}
		link.ClientID = client.ID
		if err := stores.OnboardingLinks().Create(ctx, link); err != nil {
			return fmt.Errorf("creating onboarding link: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	slog.InfoContext(ctx, "onboarding link created",
		"link_id", link.ID,
		"admin_id", adminID,
		"client_id", link.ClientID,
		"platforms", link.Platforms,
		"expires_at", link.ExpiresAt,
	)

	return link, s.URL(token), nil
}

func findOrCreateClient(ctx context.Context, clients store.ClientStore, adminID int64, name, email string) (*model.Client, error) {
	client, err := clients.GetByAdminAndEmail(ctx, adminID, email)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting client: %w", err)
	}

	client = &model.Client{
		ID:      id.New(),
		AdminID: adminID,
		Name:    name,
		Email:   email,
	}
	if err := clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return client, nil
}

// normalizeRequest dedupes platforms and scopes and checks that permissions
// are only requested for listed platforms.
func normalizeRequest(platforms []model.Platform, perms map[model.Platform][]string) ([]model.Platform, map[model.Platform][]string, error) {
	if len(platforms) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one platform is required", ErrInvalidLink)
	}

	var outPlatforms []model.Platform
	for _, p := range platforms {
		if !p.Valid() {
			return nil, nil, fmt.Errorf("%w: unsupported platform %q", ErrInvalidLink, p)
		}
		if !slices.Contains(outPlatforms, p) {
			outPlatforms = append(outPlatforms, p)
		}
	}

	outPerms := make(map[model.Platform][]string, len(outPlatforms))
	for p, scopes := range perms {
		if !slices.Contains(outPlatforms, p) {
			return nil, nil, fmt.Errorf("%w: permissions requested for unlisted platform %q", ErrInvalidLink, p)
		}
		outPerms[p] = model.ParseScopes(strings.Join(scopes, ","))
	}
	for _, p := range outPlatforms {
		if len(outPerms[p]) == 0 {
			return nil, nil, fmt.Errorf("%w: no permissions requested for %s", ErrInvalidLink, p)
		}
	}
	return outPlatforms, outPerms, nil
}

func (s *linkService) Validate(ctx context.Context, token string) (*model.OnboardingLink, error) {
	if token == "" {
		return nil, ErrLinkNotFound
	}
	link, err := s.linkStore.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("getting onboarding link: %w", err)
	}

	switch link.Status {
	case model.LinkStatusCompleted:
		return nil, ErrLinkCompleted
	case model.LinkStatusRevoked:
		return nil, ErrLinkRevoked
	case model.LinkStatusExpired:
		return nil, ErrLinkExpired
	}

	if !time.Now().Before(link.ExpiresAt) {
		if err := s.linkStore.MarkExpired(ctx, link.ID); err != nil {
			slog.WarnContext(ctx, "failed to mark onboarding link expired", "error", err, "link_id", link.ID)
		}
		return nil, ErrLinkExpired
	}

	return link, nil
}

func (s *linkService) Get(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error) {
	link, err := s.linkStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("getting onboarding link: %w", err)
	}
	if link.AdminID != adminID {
		return nil, ErrLinkNotFound
	}
	return link, nil
}

func (s *linkService) List(ctx context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	links, err := s.linkStore.ListByAdmin(ctx, adminID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing onboarding links: %w", err)
	}
	return links, nil
}

func (s *linkService) Revoke(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error) {
	link, err := s.linkStore.Revoke(ctx, adminID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("revoking onboarding link: %w", err)
	}

	slog.InfoContext(ctx, "onboarding link revoked", "link_id", id, "admin_id", adminID)
	return link, nil
}

func (s *linkService) URL(token string) string {
	return fmt.Sprintf("%s/onboard/%s", s.dashboardURL, token)
}
