package handler_test

import (
	"context"

	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

type mockOAuthService struct {
	beginFn    func(ctx context.Context, params service.BeginParams) (string, error)
	completeFn func(ctx context.Context, params service.CompleteParams) (*service.CompleteResult, error)
	cancelFn   func(ctx context.Context, side model.SubjectKind, p model.Platform, state string) string
}

func (m *mockOAuthService) Begin(ctx context.Context, params service.BeginParams) (string, error) {
	if m.beginFn != nil {
		return m.beginFn(ctx, params)
	}
	return "", nil
}

func (m *mockOAuthService) Complete(ctx context.Context, params service.CompleteParams) (*service.CompleteResult, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, params)
	}
	return nil, nil
}

func (m *mockOAuthService) Cancel(ctx context.Context, side model.SubjectKind, p model.Platform, state string) string {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, side, p, state)
	}
	return ""
}

func (m *mockOAuthService) RedirectURI(side model.SubjectKind, p model.Platform) string {
	return "http://api.test/api/oauth/" + string(side) + "/connect/" + string(p)
}

type mockLinkService struct {
	createFn   func(ctx context.Context, adminID int64, params service.CreateLinkParams) (*model.OnboardingLink, string, error)
	validateFn func(ctx context.Context, token string) (*model.OnboardingLink, error)
	getFn      func(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error)
	listFn     func(ctx context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error)
	revokeFn   func(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error)
}

func (m *mockLinkService) Create(ctx context.Context, adminID int64, params service.CreateLinkParams) (*model.OnboardingLink, string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, adminID, params)
	}
	return nil, "", nil
}

func (m *mockLinkService) Validate(ctx context.Context, token string) (*model.OnboardingLink, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, token)
	}
	return nil, service.ErrLinkNotFound
}

func (m *mockLinkService) Get(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error) {
	if m.getFn != nil {
		return m.getFn(ctx, adminID, id)
	}
	return nil, service.ErrLinkNotFound
}

func (m *mockLinkService) List(ctx context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error) {
	if m.listFn != nil {
		return m.listFn(ctx, adminID, limit, offset)
	}
	return nil, nil
}

func (m *mockLinkService) Revoke(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error) {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, adminID, id)
	}
	return nil, service.ErrLinkNotFound
}

func (m *mockLinkService) URL(token string) string {
	return "http://dash.test/onboard/" + token
}

type mockConnectionService struct {
	listFn       func(ctx context.Context, subject model.Subject) ([]model.PlatformConnection, error)
	deactivateFn func(ctx context.Context, subject model.Subject, p model.Platform) error
}

func (m *mockConnectionService) Upsert(context.Context, service.UpsertConnectionParams) (*model.PlatformConnection, service.UpsertOutcome, error) {
	return nil, "", nil
}

func (m *mockConnectionService) Get(context.Context, model.Subject, model.Platform) (*model.PlatformConnection, error) {
	return nil, service.ErrConnectionNotFound
}

func (m *mockConnectionService) List(ctx context.Context, subject model.Subject) ([]model.PlatformConnection, error) {
	if m.listFn != nil {
		return m.listFn(ctx, subject)
	}
	return nil, nil
}

func (m *mockConnectionService) Deactivate(ctx context.Context, subject model.Subject, p model.Platform) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, subject, p)
	}
	return nil
}

type mockSubmissionService struct {
	submitFn func(ctx context.Context, token string, grants map[model.Platform]model.PlatformGrant) (*model.OnboardingRequest, error)
}

func (m *mockSubmissionService) Submit(ctx context.Context, token string, grants map[model.Platform]model.PlatformGrant) (*model.OnboardingRequest, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, token, grants)
	}
	return nil, nil
}

type mockAssetService struct {
	listFn func(ctx context.Context, adminID, clientID int64, p model.Platform, refresh bool) ([]model.Asset, error)
}

func (m *mockAssetService) List(ctx context.Context, adminID, clientID int64, p model.Platform, refresh bool) ([]model.Asset, error) {
	if m.listFn != nil {
		return m.listFn(ctx, adminID, clientID, p, refresh)
	}
	return nil, nil
}

type mockAuthService struct {
	getAuthURLFn      func(state string) (string, error)
	handleCallbackFn  func(ctx context.Context, code string) (*model.Admin, *model.Session, error)
	validateSessionFn func(ctx context.Context, sessionID int64) (*model.Admin, error)
	logoutFn          func(ctx context.Context, sessionID int64) error
}

func (m *mockAuthService) GetAuthorizationURL(state string) (string, error) {
	if m.getAuthURLFn != nil {
		return m.getAuthURLFn(state)
	}
	return "", nil
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.Admin, *model.Session, error) {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, code)
	}
	return nil, nil, nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, sessionID int64) (*model.Admin, error) {
	if m.validateSessionFn != nil {
		return m.validateSessionFn(ctx, sessionID)
	}
	return nil, service.ErrSessionExpired
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID int64) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}
