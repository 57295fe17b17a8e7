package service_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
	"onboardly.app/portal/internal/service/platform"
	"onboardly.app/portal/internal/store"
)

type mockAdminStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Admin, error)
	upsertFn  func(ctx context.Context, admin *model.Admin) error
}

func (m *mockAdminStore) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockAdminStore) GetByEmail(_ context.Context, _ string) (*model.Admin, error) {
	return nil, store.ErrNotFound
}

func (m *mockAdminStore) UpsertByWorkOSID(ctx context.Context, admin *model.Admin) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, admin)
	}
	return nil
}

type mockSessionStore struct {
	getValidFn  func(ctx context.Context, id int64) (*model.Session, error)
	createFn    func(ctx context.Context, session *model.Session) error
	deleteFn    func(ctx context.Context, id int64) error
	createCalls int
}

func (m *mockSessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(_ context.Context) error {
	return nil
}

type mockClientStore struct {
	getByIDFn            func(ctx context.Context, id int64) (*model.Client, error)
	getByAdminAndEmailFn func(ctx context.Context, adminID int64, email string) (*model.Client, error)
	createFn             func(ctx context.Context, client *model.Client) error
	listByAdminFn        func(ctx context.Context, adminID int64) ([]model.Client, error)
	createCalls          int
}

func (m *mockClientStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockClientStore) GetByAdminAndEmail(ctx context.Context, adminID int64, email string) (*model.Client, error) {
	if m.getByAdminAndEmailFn != nil {
		return m.getByAdminAndEmailFn(ctx, adminID, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockClientStore) Create(ctx context.Context, client *model.Client) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, client)
	}
	return nil
}

func (m *mockClientStore) ListByAdmin(ctx context.Context, adminID int64) ([]model.Client, error) {
	if m.listByAdminFn != nil {
		return m.listByAdminFn(ctx, adminID)
	}
	return []model.Client{}, nil
}

type mockLinkStore struct {
	createFn      func(ctx context.Context, link *model.OnboardingLink) error
	getByIDFn     func(ctx context.Context, id int64) (*model.OnboardingLink, error)
	getByTokenFn  func(ctx context.Context, token string) (*model.OnboardingLink, error)
	listByAdminFn func(ctx context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error)
	completeFn    func(ctx context.Context, id int64) (*model.OnboardingLink, error)
	revokeFn      func(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error)
	expired       []int64
	completed     []int64
}

func (m *mockLinkStore) Create(ctx context.Context, link *model.OnboardingLink) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockLinkStore) GetByID(ctx context.Context, id int64) (*model.OnboardingLink, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockLinkStore) GetByToken(ctx context.Context, token string) (*model.OnboardingLink, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockLinkStore) ListByAdmin(ctx context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error) {
	if m.listByAdminFn != nil {
		return m.listByAdminFn(ctx, adminID, limit, offset)
	}
	return []model.OnboardingLink{}, nil
}

func (m *mockLinkStore) Complete(ctx context.Context, id int64) (*model.OnboardingLink, error) {
	m.completed = append(m.completed, id)
	if m.completeFn != nil {
		return m.completeFn(ctx, id)
	}
	return &model.OnboardingLink{ID: id, Status: model.LinkStatusCompleted}, nil
}

func (m *mockLinkStore) Revoke(ctx context.Context, adminID, id int64) (*model.OnboardingLink, error) {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, adminID, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockLinkStore) MarkExpired(_ context.Context, id int64) error {
	m.expired = append(m.expired, id)
	return nil
}

type mockRequestStore struct {
	created []*model.OnboardingRequest
}

func (m *mockRequestStore) Create(_ context.Context, req *model.OnboardingRequest) error {
	m.created = append(m.created, req)
	return nil
}

func (m *mockRequestStore) ListByClient(_ context.Context, clientID int64) ([]model.OnboardingRequest, error) {
	var out []model.OnboardingRequest
	for _, r := range m.created {
		if r.ClientID == clientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type connKey struct {
	subject  model.Subject
	platform model.Platform
}

// memConnectionStore keeps connections in memory and counts writes.
type memConnectionStore struct {
	mu           sync.Mutex
	rows         map[connKey]model.PlatformConnection
	createCalls  int
	updateCalls  int
	assetUpdates int
}

func newMemConnectionStore() *memConnectionStore {
	return &memConnectionStore{rows: map[connKey]model.PlatformConnection{}}
}

func (m *memConnectionStore) put(conn model.PlatformConnection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[connKey{conn.Subject, conn.Platform}] = conn
}

func (m *memConnectionStore) Get(_ context.Context, subject model.Subject, p model.Platform) (*model.PlatformConnection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.rows[connKey{subject, p}]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &conn, nil
}

func (m *memConnectionStore) List(_ context.Context, subject model.Subject) ([]model.PlatformConnection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.PlatformConnection{}
	for k, conn := range m.rows {
		if k.subject == subject {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (m *memConnectionStore) Create(_ context.Context, conn *model.PlatformConnection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	k := connKey{conn.Subject, conn.Platform}
	if _, ok := m.rows[k]; ok {
		return store.ErrConflict
	}
	m.rows[k] = *conn
	return nil
}

func (m *memConnectionStore) Update(_ context.Context, conn *model.PlatformConnection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	k := connKey{conn.Subject, conn.Platform}
	if _, ok := m.rows[k]; !ok {
		return store.ErrNotFound
	}
	conn.IsActive = true
	m.rows[k] = *conn
	return nil
}

func (m *memConnectionStore) UpdateAssets(_ context.Context, conn *model.PlatformConnection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assetUpdates++
	k := connKey{conn.Subject, conn.Platform}
	row, ok := m.rows[k]
	if !ok {
		return store.ErrNotFound
	}
	row.Assets = conn.Assets
	m.rows[k] = row
	return nil
}

func (m *memConnectionStore) Deactivate(_ context.Context, subject model.Subject, p model.Platform) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := connKey{subject, p}
	row, ok := m.rows[k]
	if !ok || !row.IsActive {
		return store.ErrNotFound
	}
	row.IsActive = false
	m.rows[k] = row
	return nil
}

func (m *memConnectionStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memStateStore struct {
	mu     sync.Mutex
	states map[string]model.OAuthState
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: map[string]model.OAuthState{}}
}

func (m *memStateStore) Save(_ context.Context, state *model.OAuthState) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := uuid.NewString()
	m.states[key] = *state
	return key, nil
}

func (m *memStateStore) Consume(_ context.Context, key string) (*model.OAuthState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(m.states, key)
	return &state, nil
}

// lastKey returns any saved key; tests save one state at a time.
func (m *memStateStore) lastKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.states {
		return k
	}
	return ""
}

type fakeStores struct {
	clients     *mockClientStore
	links       *mockLinkStore
	requests    *mockRequestStore
	connections *memConnectionStore
}

func (f *fakeStores) Clients() store.ClientStore                       { return f.clients }
func (f *fakeStores) OnboardingLinks() store.OnboardingLinkStore       { return f.links }
func (f *fakeStores) OnboardingRequests() store.OnboardingRequestStore { return f.requests }
func (f *fakeStores) Connections() store.ConnectionStore               { return f.connections }

type mockTxRunner struct {
	stores *fakeStores
	calls  int
}

func (m *mockTxRunner) WithTx(_ context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	return fn(m.stores)
}

type fakeProvider struct {
	platform    model.Platform
	authURLFn   func(req platform.AuthorizationRequest) (string, error)
	exchangeFn  func(ctx context.Context, req platform.ExchangeRequest) (*platform.TokenResponse, error)
	identityFn  func(ctx context.Context, token *platform.TokenResponse, shop string) (*platform.Identity, error)
	discoverFn  func(ctx context.Context, req platform.DiscoveryRequest) []model.Asset
	identityHit int
	discoverHit int
	lastAuth    platform.AuthorizationRequest
	lastDiscReq platform.DiscoveryRequest
}

func (f *fakeProvider) Platform() model.Platform { return f.platform }

func (f *fakeProvider) AuthorizationURL(req platform.AuthorizationRequest) (string, error) {
	f.lastAuth = req
	if f.authURLFn != nil {
		return f.authURLFn(req)
	}
	return "https://consent.example.com/?state=" + req.State, nil
}

func (f *fakeProvider) ExchangeCode(ctx context.Context, req platform.ExchangeRequest) (*platform.TokenResponse, error) {
	if f.exchangeFn != nil {
		return f.exchangeFn(ctx, req)
	}
	return &platform.TokenResponse{AccessToken: "access-" + req.Code, ExpiresIn: 3600}, nil
}

func (f *fakeProvider) FetchIdentity(ctx context.Context, token *platform.TokenResponse, shop string) (*platform.Identity, error) {
	f.identityHit++
	if f.identityFn != nil {
		return f.identityFn(ctx, token, shop)
	}
	return &platform.Identity{ID: "ext-1", Username: "someone"}, nil
}

func (f *fakeProvider) DiscoverAssets(ctx context.Context, req platform.DiscoveryRequest) []model.Asset {
	f.discoverHit++
	f.lastDiscReq = req
	if f.discoverFn != nil {
		return f.discoverFn(ctx, req)
	}
	return []model.Asset{model.BasicAsset(f.platform)}
}

type mockWorkOS struct {
	authURLFn      func(opts usermanagement.GetAuthorizationURLOpts) (string, error)
	authenticateFn func(ctx context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error)
}

func (m *mockWorkOS) GetAuthorizationURL(opts usermanagement.GetAuthorizationURLOpts) (string, error) {
	if m.authURLFn != nil {
		return m.authURLFn(opts)
	}
	return "https://auth.workos.test/?state=" + opts.State, nil
}

func (m *mockWorkOS) AuthenticateWithCode(ctx context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, opts)
	}
	return usermanagement.AuthenticateResponse{}, nil
}
