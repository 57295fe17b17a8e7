package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
	"onboardly.app/portal/internal/store"
)

var _ = Describe("SubmissionService", func() {
	var (
		ctx      context.Context
		links    *mockLinkStore
		requests *mockRequestStore
		conns    *memConnectionStore
		svc      service.SubmissionService
		link     *model.OnboardingLink
		adAcct   model.Asset
	)

	BeforeEach(func() {
		ctx = context.Background()
		link = &model.OnboardingLink{
			ID:        5,
			ClientID:  11,
			Token:     "tok",
			Platforms: []model.Platform{model.PlatformMeta, model.PlatformGoogle},
			Status:    model.LinkStatusPending,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		links = &mockLinkStore{
			getByTokenFn: func(_ context.Context, _ string) (*model.OnboardingLink, error) {
				return link, nil
			},
		}
		requests = &mockRequestStore{}
		conns = newMemConnectionStore()
		adAcct = model.Asset{ID: "act_1", Name: "Main", Type: model.AssetTypeAdAccount}
		conns.put(model.PlatformConnection{
			Subject:  model.ClientSubject(11),
			Platform: model.PlatformMeta,
			Scopes:   []string{"ads_read"},
			Assets:   []model.Asset{adAcct},
			IsActive: true,
		})
		conns.put(model.PlatformConnection{
			Subject:  model.ClientSubject(11),
			Platform: model.PlatformGoogle,
			Scopes:   []string{"openid"},
			Assets:   []model.Asset{model.BasicAsset(model.PlatformGoogle)},
			IsActive: true,
		})

		tx := &mockTxRunner{stores: &fakeStores{
			clients:     &mockClientStore{},
			links:       links,
			requests:    requests,
			connections: conns,
		}}
		svc = service.NewSubmissionService(tx, service.NewLinkService(tx, links, "https://portal.example.com", 0))
	})

	It("stores the request with stored asset copies and completes the link", func() {
		req, err := svc.Submit(ctx, "tok", map[model.Platform]model.PlatformGrant{
			model.PlatformMeta:   {Assets: []model.Asset{{ID: "act_1", Name: "tampered"}}},
			model.PlatformGoogle: {Scopes: []string{"openid"}, Assets: []model.Asset{{ID: "google_basic"}}},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(req.LinkID).To(Equal(int64(5)))
		Expect(req.ClientID).To(Equal(int64(11)))
		Expect(req.GrantedPermissions[model.PlatformMeta].Assets).To(Equal([]model.Asset{adAcct}))
		Expect(req.GrantedPermissions[model.PlatformMeta].Scopes).To(Equal([]string{"ads_read"}))
		Expect(req.GrantedPermissions[model.PlatformGoogle].Assets).To(Equal([]model.Asset{model.BasicAsset(model.PlatformGoogle)}))
		Expect(requests.created).To(HaveLen(1))
		Expect(links.completed).To(Equal([]int64{5}))
	})

	It("rejects assets that were not discovered", func() {
		_, err := svc.Submit(ctx, "tok", map[model.Platform]model.PlatformGrant{
			model.PlatformMeta: {Assets: []model.Asset{{ID: "act_999"}}},
		})

		Expect(err).To(MatchError(service.ErrAssetNotDiscovered))
		Expect(requests.created).To(BeEmpty())
		Expect(links.completed).To(BeEmpty())
	})

	It("rejects platforms the link did not request", func() {
		_, err := svc.Submit(ctx, "tok", map[model.Platform]model.PlatformGrant{
			model.PlatformTikTok: {},
		})
		Expect(err).To(MatchError(service.ErrPlatformNotRequested))
	})

	It("requires an active connection for every submitted platform", func() {
		Expect(conns.Deactivate(ctx, model.ClientSubject(11), model.PlatformGoogle)).To(Succeed())

		_, err := svc.Submit(ctx, "tok", map[model.Platform]model.PlatformGrant{
			model.PlatformGoogle: {},
		})
		Expect(err).To(MatchError(service.ErrConnectionNotFound))
	})

	It("rejects an empty submission", func() {
		_, err := svc.Submit(ctx, "tok", nil)
		Expect(err).To(MatchError(service.ErrNothingSubmitted))
	})

	It("rejects a completed link", func() {
		link.Status = model.LinkStatusCompleted
		_, err := svc.Submit(ctx, "tok", map[model.Platform]model.PlatformGrant{model.PlatformMeta: {}})
		Expect(err).To(MatchError(service.ErrLinkCompleted))
	})

	It("reports a link completed concurrently", func() {
		links.completeFn = func(_ context.Context, _ int64) (*model.OnboardingLink, error) {
			return nil, store.ErrNotFound
		}
		_, err := svc.Submit(ctx, "tok", map[model.Platform]model.PlatformGrant{model.PlatformMeta: {}})
		Expect(err).To(MatchError(service.ErrLinkCompleted))
	})
})
