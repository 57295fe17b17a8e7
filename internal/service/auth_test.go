package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
	"onboardly.app/portal/internal/store"
)

var _ = Describe("AuthService", func() {
	var (
		ctx      context.Context
		admins   *mockAdminStore
		sessions *mockSessionStore
		workos   *mockWorkOS
		svc      service.AuthService
		cfg      config.WorkOSConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		admins = &mockAdminStore{}
		sessions = &mockSessionStore{}
		workos = &mockWorkOS{}
		cfg = config.WorkOSConfig{ClientID: "client_123", RedirectURI: "https://api.example.com/auth/callback"}
		svc = service.NewAuthService(admins, sessions, workos, cfg)
	})

	Describe("GetAuthorizationURL", func() {
		It("asks AuthKit with the configured client", func() {
			workos.authURLFn = func(opts usermanagement.GetAuthorizationURLOpts) (string, error) {
				Expect(opts.ClientID).To(Equal("client_123"))
				Expect(opts.RedirectURI).To(Equal(cfg.RedirectURI))
				Expect(opts.Provider).To(Equal("authkit"))
				return "https://auth.workos.test/?state=" + opts.State, nil
			}
			url, err := svc.GetAuthorizationURL("s1")
			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(HaveSuffix("state=s1"))
		})
	})

	Describe("HandleCallback", func() {
		It("upserts the admin and opens a seven day session", func() {
			accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": "session_01"}).
				SignedString([]byte("test"))
			Expect(err).NotTo(HaveOccurred())

			workos.authenticateFn = func(_ context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error) {
				Expect(opts.Code).To(Equal("code-1"))
				return usermanagement.AuthenticateResponse{
					User: usermanagement.User{
						ID:        "user_01",
						Email:     "admin@agency.com",
						FirstName: "Ada",
						LastName:  "Admin",
					},
					AccessToken: accessToken,
				}, nil
			}
			var saved *model.Session
			sessions.createFn = func(_ context.Context, s *model.Session) error {
				saved = s
				return nil
			}

			admin, session, err := svc.HandleCallback(ctx, "code-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(admin.Name).To(Equal("Ada Admin"))
			Expect(*admin.WorkOSID).To(Equal("user_01"))
			Expect(session.AdminID).To(Equal(admin.ID))
			Expect(session.ExpiresAt).To(BeTemporally("~", time.Now().Add(service.SessionDuration), time.Minute))
			Expect(*saved.WorkOSSessionID).To(Equal("session_01"))
		})

		It("maps a rejected code to ErrInvalidCode", func() {
			workos.authenticateFn = func(_ context.Context, _ usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error) {
				return usermanagement.AuthenticateResponse{}, errors.New("invalid_grant")
			}
			_, _, err := svc.HandleCallback(ctx, "bad")
			Expect(err).To(MatchError(service.ErrInvalidCode))
			Expect(sessions.createCalls).To(BeZero())
		})

		It("falls back to the email when no name is set", func() {
			workos.authenticateFn = func(_ context.Context, _ usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error) {
				return usermanagement.AuthenticateResponse{User: usermanagement.User{ID: "u", Email: "a@b.co"}}, nil
			}
			admin, session, err := svc.HandleCallback(ctx, "c")
			Expect(err).NotTo(HaveOccurred())
			Expect(admin.Name).To(Equal("a@b.co"))
			Expect(session.WorkOSSessionID).To(BeNil())
		})
	})

	Describe("ValidateSession", func() {
		It("returns the admin behind a live session", func() {
			sessions.getValidFn = func(_ context.Context, id int64) (*model.Session, error) {
				return &model.Session{ID: id, AdminID: 3}, nil
			}
			admins.getByIDFn = func(_ context.Context, id int64) (*model.Admin, error) {
				return &model.Admin{ID: id}, nil
			}
			admin, err := svc.ValidateSession(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(admin.ID).To(Equal(int64(3)))
		})

		It("reports expired sessions", func() {
			_, err := svc.ValidateSession(ctx, 1)
			Expect(err).To(MatchError(service.ErrSessionExpired))
		})

		It("reports a missing admin", func() {
			sessions.getValidFn = func(_ context.Context, id int64) (*model.Session, error) {
				return &model.Session{ID: id, AdminID: 3}, nil
			}
			admins.getByIDFn = func(_ context.Context, _ int64) (*model.Admin, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.ValidateSession(ctx, 1)
			Expect(err).To(MatchError(service.ErrAdminNotFound))
		})
	})
})
