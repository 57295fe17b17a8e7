package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"onboardly.app/portal/internal/http/handler"
	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

var _ = Describe("LinkHandler", func() {
	var (
		router *gin.Engine
		svc    *mockLinkService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockLinkService{}
		h := handler.NewLinkHandler(svc)

		links := router.Group("/api/admin/links", func(c *gin.Context) {
			middleware.SetAdmin(c, &model.Admin{ID: 7})
			c.Next()
		})
		links.POST("", h.Create)
		links.GET("", h.List)
		links.GET("/:id", h.Get)
		links.POST("/:id/revoke", h.Revoke)
	})

	do := func(method, target string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, target, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	pendingLink := func() *model.OnboardingLink {
		return &model.OnboardingLink{
			ID:                   100,
			AdminID:              7,
			ClientID:             200,
			Token:                "tok",
			Platforms:            []model.Platform{model.PlatformMeta},
			RequestedPermissions: map[model.Platform][]string{model.PlatformMeta: {"ads_read"}},
			Status:               model.LinkStatusPending,
			ExpiresAt:            time.Now().Add(24 * time.Hour),
		}
	}

	Describe("Create", func() {
		It("returns 201 with the link url", func() {
			var gotAdmin int64
			var got service.CreateLinkParams
			svc.createFn = func(_ context.Context, adminID int64, params service.CreateLinkParams) (*model.OnboardingLink, string, error) {
				gotAdmin = adminID
				got = params
				return pendingLink(), "http://dash.test/onboard/tok", nil
			}

			w := do(http.MethodPost, "/api/admin/links", map[string]any{
				"client_name":           "Acme",
				"client_email":          "owner@acme.test",
				"platforms":             []string{"meta"},
				"requested_permissions": map[string][]string{"meta": {"ads_read"}},
				"expires_in_days":       3,
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(gotAdmin).To(Equal(int64(7)))
			Expect(got.ClientEmail).To(Equal("owner@acme.test"))
			Expect(got.ExpiresInDays).To(Equal(3))
			Expect(got.Platforms).To(ConsistOf(model.PlatformMeta))
			Expect(got.RequestedPermissions[model.PlatformMeta]).To(ConsistOf("ads_read"))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["url"]).To(Equal("http://dash.test/onboard/tok"))
			Expect(resp["id"]).To(Equal("100"))
			Expect(resp["status"]).To(Equal("pending"))
		})

		It("returns 400 for a malformed email", func() {
			w := do(http.MethodPost, "/api/admin/links", map[string]any{
				"client_email":          "not-an-email",
				"platforms":             []string{"meta"},
				"requested_permissions": map[string][]string{"meta": {"ads_read"}},
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for an expiry beyond the maximum", func() {
			w := do(http.MethodPost, "/api/admin/links", map[string]any{
				"client_email":          "owner@acme.test",
				"platforms":             []string{"meta"},
				"requested_permissions": map[string][]string{"meta": {"ads_read"}},
				"expires_in_days":       45,
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps service validation errors to 400", func() {
			svc.createFn = func(context.Context, int64, service.CreateLinkParams) (*model.OnboardingLink, string, error) {
				return nil, "", service.ErrInvalidLink
			}

			w := do(http.MethodPost, "/api/admin/links", map[string]any{
				"client_email":          "owner@acme.test",
				"platforms":             []string{"meta"},
				"requested_permissions": map[string][]string{"google": {"openid"}},
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["code"]).To(Equal("invalid_link_request"))
		})
	})

	Describe("List", func() {
		It("passes paging through and renders each link url", func() {
			svc.listFn = func(_ context.Context, adminID int64, limit, offset int32) ([]model.OnboardingLink, error) {
				Expect(adminID).To(Equal(int64(7)))
				Expect(limit).To(Equal(int32(10)))
				Expect(offset).To(Equal(int32(20)))
				return []model.OnboardingLink{*pendingLink()}, nil
			}

			w := do(http.MethodGet, "/api/admin/links?limit=10&offset=20", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Links []map[string]any `json:"links"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Links).To(HaveLen(1))
			Expect(resp.Links[0]["url"]).To(Equal("http://dash.test/onboard/tok"))
		})
	})

	Describe("Get", func() {
		It("returns 400 for a non numeric id", func() {
			w := do(http.MethodGet, "/api/admin/links/abc", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for a link of another admin", func() {
			w := do(http.MethodGet, "/api/admin/links/100", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Revoke", func() {
		It("returns the revoked link", func() {
			svc.revokeFn = func(_ context.Context, _ int64, id int64) (*model.OnboardingLink, error) {
				link := pendingLink()
				link.ID = id
				link.Status = model.LinkStatusRevoked
				return link, nil
			}

			w := do(http.MethodPost, "/api/admin/links/100/revoke", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("revoked"))
		})

		It("returns 410 when the link already completed", func() {
			svc.revokeFn = func(context.Context, int64, int64) (*model.OnboardingLink, error) {
				return nil, service.ErrLinkCompleted
			}

			w := do(http.MethodPost, "/api/admin/links/100/revoke", nil)
			Expect(w.Code).To(Equal(http.StatusGone))
		})
	})
})
