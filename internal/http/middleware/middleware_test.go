package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"onboardly.app/portal/common/logger"
	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

type validatorFunc func(ctx context.Context, sessionID int64) (*model.Admin, error)

func (f validatorFunc) ValidateSession(ctx context.Context, sessionID int64) (*model.Admin, error) {
	return f(ctx, sessionID)
}

var _ = Describe("RequireAdminSession", func() {
	var (
		router   *gin.Engine
		seen     *model.Admin
		fields   logger.LogFields
		validate validatorFunc
	)

	BeforeEach(func() {
		seen = nil
		fields = logger.LogFields{}
		validate = func(_ context.Context, sessionID int64) (*model.Admin, error) {
			if sessionID == 42 {
				return &model.Admin{ID: 7}, nil
			}
			return nil, service.ErrSessionExpired
		}

		router = gin.New()
		router.GET("/private", middleware.RequireAdminSession(validatorFunc(func(ctx context.Context, id int64) (*model.Admin, error) {
			return validate(ctx, id)
		})), func(c *gin.Context) {
			seen = middleware.Admin(c)
			fields = logger.GetLogFields(c.Request.Context())
			c.Status(http.StatusOK)
		})
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("accepts the session cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "42"})

		Expect(serve(req).Code).To(Equal(http.StatusOK))
		Expect(seen.ID).To(Equal(int64(7)))
		Expect(fields.AdminID).NotTo(BeNil())
		Expect(*fields.AdminID).To(Equal(int64(7)))
	})

	It("falls back to the session header", func() {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(middleware.SessionIDHeader, "42")

		Expect(serve(req).Code).To(Equal(http.StatusOK))
	})

	It("rejects a missing or malformed session", func() {
		Expect(serve(httptest.NewRequest(http.MethodGet, "/private", nil)).Code).To(Equal(http.StatusUnauthorized))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(middleware.SessionIDHeader, "abc")
		Expect(serve(req).Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects an expired session", func() {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(middleware.SessionIDHeader, "13")

		Expect(serve(req).Code).To(Equal(http.StatusUnauthorized))
		Expect(seen).To(BeNil())
	})

	It("returns 500 when the lookup fails", func() {
		validate = func(context.Context, int64) (*model.Admin, error) {
			return nil, errors.New("connection refused")
		}
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set(middleware.SessionIDHeader, "42")

		Expect(serve(req).Code).To(Equal(http.StatusInternalServerError))
	})
})

var _ = Describe("RequestLogger", func() {
	var (
		router *gin.Engine
		fields logger.LogFields
	)

	BeforeEach(func() {
		router = gin.New()
		router.Use(middleware.RequestLogger())
		router.GET("/ping", func(c *gin.Context) {
			fields = logger.GetLogFields(c.Request.Context())
			c.Status(http.StatusOK)
		})
	})

	It("keeps an inbound request id", func() {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-123"))
		Expect(*fields.RequestID).To(Equal("req-123"))
		Expect(fields.Component).To(Equal("portal.http"))
	})

	It("generates a request id when none is sent", func() {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Header().Get(middleware.RequestIDHeader)).To(HaveLen(36))
		Expect(*fields.RequestID).To(Equal(w.Header().Get(middleware.RequestIDHeader)))
	})
})

var _ = Describe("Recovery", func() {
	It("turns a panic into a 500", func() {
		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/boom", func(*gin.Context) {
			panic("boom")
		})

		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))
	})
})
