package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"onboardly.app/portal/internal/http/handler"
	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

var _ = Describe("AssetHandler", func() {
	var (
		router *gin.Engine
		svc    *mockAssetService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockAssetService{}
		router.GET("/api/platforms/assets", func(c *gin.Context) {
			middleware.SetAdmin(c, &model.Admin{ID: 7})
			c.Next()
		}, handler.NewAssetHandler(svc).List)
	})

	get := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns the stored assets", func() {
		svc.listFn = func(_ context.Context, adminID, clientID int64, p model.Platform, refresh bool) ([]model.Asset, error) {
			Expect(adminID).To(Equal(int64(7)))
			Expect(clientID).To(Equal(int64(200)))
			Expect(p).To(Equal(model.PlatformMeta))
			Expect(refresh).To(BeFalse())
			return []model.Asset{{ID: "act_1", Name: "Main", Type: model.AssetTypeAdAccount}}, nil
		}

		w := get("/api/platforms/assets?platform=meta&clientId=200")

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp struct {
			Platform string        `json:"platform"`
			ClientID string        `json:"client_id"`
			Assets   []model.Asset `json:"assets"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Platform).To(Equal("meta"))
		Expect(resp.ClientID).To(Equal("200"))
		Expect(resp.Assets).To(HaveLen(1))
	})

	It("passes refresh through", func() {
		var refreshed bool
		svc.listFn = func(_ context.Context, _, _ int64, _ model.Platform, refresh bool) ([]model.Asset, error) {
			refreshed = refresh
			return nil, nil
		}

		get("/api/platforms/assets?platform=google&clientId=200&refresh=true")

		Expect(refreshed).To(BeTrue())
	})

	It("requires a platform", func() {
		Expect(get("/api/platforms/assets?clientId=200").Code).To(Equal(http.StatusBadRequest))
	})

	It("requires a client id", func() {
		Expect(get("/api/platforms/assets?platform=meta").Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 when the client has no active connection", func() {
		svc.listFn = func(context.Context, int64, int64, model.Platform, bool) ([]model.Asset, error) {
			return nil, service.ErrConnectionNotFound
		}

		Expect(get("/api/platforms/assets?platform=meta&clientId=200").Code).To(Equal(http.StatusNotFound))
	})

	It("hides internal errors", func() {
		svc.listFn = func(context.Context, int64, int64, model.Platform, bool) ([]model.Asset, error) {
			return nil, errors.New("pool exhausted")
		}

		w := get("/api/platforms/assets?platform=meta&clientId=200")

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).NotTo(ContainSubstring("pool exhausted"))
	})
})
