package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/handler"
	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/metrics"
	"onboardly.app/portal/internal/service"
)

type RouterConfig struct {
	DashboardURL string
	IsProduction bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, platforms handler.PlatformLister, m *metrics.Metrics, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	authService := services.Auth()
	requireAdmin := middleware.RequireAdminSession(authService)

	authHandler := handler.NewAuthHandler(authService, cfg.DashboardURL, cfg.IsProduction)
	AuthRouter(router.Group("/auth"), authHandler, requireAdmin)

	api := router.Group("/api")

	oauthHandler := handler.NewOAuthHandler(services.OAuth(), cfg.DashboardURL)
	OAuthRouter(api.Group("/oauth"), oauthHandler, requireAdmin)

	onboardingHandler := handler.NewOnboardingHandler(services.Links(), services.Connections(), services.Submissions())
	OnboardingRouter(api.Group("/onboarding"), onboardingHandler)

	platformGroup := api.Group("/platforms")
	platformGroup.GET("", handler.NewPlatformHandler(platforms).List)
	platformGroup.GET("/assets", requireAdmin, handler.NewAssetHandler(services.Assets()).List)

	admin := api.Group("/admin", requireAdmin)
	AdminRouter(
		admin,
		handler.NewLinkHandler(services.Links()),
		handler.NewClientHandler(services.Clients()),
		handler.NewConnectionHandler(services.Connections()),
	)
}
