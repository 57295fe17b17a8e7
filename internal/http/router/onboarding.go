package router

import (
	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/handler"
)

// OnboardingRouter registers the public client onboarding routes.
func OnboardingRouter(rg *gin.RouterGroup, h *handler.OnboardingHandler) {
	rg.GET("/links/:token", h.GetLink)
	rg.POST("/submit", h.Submit)
}
