package router

import (
	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/handler"
)

// OAuthRouter registers the connect routes. Each route both starts the flow
// and receives the provider callback, so the registered redirect URI is the
// same URL the browser is first sent to.
func OAuthRouter(rg *gin.RouterGroup, h *handler.OAuthHandler, requireAdmin gin.HandlerFunc) {
	rg.GET("/client/connect/:platform", h.ClientConnect)
	rg.GET("/admin/connect/:platform", requireAdmin, h.AdminConnect)
}
