package router

import (
	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/handler"
)

func AdminRouter(rg *gin.RouterGroup, links *handler.LinkHandler, clients *handler.ClientHandler, conns *handler.ConnectionHandler) {
	rg.POST("/links", links.Create)
	rg.GET("/links", links.List)
	rg.GET("/links/:id", links.Get)
	rg.POST("/links/:id/revoke", links.Revoke)

	rg.GET("/clients", clients.List)
	rg.GET("/clients/:id", clients.Get)

	rg.GET("/connections", conns.List)
	rg.POST("/connections/:platform/deactivate", conns.Deactivate)
}
