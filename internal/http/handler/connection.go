package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/dto"
	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

// ConnectionHandler manages the signed-in admin's own platform connections.
type ConnectionHandler struct {
	connService service.ConnectionService
}

func NewConnectionHandler(connService service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connService: connService}
}

func (h *ConnectionHandler) List(c *gin.Context) {
	conns, err := h.connService.List(c.Request.Context(), model.AdminSubject(middleware.Admin(c).ID))
	if err != nil {
		respondError(c, err, "failed to list connections")
		return
	}
	c.JSON(http.StatusOK, dto.ListConnectionsResponse{Connections: dto.ToConnectionResponses(conns)})
}

func (h *ConnectionHandler) Deactivate(c *gin.Context) {
	p, err := model.ParsePlatform(c.Param("platform"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "unsupported_platform"})
		return
	}

	if err := h.connService.Deactivate(c.Request.Context(), model.AdminSubject(middleware.Admin(c).ID), p); err != nil {
		respondError(c, err, "failed to deactivate connection")
		return
	}
	c.Status(http.StatusNoContent)
}
