package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/dto"
	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/service"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context(), middleware.Admin(c).ID)
	if err != nil {
		respondError(c, err, "failed to list clients")
		return
	}

	resp := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		resp[i] = dto.ToClientResponse(&clients[i])
	}
	c.JSON(http.StatusOK, gin.H{"clients": resp})
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	detail, err := h.clientService.Get(c.Request.Context(), middleware.Admin(c).ID, id)
	if err != nil {
		respondError(c, err, "failed to get client")
		return
	}

	resp := dto.ClientDetailResponse{
		ClientResponse: dto.ToClientResponse(detail.Client),
		Connections:    dto.ToConnectionResponses(detail.Connections),
		Requests:       make([]dto.RequestResponse, len(detail.Requests)),
	}
	for i := range detail.Requests {
		resp.Requests[i] = dto.ToRequestResponse(&detail.Requests[i])
	}
	c.JSON(http.StatusOK, resp)
}
