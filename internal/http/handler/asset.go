package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/dto"
	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

type AssetHandler struct {
	assetService service.AssetService
}

func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// List serves GET /api/platforms/assets?platform=&clientId=&refresh=.
func (h *AssetHandler) List(c *gin.Context) {
	p, err := model.ParsePlatform(c.Query("platform"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "platform is required", "code": "unsupported_platform"})
		return
	}
	clientID, ok := parseID(c.Query("clientId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientId is required", "code": "invalid_request"})
		return
	}
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	assets, err := h.assetService.List(c.Request.Context(), middleware.Admin(c).ID, clientID, p, refresh)
	if err != nil {
		respondError(c, err, "failed to list assets")
		return
	}

	c.JSON(http.StatusOK, dto.AssetsResponse{Platform: p, ClientID: clientID, Assets: assets})
}
