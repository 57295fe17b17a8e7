package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/dto"
	"onboardly.app/portal/internal/model"
)

// PlatformLister reports the platforms with configured credentials.
type PlatformLister interface {
	Enabled() []model.Platform
}

type PlatformHandler struct {
	platforms PlatformLister
}

func NewPlatformHandler(platforms PlatformLister) *PlatformHandler {
	return &PlatformHandler{platforms: platforms}
}

func (h *PlatformHandler) List(c *gin.Context) {
	enabled := h.platforms.Enabled()
	resp := dto.PlatformsResponse{Platforms: make([]dto.PlatformInfo, len(enabled))}
	for i, p := range enabled {
		resp.Platforms[i] = dto.PlatformInfo{ID: p, Name: p.DisplayName()}
	}
	c.JSON(http.StatusOK, resp)
}
