package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/dto"
	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

// LinkHandler serves the admin side of onboarding links. Every route runs
// behind RequireAdminSession.
type LinkHandler struct {
	linkService service.LinkService
}

func NewLinkHandler(linkService service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

func (h *LinkHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	admin := middleware.Admin(c)

	var req dto.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error(), "code": "invalid_request"})
		return
	}

	params := service.CreateLinkParams{
		ClientName:           req.ClientName,
		ClientEmail:          req.ClientEmail,
		ExpiresInDays:        req.ExpiresInDays,
		RequestedPermissions: make(map[model.Platform][]string, len(req.RequestedPermissions)),
	}
	for _, name := range req.Platforms {
		params.Platforms = append(params.Platforms, model.Platform(name))
	}
	for name, scopes := range req.RequestedPermissions {
		params.RequestedPermissions[model.Platform(name)] = scopes
	}

	link, url, err := h.linkService.Create(ctx, admin.ID, params)
	if err != nil {
		respondError(c, err, "failed to create onboarding link")
		return
	}

	slog.InfoContext(ctx, "onboarding link created via admin API", "link_id", link.ID)
	c.JSON(http.StatusCreated, dto.ToLinkResponse(link, url))
}

func (h *LinkHandler) List(c *gin.Context) {
	admin := middleware.Admin(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	links, err := h.linkService.List(c.Request.Context(), admin.ID, int32(limit), int32(offset))
	if err != nil {
		respondError(c, err, "failed to list onboarding links")
		return
	}

	resp := dto.ListLinksResponse{Links: make([]dto.LinkResponse, len(links))}
	for i := range links {
		resp.Links[i] = dto.ToLinkResponse(&links[i], h.linkService.URL(links[i].Token))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LinkHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id"})
		return
	}

	link, err := h.linkService.Get(c.Request.Context(), middleware.Admin(c).ID, id)
	if err != nil {
		respondError(c, err, "failed to get onboarding link")
		return
	}
	c.JSON(http.StatusOK, dto.ToLinkResponse(link, h.linkService.URL(link.Token)))
}

func (h *LinkHandler) Revoke(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id"})
		return
	}

	link, err := h.linkService.Revoke(c.Request.Context(), middleware.Admin(c).ID, id)
	if err != nil {
		respondError(c, err, "failed to revoke onboarding link")
		return
	}
	c.JSON(http.StatusOK, dto.ToLinkResponse(link, h.linkService.URL(link.Token)))
}
