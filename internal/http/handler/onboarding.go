package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/common/logger"
	"onboardly.app/portal/internal/http/dto"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

// OnboardingHandler serves the public client onboarding page. The link token
// is the only credential.
type OnboardingHandler struct {
	linkService       service.LinkService
	connService       service.ConnectionService
	submissionService service.SubmissionService
}

func NewOnboardingHandler(
	linkService service.LinkService,
	connService service.ConnectionService,
	submissionService service.SubmissionService,
) *OnboardingHandler {
	return &OnboardingHandler{
		linkService:       linkService,
		connService:       connService,
		submissionService: submissionService,
	}
}

func (h *OnboardingHandler) GetLink(c *gin.Context) {
	ctx := c.Request.Context()

	link, err := h.linkService.Validate(ctx, c.Param("token"))
	if err != nil {
		respondError(c, err, "failed to load onboarding link")
		return
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{LinkID: &link.ID, ClientID: &link.ClientID})

	conns, err := h.connService.List(ctx, model.ClientSubject(link.ClientID))
	if err != nil {
		respondError(c, err, "failed to list client connections")
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicLinkResponse(link, conns))
}

func (h *OnboardingHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: token is required", "code": "invalid_request"})
		return
	}

	grants, err := req.Grants()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "unsupported_platform"})
		return
	}

	onboardingReq, err := h.submissionService.Submit(c.Request.Context(), req.Token, grants)
	if err != nil {
		respondError(c, err, "failed to submit onboarding")
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitResponse{
		RequestID: onboardingReq.ID,
		Status:    string(model.LinkStatusCompleted),
	})
}
