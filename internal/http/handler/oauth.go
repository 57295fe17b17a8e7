package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/http/middleware"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
	"onboardly.app/portal/internal/service/platform"
)

// OAuthHandler serves both halves of a platform connect on one route: without
// a code it starts the flow, with one it is the provider callback.
type OAuthHandler struct {
	oauthService service.OAuthService
	dashboardURL string
}

func NewOAuthHandler(oauthService service.OAuthService, dashboardURL string) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		dashboardURL: dashboardURL,
	}
}

// ClientConnect is public; the onboarding link token authorises it.
func (h *OAuthHandler) ClientConnect(c *gin.Context) {
	h.connect(c, model.SubjectClient)
}

// AdminConnect runs behind RequireAdminSession.
func (h *OAuthHandler) AdminConnect(c *gin.Context) {
	h.connect(c, model.SubjectAdmin)
}

func (h *OAuthHandler) connect(c *gin.Context, side model.SubjectKind) {
	ctx := c.Request.Context()
	linkToken := c.Query("token")

	p, err := model.ParsePlatform(c.Param("platform"))
	if err != nil {
		h.fail(c, side, linkToken, c.Param("platform"), fmt.Errorf("%w: %v", platform.ErrUnsupportedPlatform, err))
		return
	}

	if providerErr := c.Query("error"); providerErr != "" {
		slog.WarnContext(ctx, "provider returned an oauth error",
			"platform", p,
			"side", side,
			"error", providerErr,
			"description", c.Query("error_description"),
		)
		linkToken = h.oauthService.Cancel(ctx, side, p, c.Query("state"))
		h.redirect(c, side, linkToken, url.Values{
			"error":    {"oauth_failed"},
			"platform": {string(p)},
			"message":  {"Access was not granted"},
		})
		return
	}

	if c.Query("code") == "" {
		h.begin(c, side, p, linkToken)
		return
	}

	result, err := h.oauthService.Complete(ctx, service.CompleteParams{
		Side:     side,
		Platform: p,
		Code:     c.Query("code"),
		State:    c.Query("state"),
		Shop:     c.Query("shop"),
	})
	if err != nil {
		if result != nil {
			linkToken = result.LinkToken
		}
		h.fail(c, side, linkToken, string(p), err)
		return
	}

	slog.InfoContext(ctx, "platform connected",
		"platform", p,
		"side", side,
		"connection_id", result.Connection.ID,
		"outcome", result.Outcome,
	)
	h.redirect(c, side, result.LinkToken, url.Values{"connected": {string(p)}})
}

func (h *OAuthHandler) begin(c *gin.Context, side model.SubjectKind, p model.Platform, linkToken string) {
	params := service.BeginParams{
		Side:      side,
		Platform:  p,
		LinkToken: linkToken,
		Shop:      c.Query("shop"),
	}
	if side == model.SubjectAdmin {
		admin := middleware.Admin(c)
		if admin == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		params.AdminID = admin.ID
	}

	authURL, err := h.oauthService.Begin(c.Request.Context(), params)
	if err != nil {
		h.fail(c, side, linkToken, string(p), err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

func (h *OAuthHandler) fail(c *gin.Context, side model.SubjectKind, linkToken, platformName string, err error) {
	e := classify(err)
	if e.status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "oauth connect failed", "error", err, "platform", platformName, "side", side)
	} else {
		slog.WarnContext(c.Request.Context(), "oauth connect failed", "error", err, "platform", platformName, "side", side)
	}

	h.redirect(c, side, linkToken, url.Values{
		"error":    {"oauth_failed"},
		"code":     {e.code},
		"platform": {platformName},
		"message":  {e.message},
	})
}

// redirect sends the browser back to the onboarding page of the link, or to
// the admin connection settings.
func (h *OAuthHandler) redirect(c *gin.Context, side model.SubjectKind, linkToken string, q url.Values) {
	target := h.dashboardURL + "/settings/connections"
	if side == model.SubjectClient {
		target = h.dashboardURL + "/onboard/" + url.PathEscape(linkToken)
		if linkToken == "" {
			target = h.dashboardURL + "/onboard"
		}
	}
	c.Redirect(http.StatusFound, target+"?"+q.Encode())
}
