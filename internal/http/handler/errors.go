package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/internal/service"
	"onboardly.app/portal/internal/service/platform"
)

type apiError struct {
	status  int
	code    string
	message string
}

var knownErrors = []struct {
	target error
	apiError
}{
	{service.ErrLinkNotFound, apiError{http.StatusNotFound, "link_not_found", "Onboarding link not found"}},
	{service.ErrLinkExpired, apiError{http.StatusGone, "link_expired", "This onboarding link has expired"}},
	{service.ErrLinkCompleted, apiError{http.StatusGone, "link_completed", "This onboarding link has already been completed"}},
	{service.ErrLinkRevoked, apiError{http.StatusGone, "link_revoked", "This onboarding link has been revoked"}},
	{service.ErrInvalidLink, apiError{http.StatusBadRequest, "invalid_link_request", ""}},
	{service.ErrPlatformNotRequested, apiError{http.StatusBadRequest, "platform_not_requested", "This platform was not requested"}},
	{service.ErrConnectionNotFound, apiError{http.StatusNotFound, "connection_not_found", "No active connection for this platform"}},
	{service.ErrClientNotFound, apiError{http.StatusNotFound, "client_not_found", "Client not found"}},
	{service.ErrAssetNotDiscovered, apiError{http.StatusBadRequest, "asset_not_discovered", ""}},
	{service.ErrNothingSubmitted, apiError{http.StatusBadRequest, "nothing_submitted", "No platforms submitted"}},
	{service.ErrStateInvalid, apiError{http.StatusBadRequest, "invalid_state", "The connection attempt expired, please try again"}},
	{platform.ErrUnsupportedPlatform, apiError{http.StatusBadRequest, "unsupported_platform", "Unsupported platform"}},
	{platform.ErrPlatformDisabled, apiError{http.StatusBadRequest, "platform_disabled", "This platform is not available"}},
	{platform.ErrInvalidShop, apiError{http.StatusBadRequest, "invalid_shop", "Enter a valid myshopify.com store domain"}},
}

// classify maps a service error to its API shape. Unknown errors are 500s.
func classify(err error) apiError {
	for _, k := range knownErrors {
		if errors.Is(err, k.target) {
			e := k.apiError
			if e.message == "" {
				e.message = err.Error()
			}
			return e
		}
	}

	var exchangeErr *platform.TokenExchangeError
	if errors.As(err, &exchangeErr) {
		return apiError{http.StatusBadGateway, "token_exchange_failed", "The platform rejected the authorization"}
	}
	var identityErr *platform.IdentityFetchError
	if errors.As(err, &identityErr) {
		return apiError{http.StatusBadGateway, "identity_fetch_failed", "Could not read the connected account"}
	}

	return apiError{http.StatusInternalServerError, "internal_error", "Something went wrong"}
}

func respondError(c *gin.Context, err error, msg string) {
	e := classify(err)
	if e.status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), msg, "error", err)
		c.JSON(e.status, gin.H{"error": msg, "code": e.code})
		return
	}
	slog.WarnContext(c.Request.Context(), msg, "error", err)
	c.JSON(e.status, gin.H{"error": e.message, "code": e.code})
}
