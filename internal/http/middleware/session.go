package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"onboardly.app/portal/common/logger"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/service"
)

const (
	SessionCookieName = "portal_session"
	SessionIDHeader   = "X-Session-ID"

	adminContextKey = "admin"
)

// SessionValidator resolves a session id to its admin.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID int64) (*model.Admin, error)
}

// RequireAdminSession aborts with 401 unless the request carries a live admin
// session in the cookie or the X-Session-ID header.
func RequireAdminSession(auth SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		sessionID, ok := SessionID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		admin, err := auth.ValidateSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrAdminNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			slog.ErrorContext(ctx, "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		c.Set(adminContextKey, admin)
		c.Request = c.Request.WithContext(logger.WithLogFields(ctx, logger.LogFields{AdminID: &admin.ID}))
		c.Next()
	}
}

// SessionID reads the session id from the cookie, falling back to the header.
func SessionID(c *gin.Context) (int64, bool) {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		raw = c.GetHeader(SessionIDHeader)
	}
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Admin returns the admin set by RequireAdminSession.
func Admin(c *gin.Context) *model.Admin {
	v, ok := c.Get(adminContextKey)
	if !ok {
		return nil
	}
	admin, _ := v.(*model.Admin)
	return admin
}

// SetAdmin stores admin on the gin context. Used by tests that bypass the
// session lookup.
func SetAdmin(c *gin.Context, admin *model.Admin) {
	c.Set(adminContextKey, admin)
}
