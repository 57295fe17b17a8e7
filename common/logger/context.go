package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are added to every log record written with a context that carries
// them. Handlers and services enrich the context once; downstream calls log
// without repeating ids.
type LogFields struct {
	ClientID  *int64  // Onboarding client
	AdminID   *int64  // Portal admin
	LinkID    *int64  // Onboarding link
	Platform  *string // meta, google, tiktok, shopify
	Side      *string // OAuth side: client or admin
	RequestID *string // X-Request-ID of the inbound request
	Component string  // e.g. "portal.platform.discovery"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, newer non-nil/non-empty values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.ClientID != nil {
		result.ClientID = new.ClientID
	}
	if new.AdminID != nil {
		result.AdminID = new.AdminID
	}
	if new.LinkID != nil {
		result.LinkID = new.LinkID
	}
	if new.Platform != nil {
		result.Platform = new.Platform
	}
	if new.Side != nil {
		result.Side = new.Side
	}
	if new.RequestID != nil {
		result.RequestID = new.RequestID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr returns a pointer to v, for inline LogFields literals.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
// Used for provider response bodies in logs and errors.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
