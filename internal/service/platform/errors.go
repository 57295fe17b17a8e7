package platform

import (
	"errors"
	"fmt"

	"onboardly.app/portal/internal/model"
)

var (
	ErrUnsupportedPlatform = errors.New("platform not supported")
	ErrPlatformDisabled    = errors.New("platform not configured")
	ErrInvalidShop         = errors.New("invalid shopify shop domain")
)

// TokenExchangeError is returned when a provider rejects or fails an
// authorization code exchange. StatusCode is 0 for transport failures.
type TokenExchangeError struct {
	Platform   model.Platform
	StatusCode int
	Body       string
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s token exchange failed: %v", e.Platform, e.Err)
	}
	return fmt.Sprintf("%s token exchange failed: status %d: %s", e.Platform, e.StatusCode, e.Body)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// IdentityFetchError is returned when the user profile lookup after a
// successful exchange fails.
type IdentityFetchError struct {
	Platform   model.Platform
	StatusCode int
	Body       string
	Err        error
}

func (e *IdentityFetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s identity fetch failed: %v", e.Platform, e.Err)
	}
	return fmt.Sprintf("%s identity fetch failed: status %d: %s", e.Platform, e.StatusCode, e.Body)
}

func (e *IdentityFetchError) Unwrap() error {
	return e.Err
}

// statusError is a non-2xx answer from a provider API.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func identityError(platform model.Platform, err error) *IdentityFetchError {
	ie := &IdentityFetchError{Platform: platform, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		ie.StatusCode = se.StatusCode
		ie.Body = se.Body
	}
	return ie
}
