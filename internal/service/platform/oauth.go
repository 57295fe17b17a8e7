package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"

	"onboardly.app/portal/common/logger"
	"onboardly.app/portal/internal/metrics"
	"onboardly.app/portal/internal/model"
)

// exchangeCode runs the authorization_code grant with client credentials in
// the form body and normalises the result.
func exchangeCode(
	ctx context.Context,
	client *http.Client,
	m *metrics.Metrics,
	platform model.Platform,
	cfg oauth2.Config,
	req ExchangeRequest,
	opts ...oauth2.AuthCodeOption,
) (*TokenResponse, error) {
	sc := logger.StartSpan(ctx, "platform.exchange_code", attribute.String("platform", string(platform)))
	defer sc.End()

	cfg.RedirectURL = req.RedirectURI
	cfg.Endpoint.AuthStyle = oauth2.AuthStyleInParams

	tok, err := cfg.Exchange(context.WithValue(sc.Context(), oauth2.HTTPClient, client), req.Code, opts...)
	if err != nil {
		m.RecordTokenExchange(string(platform), "error")
		exErr := &TokenExchangeError{Platform: platform, Err: err}
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			exErr.StatusCode = re.Response.StatusCode
			exErr.Body = logger.Truncate(string(re.Body), maxErrorBody)
		}
		sc.RecordError(exErr)
		return nil, exErr
	}

	m.RecordTokenExchange(string(platform), "success")
	return tokenFromOAuth2(tok), nil
}

func tokenFromOAuth2(tok *oauth2.Token) *TokenResponse {
	resp := &TokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		IDToken:      extraString(tok, "id_token"),
		OpenID:       extraString(tok, "open_id"),
		Scopes:       model.ParseScopes(extraString(tok, "scope")),
		ExpiresIn:    tok.ExpiresIn,
	}
	if resp.ExpiresIn == 0 && !tok.Expiry.IsZero() {
		resp.ExpiresIn = int64(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	return resp
}

func extraString(tok *oauth2.Token, key string) string {
	switch v := tok.Extra(key).(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
