package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"onboardly.app/portal/common/logger"
	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/metrics"
)

const maxErrorBody = 2048

// Deps are shared by every provider.
type Deps struct {
	Client    *http.Client
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	Discovery config.DiscoveryConfig
}

func (d Deps) withDefaults() Deps {
	if d.Client == nil {
		d.Client = NewHTTPClient(30 * time.Second)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}

// NewHTTPClient returns the outbound client used for provider calls, traced
// with otelhttp.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// getJSON issues a GET and decodes a 2xx JSON body into out. Non-2xx answers
// are returned as *statusError.
func getJSON(ctx context.Context, client *http.Client, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &statusError{StatusCode: resp.StatusCode, Body: logger.Truncate(string(body), maxErrorBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

// joinScopes renders scopes for providers that expect a comma list.
func joinScopes(scopes []string) string {
	return strings.Join(scopes, ",")
}
