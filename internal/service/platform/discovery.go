package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"

	"onboardly.app/portal/common/logger"
	"onboardly.app/portal/internal/metrics"
	"onboardly.app/portal/internal/model"
)

// subAPI is one scope-gated sub-API of a platform.
type subAPI struct {
	category string
	granted  func(scopes []string) bool
	fetch    func(ctx context.Context, req DiscoveryRequest) ([]model.Asset, error)
}

func grantedAny(fragments ...string) func([]string) bool {
	return func(scopes []string) bool {
		return model.ScopesGrant(scopes, fragments...)
	}
}

type discoverer struct {
	platform model.Platform
	deps     Deps
}

func (d *discoverer) log() *slog.Logger {
	return d.deps.Logger
}

func (d *discoverer) metrics() *metrics.Metrics {
	return d.deps.Metrics
}

// run attempts every granted sub-API in order. A failing one contributes no
// assets; a panic anywhere turns the whole pass into one error asset; an
// empty result becomes one basic asset.
func (d *discoverer) run(ctx context.Context, req DiscoveryRequest, calls []subAPI) (assets []model.Asset) {
	sc := logger.StartSpan(ctx, "platform.discover_assets", attribute.String("platform", string(d.platform)))
	defer sc.End()

	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{
		Component: "portal.platform.discovery",
		Platform:  logger.Ptr(string(d.platform)),
	})

	defer func() {
		if r := recover(); r != nil {
			d.log().ErrorContext(ctx, "asset discovery panicked",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
			sc.RecordError(fmt.Errorf("discovery panic: %v", r))
			d.metrics().RecordDiscoveryCall(string(d.platform), "pass", "panic")
			assets = []model.Asset{model.ErrorAsset(d.platform)}
		}
	}()

	if budget := d.deps.Discovery.PassBudget; budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	assets = []model.Asset{}
	for _, p := range calls {
		if !p.granted(req.Scopes) {
			d.log().DebugContext(ctx, "skipping sub-API, scope not granted", "category", p.category)
			continue
		}

		d.log().DebugContext(ctx, "probing sub-API", "category", p.category)
		found, err := p.fetch(ctx, req)
		if err != nil {
			d.callFailed(ctx, p.category, err)
			continue
		}

		d.metrics().RecordDiscoveryCall(string(d.platform), p.category, "success")
		d.log().InfoContext(ctx, "sub-API returned assets", "category", p.category, "count", len(found))
		assets = append(assets, found...)
	}

	if len(assets) == 0 {
		d.log().InfoContext(ctx, "no assets discovered, falling back to basic access")
		assets = append(assets, model.BasicAsset(d.platform))
	}

	counts := map[model.AssetType]int{}
	for _, a := range assets {
		counts[a.Type]++
	}
	for t, n := range counts {
		d.metrics().RecordDiscoveredAssets(string(d.platform), string(t), n)
	}
	sc.SetAttributes(attribute.Int("assets.count", len(assets)))

	return assets
}

// callFailed logs and counts a failed sub-API call.
func (d *discoverer) callFailed(ctx context.Context, category string, err error) {
	attrs := []any{"category", category, "error", err}
	var se *statusError
	if errors.As(err, &se) {
		attrs = append(attrs, "status", se.StatusCode)
	}
	d.log().WarnContext(ctx, "sub-API failed, continuing", attrs...)
	d.metrics().RecordDiscoveryCall(string(d.platform), category, "failure")
}
