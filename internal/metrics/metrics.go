package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the portal's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	// HTTPRequestsTotal counts HTTP requests by route, method and status
	HTTPRequestsTotal *prometheus.CounterVec
	// RequestLatency tracks HTTP request latency by route, method and status
	RequestLatency *prometheus.HistogramVec
	// HTTPRequestsInFlight is the number of requests being served
	HTTPRequestsInFlight prometheus.Gauge
	// OAuthCallbacks counts completed OAuth callbacks by platform, side and outcome
	OAuthCallbacks *prometheus.CounterVec
	// TokenExchanges counts code-for-token exchanges by platform and outcome
	TokenExchanges *prometheus.CounterVec
	// DiscoveryCalls counts discovery sub-API calls by platform, category and outcome
	DiscoveryCalls *prometheus.CounterVec
	// DiscoveredAssets counts assets returned by discovery by platform and type
	DiscoveredAssets *prometheus.CounterVec
	// ConnectionUpserts counts connection writes by subject kind and outcome
	ConnectionUpserts *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"endpoint", "method", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_latency_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"endpoint", "method", "status"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		OAuthCallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "oauth_callbacks_total",
				Help:      "Total number of OAuth callbacks handled",
			},
			[]string{"platform", "side", "outcome"},
		),
		TokenExchanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_exchanges_total",
				Help:      "Total number of authorization code exchanges",
			},
			[]string{"platform", "outcome"},
		),
		DiscoveryCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discovery_calls_total",
				Help:      "Total number of asset discovery sub-API calls",
			},
			[]string{"platform", "category", "outcome"},
		),
		DiscoveredAssets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discovered_assets_total",
				Help:      "Total number of assets returned by discovery",
			},
			[]string{"platform", "type"},
		),
		ConnectionUpserts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connection_upserts_total",
				Help:      "Total number of platform connection upserts",
			},
			[]string{"subject", "outcome"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.RequestLatency,
		m.HTTPRequestsInFlight,
		m.OAuthCallbacks,
		m.TokenExchanges,
		m.DiscoveryCalls,
		m.DiscoveredAssets,
		m.ConnectionUpserts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler returns a Prometheus handler for these metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordHTTPRequest(endpoint, method, status string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	m.RequestLatency.WithLabelValues(endpoint, method, status).Observe(durationSeconds)
}

func (m *Metrics) IncHTTPRequestsInFlight() {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Inc()
}

func (m *Metrics) DecHTTPRequestsInFlight() {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Dec()
}

func (m *Metrics) RecordOAuthCallback(platform, side, outcome string) {
	if m == nil {
		return
	}
	m.OAuthCallbacks.WithLabelValues(platform, side, outcome).Inc()
}

func (m *Metrics) RecordTokenExchange(platform, outcome string) {
	if m == nil {
		return
	}
	m.TokenExchanges.WithLabelValues(platform, outcome).Inc()
}

func (m *Metrics) RecordDiscoveryCall(platform, category, outcome string) {
	if m == nil {
		return
	}
	m.DiscoveryCalls.WithLabelValues(platform, category, outcome).Inc()
}

func (m *Metrics) RecordDiscoveredAssets(platform, assetType string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.DiscoveredAssets.WithLabelValues(platform, assetType).Add(float64(n))
}

func (m *Metrics) RecordConnectionUpsert(subject, outcome string) {
	if m == nil {
		return
	}
	m.ConnectionUpserts.WithLabelValues(subject, outcome).Inc()
}
