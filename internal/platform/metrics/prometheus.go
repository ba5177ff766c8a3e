package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the Prometheus collectors of the API process.
// All recording methods are safe on a nil receiver so metrics can be disabled.
type MetricsManager struct {
	Registry              *prometheus.Registry
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestLatency    *prometheus.HistogramVec
	AssetsStoredTotal     *prometheus.CounterVec
	AssetCleanupFailures  *prometheus.CounterVec
	CategoryReplacements  *prometheus.CounterVec
	InquiriesCreatedTotal prometheus.Counter
}

// NewMetricsManager initializes and registers the collectors under namespace.
func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	httpRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	assetsStoredTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assets_stored_total",
		Help:      "Total number of uploaded files written to the asset store by kind.",
	}, []string{"kind"})

	assetCleanupFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_cleanup_failures_total",
		Help:      "Best-effort file removals that failed, by reason.",
	}, []string{"reason"})

	categoryReplacements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gallery_category_replacements_total",
		Help:      "Gallery images evicted from a single-image category.",
	}, []string{"category"})

	inquiriesCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiries_created_total",
		Help:      "Total number of contact-form inquiries stored.",
	})

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestLatency,
		assetsStoredTotal,
		assetCleanupFailures,
		categoryReplacements,
		inquiriesCreatedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:              registry,
		HTTPRequestsTotal:     httpRequestsTotal,
		HTTPRequestLatency:    httpRequestLatency,
		AssetsStoredTotal:     assetsStoredTotal,
		AssetCleanupFailures:  assetCleanupFailures,
		CategoryReplacements:  categoryReplacements,
		InquiriesCreatedTotal: inquiriesCreatedTotal,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *MetricsManager) ObserveHTTP(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestLatency.WithLabelValues(route, method).Observe(seconds)
}

func (m *MetricsManager) AssetStored(kind string) {
	if m == nil {
		return
	}
	m.AssetsStoredTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsManager) AssetCleanupFailed(reason string) {
	if m == nil {
		return
	}
	m.AssetCleanupFailures.WithLabelValues(reason).Inc()
}

func (m *MetricsManager) CategoryReplaced(category string) {
	if m == nil {
		return
	}
	m.CategoryReplacements.WithLabelValues(category).Inc()
}

func (m *MetricsManager) InquiryCreated() {
	if m == nil {
		return
	}
	m.InquiriesCreatedTotal.Inc()
}
