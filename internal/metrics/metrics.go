package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for skyview
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Polling Metrics
	PollFetchesTotal   *prometheus.CounterVec
	PollFetchDuration  *prometheus.HistogramVec
	PollStaleDiscarded *prometheus.CounterVec

	// Map Metrics
	MarkersActive *prometheus.GaugeVec
	ViewsActive   prometheus.Gauge

	// Business Metrics
	ChatRequestsTotal  *prometheus.CounterVec
	SearchesTotal      prometheus.Counter
	HistoryWritesTotal *prometheus.CounterVec
}

// NewMetricsRegistry registers every metric on reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyview_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skyview_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skyview_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Polling Metrics
		PollFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyview_poll_fetches_total",
				Help: "Backend fetches issued by the pollers, by kind and result",
			},
			[]string{"kind", "result"},
		),
		PollFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skyview_poll_fetch_duration_seconds",
				Help:    "Backend fetch latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"kind"},
		),
		PollStaleDiscarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyview_poll_stale_responses_total",
				Help: "Responses discarded because a newer one was already published",
			},
			[]string{"kind"},
		),

		// Map Metrics
		MarkersActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skyview_markers_active",
				Help: "Markers currently on mounted map surfaces",
			},
			[]string{"kind"},
		),
		ViewsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "skyview_views_active",
				Help: "Currently mounted map views",
			},
		),

		// Business Metrics
		ChatRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyview_chat_requests_total",
				Help: "Chat messages forwarded to the backend, by result",
			},
			[]string{"result"},
		),
		SearchesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "skyview_searches_total",
				Help: "Searches executed",
			},
		),
		HistoryWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyview_history_writes_total",
				Help: "Fire-and-forget history writes, by record type and result",
			},
			[]string{"record", "result"},
		),
	}
}
