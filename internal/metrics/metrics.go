package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalMetrics *Metrics
	globalMu      sync.RWMutex
)

// Metrics holds all Prometheus metrics for the campaign router
type Metrics struct {
	// Routing counters
	RequestsSubmittedTotal *prometheus.CounterVec
	PlansComposedTotal     prometheus.Counter
	TicketsCreatedTotal    *prometheus.CounterVec
	TicketsFailedTotal     *prometheus.CounterVec

	// API metrics
	APIRequestsTotal          *prometheus.CounterVec
	APIRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsSubmittedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignrouter_requests_submitted_total",
				Help: "Total number of campaign requests accepted",
			},
			[]string{"campaign_type"},
		),
		PlansComposedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "campaignrouter_plans_composed_total",
				Help: "Total number of ticket plans composed",
			},
		),
		TicketsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignrouter_tickets_created_total",
				Help: "Total number of parent tickets created in the external tool",
			},
			[]string{"workflow"},
		),
		TicketsFailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignrouter_tickets_failed_total",
				Help: "Total number of parent ticket creations that failed",
			},
			[]string{"workflow"},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignrouter_api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		APIRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campaignrouter_api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.RequestsSubmittedTotal,
		m.PlansComposedTotal,
		m.TicketsCreatedTotal,
		m.TicketsFailedTotal,
		m.APIRequestsTotal,
		m.APIRequestDurationSeconds,
	)

	return m
}

// Handler returns the HTTP handler serving this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SetGlobal installs the process-wide metrics instance
func SetGlobal(m *Metrics) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalMetrics = m
}

// Global returns the process-wide metrics instance, nil when unset
func Global() *Metrics {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalMetrics
}
