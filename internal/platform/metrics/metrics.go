package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PapersCreated   prometheus.Counter
	Transitions     *prometheus.CounterVec
	AuthzDenials    *prometheus.CounterVec
	RequestLatency  *prometheus.HistogramVec
	PendingCacheHit *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PapersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paperflow_papers_created_total",
			Help: "Total number of papers created",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paperflow_transitions_total",
			Help: "Lifecycle transitions by event and outcome",
		}, []string{"event", "outcome"}),
		AuthzDenials: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paperflow_authz_denials_total",
			Help: "Authorization denials by operation",
		}, []string{"operation"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paperflow_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		PendingCacheHit: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "paperflow_pending_cache_requests_total",
			Help: "Pending-approvals cache lookups by result",
		}, []string{"result"}),
	}
}

// IncrementPapersCreated increments the papers created counter by 1.
func (m *Metrics) IncrementPapersCreated() {
	if m == nil {
		return
	}
	m.PapersCreated.Inc()
}

// ObserveTransition records a lifecycle transition attempt.
func (m *Metrics) ObserveTransition(event, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(event, outcome).Inc()
}

// IncrementAuthzDenial records an authorization denial.
func (m *Metrics) IncrementAuthzDenial(operation string) {
	if m == nil {
		return
	}
	m.AuthzDenials.WithLabelValues(operation).Inc()
}

// ObserveRequest records request latency.
func (m *Metrics) ObserveRequest(route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(route, status).Observe(elapsed.Seconds())
}

// ObservePendingCache records a cache lookup result ("hit" or "miss").
func (m *Metrics) ObservePendingCache(result string) {
	if m == nil {
		return
	}
	m.PendingCacheHit.WithLabelValues(result).Inc()
}
