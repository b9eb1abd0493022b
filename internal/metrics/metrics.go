package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes
const (
	OutcomeSubmitted          = "submitted"
	OutcomeValidationFailed   = "validation_failed"
	OutcomePersistFailed      = "persist_failed"
	OutcomeNotificationFailed = "notification_failed"
)

// Metrics provides observability for claim submission and event delivery.
type Metrics struct {
	// Submissions by outcome
	Submissions *prometheus.CounterVec

	// Time spent in each submission stage
	StageLatency *prometheus.HistogramVec

	// Publish attempts by backend and result
	Publishes *prometheus.CounterVec

	// Outbox entries handled by the relay, by resulting state
	Relayed *prometheus.CounterVec

	// Requests served, by route and status code
	HTTPRequests *prometheus.CounterVec

	HTTPLatency *prometheus.HistogramVec
}

// New registers every claims service metric on reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_submissions_total",
			Help: "Claim submissions by outcome",
		}, []string{"outcome"}),

		StageLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "claims_submission_stage_duration_seconds",
			Help:    "Duration of each claim submission stage",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"stage"}), // validate, persist, publish

		Publishes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_event_publishes_total",
			Help: "Claim event publish attempts by backend and result",
		}, []string{"backend", "result"}),

		Relayed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_outbox_relayed_total",
			Help: "Outbox notifications handled by the relay by resulting state",
		}, []string{"state"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "claims_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// NewRegistry returns a registry carrying the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (m *Metrics) IncSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncPublish records one publish attempt
func (m *Metrics) IncPublish(backend string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Publishes.WithLabelValues(backend, result).Inc()
}

func (m *Metrics) IncRelayed(state string) {
	if m != nil {
		m.Relayed.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, status).Inc()
		m.HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
	}
}
