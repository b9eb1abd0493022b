package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncSubmission(OutcomeSubmitted)
	m.IncSubmission(OutcomeSubmitted)
	m.IncSubmission(OutcomeNotificationFailed)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeSubmitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeNotificationFailed)))

	m.IncPublish("rabbitmq", nil)
	m.IncPublish("rabbitmq", errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Publishes.WithLabelValues("rabbitmq", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Publishes.WithLabelValues("rabbitmq", "error")))

	m.ObserveStage("persist", 5*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.StageLatency))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncSubmission(OutcomeSubmitted)
		m.ObserveStage("validate", time.Millisecond)
		m.IncPublish("memory", nil)
		m.IncRelayed("sent")
		m.ObserveHTTP("GET", "/health", "200", time.Millisecond)
	})
}
