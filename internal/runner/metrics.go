package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrMetricsRegistration indicates a collector could not be registered.
var ErrMetricsRegistration = errors.New("runner: metric registration failed")

const namespace = "fydkg"

// Metrics records Prometheus metrics for key generation runs. A nil
// *Metrics records nothing.
type Metrics struct {
	runsTotal     *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	messagesTotal *prometheus.CounterVec
	messageBytes  *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Key generation runs by result.",
			},
			[]string{"result"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "phase_failures_total",
				Help:      "Failed phases by phase and reason.",
			},
			[]string{"phase", "reason"},
		),
		messagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_total",
				Help:      "Encoded protocol messages by type.",
			},
			[]string{"type"},
		),
		messageBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "message_bytes_total",
				Help:      "Encoded protocol message bytes by type.",
			},
			[]string{"type"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "phase_duration_seconds",
				Help:      "Wall time of each phase across all parties.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"phase"},
		),
	}

	for _, c := range []prometheus.Collector{m.runsTotal, m.failuresTotal, m.messagesTotal, m.messageBytes, m.phaseDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMetricsRegistration, err)
		}
	}
	return m, nil
}

func (m *Metrics) observePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (m *Metrics) recordFailure(phase, reason string) {
	if m == nil {
		return
	}
	m.failuresTotal.WithLabelValues(phase, reason).Inc()
}

func (m *Metrics) recordMessage(msgType string, size int) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(msgType).Inc()
	m.messageBytes.WithLabelValues(msgType).Add(float64(size))
}

func (m *Metrics) recordRun(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.runsTotal.WithLabelValues(result).Inc()
}
