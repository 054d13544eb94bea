package observability

import (
	"context"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "superdense"

// Outcome label values of superdense_runs_completed_total.
const (
	OutcomeSuccess = "success"
	OutcomeFault   = "fault"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	RunsStarted        prometheus.Counter
	RunsCompleted      *prometheus.CounterVec
	PhaseEntered       *prometheus.CounterVec
	ValidationFailures prometheus.Counter
	RunDuration        prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil registerer skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RunsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Total number of simulation runs started",
		}),
		RunsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Total number of simulation runs completed, by outcome",
		}, []string{"outcome"}),
		PhaseEntered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_entered_total",
			Help:      "Total number of protocol phases entered",
		}, []string{"phase"}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of starts rejected for incomplete bits",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time from start to completion of a run",
			Buckets:   []float64{0.001, 0.01, 0.1, 1, 4, 8, 10, 15, 30},
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.RunsStarted, m.RunsCompleted, m.PhaseEntered, m.ValidationFailures, m.RunDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.Event) {
			m.RunsStarted.Inc()
		},
		OnPhaseEnter: func(ctx context.Context, e *domain.Event) {
			m.PhaseEntered.WithLabelValues(e.Phase.String()).Inc()
		},
		OnRunComplete: func(ctx context.Context, e *domain.Event) {
			outcome := OutcomeSuccess
			if e.State != nil && e.State.Failure != nil {
				outcome = OutcomeFault
			}
			m.RunsCompleted.WithLabelValues(outcome).Inc()
			if e.State != nil && !e.State.StartedAt.IsZero() {
				m.RunDuration.Observe(e.Timestamp.Sub(e.State.StartedAt).Seconds())
			}
		},
		OnValidationFailed: func(ctx context.Context, e *domain.Event) {
			m.ValidationFailures.Inc()
		},
	}
}
