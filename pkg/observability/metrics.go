package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pinionworks/pinion"
)

// Metrics records machine lifecycle events into Prometheus collectors.
type Metrics struct {
	steps    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinion_steps_total",
				Help: "Total number of completed state executions",
			},
			[]string{"machine", "state"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinion_failures_total",
				Help: "Total number of failed state executions",
			},
			[]string{"machine", "state"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "pinion_step_duration_seconds",
				Help: "Duration of state executions",
			},
			[]string{"machine", "state"},
		),
	}

	reg.MustRegister(m.steps, m.failures, m.duration)

	return m
}

// Hooks returns lifecycle hooks that feed the collectors. Wire them into a
// machine with pinion.WithHooks.
func (m *Metrics) Hooks() pinion.Hooks {
	return pinion.Hooks{
		OnStateLeave: func(_ context.Context, e *pinion.StepEvent) {
			m.steps.WithLabelValues(e.Machine, e.State).Inc()
			m.duration.WithLabelValues(e.Machine, e.State).Observe(e.Duration.Seconds())
		},
		OnFailure: func(_ context.Context, e *pinion.StepEvent) {
			m.failures.WithLabelValues(e.Machine, e.State).Inc()
			m.duration.WithLabelValues(e.Machine, e.State).Observe(e.Duration.Seconds())
		},
	}
}
