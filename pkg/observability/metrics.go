package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultInvalid  = "invalid"
)

// Metrics records simulation counters and histograms.
type Metrics struct {
	Simulations *prometheus.CounterVec
	Copies      *prometheus.HistogramVec
	Duration    *prometheus.HistogramVec
	Loads       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nfasim_simulations_total",
				Help: "Total number of simulated inputs by outcome",
			},
			[]string{"automaton", "result"},
		),
		Copies: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nfasim_max_copies",
				Help:    "Maximum number of simultaneously active states per simulation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"automaton"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "nfasim_simulation_duration_seconds",
				Help: "Duration of simulations",
			},
			[]string{"automaton"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nfasim_definition_loads_total",
				Help: "Total number of definitions compiled into the engine cache",
			},
			[]string{"automaton"},
		),
	}

	for _, c := range []prometheus.Collector{m.Simulations, m.Copies, m.Duration, m.Loads} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSimulationEnd: func(_ context.Context, e *domain.SimulationEvent) {
			if e.Verdict == nil {
				return
			}
			m.Simulations.WithLabelValues(e.Automaton, Result(*e.Verdict)).Inc()
			m.Duration.WithLabelValues(e.Automaton).Observe(e.Duration.Seconds())
			if e.Verdict.Error == "" {
				m.Copies.WithLabelValues(e.Automaton).Observe(float64(e.Verdict.MaxCopies))
			}
		},
		OnDefinitionLoad: func(_ context.Context, e *domain.LoadEvent) {
			m.Loads.WithLabelValues(e.Automaton).Inc()
		},
	}
}

// Result classifies a verdict for the result label.
func Result(v domain.Verdict) string {
	switch {
	case v.Error != "":
		return ResultInvalid
	case v.Accepted:
		return ResultAccepted
	default:
		return ResultRejected
	}
}
