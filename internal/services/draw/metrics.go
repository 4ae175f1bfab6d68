package draw

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Draw outcomes recorded in leela_draws_total
const (
	OutcomeDrawn       = "drawn"
	OutcomeBypass      = "bypass"
	OutcomeLocked      = "locked"
	OutcomeInProgress  = "in_progress"
	OutcomeUnavailable = "unavailable"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
)

// Metrics holds the draw controller's Prometheus collectors
type Metrics struct {
	draws      *prometheus.CounterVec
	countdowns prometheus.Gauge
	historyHit prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which tests use to avoid clashes.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		draws: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leela_draws_total",
				Help: "Draw attempts by outcome.",
			},
			[]string{"outcome"},
		),
		countdowns: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "leela_countdowns_active",
				Help: "Countdown streams currently running.",
			},
		),
		historyHit: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "leela_history_moves_total",
				Help: "Draws whose quote was moved off a recently shown one.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.draws, m.countdowns, m.historyHit)
	}
	return m
}

func (m *Metrics) observe(outcome string) {
	m.draws.WithLabelValues(outcome).Inc()
}
