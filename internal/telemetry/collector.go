// Package telemetry exports game activity as Prometheus metrics.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/game"
)

// Collector owns the game metrics.
type Collector struct {
	turns       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	wins        *prometheus.CounterVec
	gameTurns   *prometheus.HistogramVec
	restores    *prometheus.CounterVec
	active      prometheus.Gauge
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ladders_turns_total",
				Help: "Turns played, by outcome",
			},
			[]string{"layout", "outcome"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ladders_transitions_total",
				Help: "Snakes and ladders taken",
			},
			[]string{"layout", "kind"},
		),
		wins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ladders_games_won_total",
				Help: "Games played to a winner",
			},
			[]string{"layout"},
		),
		gameTurns: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ladders_game_turns",
				Help:    "Turns needed to finish a game",
				Buckets: []float64{10, 20, 30, 50, 75, 100, 150, 250},
			},
			[]string{"layout"},
		),
		restores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ladders_sessions_restored_total",
				Help: "Sessions resumed from a saved snapshot",
			},
			[]string{"layout"},
		),
		active: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ladders_active_sessions",
				Help: "Sessions currently being played",
			},
		),
	}

	for _, m := range []prometheus.Collector{c.turns, c.transitions, c.wins, c.gameTurns, c.restores, c.active} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("telemetry: register metric: %w", err)
		}
	}
	return c, nil
}

// Track returns a subscriber that counts events for sessions on layout.
func (c *Collector) Track(layout string) game.Subscriber {
	return &tracker{c: c, layout: layout}
}

// SessionStarted increments the active sessions gauge.
func (c *Collector) SessionStarted() {
	c.active.Inc()
}

// SessionEnded decrements the active sessions gauge.
func (c *Collector) SessionEnded() {
	c.active.Dec()
}

type tracker struct {
	c      *Collector
	layout string
}

func (t *tracker) Send(evt game.Event) {
	switch e := evt.(type) {
	case game.TurnPlayed:
		t.c.turns.WithLabelValues(t.layout, e.Outcome.Kind().String()).Inc()
		if e.Outcome.Transition != board.KindNone {
			t.c.transitions.WithLabelValues(t.layout, e.Outcome.Transition.String()).Inc()
		}
	case game.GameWon:
		t.c.wins.WithLabelValues(t.layout).Inc()
		t.c.gameTurns.WithLabelValues(t.layout).Observe(float64(e.Turns))
	case game.GameRestored:
		t.c.restores.WithLabelValues(t.layout).Inc()
	}
}
