package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/hollow/pkg/domain"
)

// Metrics holds the collectors fed by the engine hooks.
type Metrics struct {
	SceneEntries   *prometheus.CounterVec
	DialogsStarted *prometheus.CounterVec
	PuzzleAttempts *prometheus.CounterVec
	GameOvers      *prometheus.CounterVec
	ActiveDialogs  prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on reg.
// A *prometheus.Registry is also used as the gatherer for Handler.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		SceneEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hollow_scene_entries_total",
				Help: "Total number of scene entries",
			},
			[]string{"scene_id"},
		),
		DialogsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hollow_dialogs_started_total",
				Help: "Total number of dialogs opened",
			},
			[]string{"dialog_id"},
		),
		PuzzleAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hollow_puzzle_attempts_total",
				Help: "Total number of puzzle submissions by outcome",
			},
			[]string{"puzzle_id", "type", "correct"},
		),
		GameOvers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hollow_game_overs_total",
				Help: "Total number of ended playthroughs by reason",
			},
			[]string{"reason"},
		),
		ActiveDialogs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hollow_active_dialogs",
			Help: "Dialogs currently open",
		}),
	}

	for _, c := range []prometheus.Collector{m.SceneEntries, m.DialogsStarted, m.PuzzleAttempts, m.GameOvers, m.ActiveDialogs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(_ context.Context, e *domain.SceneEvent) {
			m.SceneEntries.WithLabelValues(e.SceneID).Inc()
		},
		OnDialogStart: func(_ context.Context, e *domain.DialogEvent) {
			m.DialogsStarted.WithLabelValues(e.DialogID).Inc()
			m.ActiveDialogs.Inc()
		},
		OnDialogEnd: func(_ context.Context, _ *domain.DialogEvent) {
			m.ActiveDialogs.Dec()
		},
		OnPuzzleAttempt: func(_ context.Context, e *domain.PuzzleEvent) {
			m.PuzzleAttempts.WithLabelValues(e.PuzzleID, string(e.PuzzleType), strconv.FormatBool(e.Correct)).Inc()
		},
		OnGameOver: func(_ context.Context, e *domain.GameOverEvent) {
			m.GameOvers.WithLabelValues(e.Reason).Inc()
		},
	}
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
