// Package metrics exposes engine counters on a dedicated Prometheus registry.
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julianstephens/plantpal/internal/constants"
)

// Outcome labels for care actions and neglect checks
const (
	OutcomeApplied  = "applied"
	OutcomeCooldown = "cooldown"
	OutcomeSkipped  = "skipped"
	OutcomeCounted  = "counted"
	OutcomeWilted   = "wilted"
	OutcomeError    = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	journalEntries   *prometheus.CounterVec
	growthPoints     prometheus.Counter
	stageTransitions *prometheus.CounterVec
	careActions      *prometheus.CounterVec
	neglectChecks    *prometheus.CounterVec
	wilts            prometheus.Counter
	moodScore        prometheus.Histogram
	plants           prometheus.Gauge
}

func New() *Metrics {
	ns := constants.AppName
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		journalEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "journal_entries_total",
			Help:      "Journal entries analyzed, by sentiment method.",
		}, []string{"method"}),
		growthPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "growth_points_total",
			Help:      "Growth points awarded across all plants.",
		}),
		stageTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "stage_transitions_total",
			Help:      "Plant stage transitions.",
		}, []string{"from", "to"}),
		careActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "care_actions_total",
			Help:      "Care actions requested, by action and outcome.",
		}, []string{"action", "outcome"}),
		neglectChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "neglect_checks_total",
			Help:      "Neglect checks, by result.",
		}, []string{"result"}),
		wilts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "wilts_total",
			Help:      "Plants forced into wilt by neglect.",
		}),
		moodScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "mood_score",
			Help:      "Distribution of unified mood scores.",
			Buckets:   []float64{0.2, 0.4, 0.6, 0.8, 1},
		}),
		plants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "plants",
			Help:      "Plants seen by the last neglect sweep.",
		}),
	}

	m.registry.MustRegister(
		m.journalEntries,
		m.growthPoints,
		m.stageTransitions,
		m.careActions,
		m.neglectChecks,
		m.wilts,
		m.moodScore,
		m.plants,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) JournalEntry(method string, score float64) {
	if m == nil {
		return
	}
	m.journalEntries.WithLabelValues(method).Inc()
	m.moodScore.Observe(score)
}

func (m *Metrics) GrowthPoints(delta int) {
	if m == nil || delta <= 0 {
		return
	}
	m.growthPoints.Add(float64(delta))
}

func (m *Metrics) StageTransition(from, to string) {
	if m == nil || from == to {
		return
	}
	m.stageTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) CareAction(action, outcome string) {
	if m == nil {
		return
	}
	m.careActions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) NeglectCheck(result string) {
	if m == nil {
		return
	}
	m.neglectChecks.WithLabelValues(result).Inc()
	if result == OutcomeWilted {
		m.wilts.Inc()
	}
}

func (m *Metrics) SetPlants(n int) {
	if m == nil {
		return
	}
	m.plants.Set(float64(n))
}
