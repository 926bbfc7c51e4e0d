package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.JournalEntry("keywords", 0.5)
		m.GrowthPoints(3)
		m.StageTransition("seedling", "sprout")
		m.CareAction("water", OutcomeApplied)
		m.NeglectCheck(OutcomeWilted)
		m.SetPlants(4)
	})
	assert.NotNil(t, m.Handler())
}

func TestCounters(t *testing.T) {
	m := New()

	m.JournalEntry("lexical", 0.9)
	m.JournalEntry("lexical", 0.7)
	m.GrowthPoints(3)
	m.GrowthPoints(0)
	m.GrowthPoints(-2)
	m.StageTransition("seedling", "sprout")
	m.StageTransition("bloom", "bloom")
	m.CareAction("water", OutcomeCooldown)
	m.NeglectCheck(OutcomeWilted)
	m.NeglectCheck(OutcomeSkipped)
	m.SetPlants(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.journalEntries.WithLabelValues("lexical")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.growthPoints))
	assert.Equal(t, 1, testutil.CollectAndCount(m.stageTransitions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.careActions.WithLabelValues("water", OutcomeCooldown)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wilts))
	assert.Equal(t, 2, testutil.CollectAndCount(m.neglectChecks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.plants))
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := New()
	m.GrowthPoints(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "plantpal_growth_points_total 2"))
}
