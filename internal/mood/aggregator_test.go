package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/plantpal/internal/models"
)

func est(score float64, label models.MoodLabel, confidence float64) *models.MoodEstimate {
	return &models.MoodEstimate{Score: score, Label: label, Confidence: confidence, Method: "test"}
}

func TestCombine_NoSources(t *testing.T) {
	u := NewAggregator().Combine(nil, nil)
	assert.Equal(t, 0.5, u.Score)
	assert.Zero(t, u.Confidence)
	assert.Empty(t, u.Sources)
}

func TestCombine_SingleSourcePassesThrough(t *testing.T) {
	a := NewAggregator()

	u := a.Combine(est(0.82, models.MoodHappy, 0.4), nil)
	assert.Equal(t, 0.82, u.Score)
	assert.Equal(t, models.MoodHappy, u.Label)
	assert.Equal(t, 0.4, u.Confidence)
	assert.Equal(t, []models.MoodSource{models.SourceJournal}, u.Sources)

	u = a.Combine(nil, est(0.3, models.MoodMelancholy, 0.9))
	assert.Equal(t, 0.3, u.Score)
	assert.Equal(t, 0.9, u.Confidence)
	assert.Equal(t, []models.MoodSource{models.SourceMusic}, u.Sources)
}

func TestCombine_IdenticalEstimatesAgree(t *testing.T) {
	for _, s := range []float64{0.1, 0.33, 0.5, 0.7, 0.85, 0.99} {
		e := est(s, models.MoodContent, 0.6)
		u := NewAggregator().Combine(e, e)
		assert.Equal(t, s, u.Score)
		assert.True(t, u.Agreement)
		assert.Equal(t, models.MoodContent, u.Label)
		assert.InDelta(t, 0.6, u.Confidence, 1e-9)
	}
}

func TestCombine_OpposedSourcesDisagree(t *testing.T) {
	u := NewAggregator().Combine(est(0.9, models.MoodHappy, 0.8), est(0.1, models.MoodSad, 0.4))

	assert.Greater(t, u.Score, 0.1)
	assert.Less(t, u.Score, 0.9)
	assert.InDelta(t, 0.58, u.Score, 1e-9)
	assert.InDelta(t, 0.6, u.Confidence, 1e-9)
	assert.False(t, u.Agreement)
	assert.Equal(t, models.MoodLow, u.Label)
	assert.ElementsMatch(t, []models.MoodSource{models.SourceJournal, models.SourceMusic}, u.Sources)
}

func TestCombine_ConservativeLabels(t *testing.T) {
	tests := []struct {
		name    string
		journal models.MoodLabel
		music   models.MoodLabel
		want    models.MoodLabel
	}{
		{"sad music suppresses happy journal", models.MoodHappy, models.MoodSad, models.MoodLow},
		{"sad journal with upbeat music", models.MoodSad, models.MoodUpbeat, models.MoodLow},
		{"happy never wins alone", models.MoodHappy, models.MoodNeutral, models.MoodNeutral},
		{"euphoric music with calm journal", models.MoodCalm, models.MoodEuphoric, models.MoodNeutral},
		{"lower tier otherwise", models.MoodContent, models.MoodMelancholy, models.MoodMelancholy},
		{"same tier agrees", models.MoodNeutral, models.MoodCalm, models.MoodNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewAggregator().Combine(est(0.5, tt.journal, 0.5), est(0.5, tt.music, 0.5))
			assert.Equal(t, tt.want, u.Label)
			assert.NotEqual(t, models.MoodHappy, u.Label)
		})
	}
}

func TestCombine_ClampsMalformedInput(t *testing.T) {
	u := NewAggregator().Combine(est(1.4, "", 2), est(-0.3, models.MoodSad, -1))
	assert.GreaterOrEqual(t, u.Score, 0.0)
	assert.LessOrEqual(t, u.Score, 1.0)
	assert.GreaterOrEqual(t, u.Confidence, 0.0)
	assert.LessOrEqual(t, u.Confidence, 1.0)
}

func TestRecommendations(t *testing.T) {
	low := Recommendations(models.UnifiedMood{Score: 0.2, Label: models.MoodSad, Sources: []models.MoodSource{models.SourceJournal, models.SourceMusic}})
	assert.Len(t, low, 3)

	bright := Recommendations(models.UnifiedMood{Score: 0.85, Label: models.MoodHappy, Sources: []models.MoodSource{models.SourceJournal}})
	assert.Len(t, bright, 3)
	assert.Contains(t, bright[2], "listening session")
}
