package sentiment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/plantpal/internal/models"
)

type fakeScorer struct {
	name    string
	reading Reading
	err     error
	calls   int
}

func (f *fakeScorer) Name() string { return f.name }

func (f *fakeScorer) Score(string) (Reading, error) {
	f.calls++
	return f.reading, f.err
}

func TestAnalyze_EmptyText(t *testing.T) {
	scorer := &fakeScorer{name: "fake", reading: Reading{Polarity: 1}}
	a := NewAnalyzer(scorer)

	for _, text := range []string{"", "   ", "\n\t "} {
		est := a.Analyze(text)
		assert.Equal(t, models.NeutralEstimate(models.MethodEmptyText), est)
	}
	assert.Zero(t, scorer.calls, "scorers must not run on empty text")
}

func TestAnalyze_FirstScorerWins(t *testing.T) {
	first := &fakeScorer{name: "lexical", reading: Reading{Polarity: 0.7, Subjectivity: 0.5, HasSubjectivity: true}}
	second := &fakeScorer{name: "compound", reading: Reading{Polarity: -0.9}}

	est := NewAnalyzer(first, second).Analyze("a lovely quiet day")

	assert.Equal(t, "lexical", est.Method)
	assert.InDelta(t, 0.85, est.Score, 1e-9)
	assert.InDelta(t, 0.7, est.Confidence, 1e-9)
	assert.Equal(t, models.MoodHappy, est.Label)
	assert.Zero(t, second.calls)
}

func TestAnalyze_FallsBackThroughChain(t *testing.T) {
	first := &fakeScorer{name: "lexical", err: ErrUnavailable}
	second := &fakeScorer{name: "compound", reading: Reading{Polarity: -0.5}}

	est := NewAnalyzer(first, second).Analyze("meh")

	assert.Equal(t, "compound", est.Method)
	assert.InDelta(t, 0.25, est.Score, 1e-9)
	assert.InDelta(t, 0.6, est.Confidence, 1e-9)
	assert.Equal(t, models.MoodCalm, est.Label)
}

func TestAnalyze_KeywordFallback(t *testing.T) {
	broken := &fakeScorer{name: "broken", err: errors.New("model not loaded")}
	a := NewAnalyzer(broken, nil)

	est := a.Analyze("I feel happy and grateful today")
	assert.Equal(t, models.MethodKeywords, est.Method)
	// 2 positive of 6 words: 0.5 + 0.4*2/6
	assert.InDelta(t, 0.5+0.4*2.0/6.0, est.Score, 1e-9)
	assert.InDelta(t, 2.0/6.0*2, est.Confidence, 1e-9)

	est = a.Analyze("stressed and anxious about a problem at work")
	assert.Less(t, est.Score, 0.5)
	assert.LessOrEqual(t, est.Confidence, 0.8)
}

func TestAnalyze_ClampsOutOfRangeReadings(t *testing.T) {
	wild := &fakeScorer{name: "wild", reading: Reading{Polarity: 4, Subjectivity: 3, HasSubjectivity: true}}
	est := NewAnalyzer(wild).Analyze("!!!")

	assert.Equal(t, 1.0, est.Score)
	assert.Equal(t, 1.0, est.Confidence)
}

func TestKeywordScorer_NoKeywords(t *testing.T) {
	est := NewKeywordScorer().Estimate("the bus was on time")
	assert.Equal(t, 0.5, est.Score)
	assert.Zero(t, est.Confidence)
	assert.Equal(t, models.MoodNeutral, est.Label)
}

func TestKeywordScorer_PunctuationAndCase(t *testing.T) {
	est := NewKeywordScorer().Estimate("HAPPY! happy, happy.")
	assert.InDelta(t, 0.9, est.Score, 1e-9)
	assert.Equal(t, models.MoodHappy, est.Label)
}

func TestLabelForScore_Monotonic(t *testing.T) {
	prev := LabelForScore(0).Tier()
	for i := 1; i <= 1000; i++ {
		tier := LabelForScore(float64(i) / 1000).Tier()
		require.GreaterOrEqual(t, int(tier), int(prev), "score %.3f mapped to a sadder label", float64(i)/1000)
		prev = tier
	}
}

func TestLabelForScore_Breakpoints(t *testing.T) {
	tests := []struct {
		score float64
		want  models.MoodLabel
	}{
		{0.0, models.MoodSad},
		{0.19, models.MoodSad},
		{0.2, models.MoodCalm},
		{0.35, models.MoodNeutral},
		{0.64, models.MoodNeutral},
		{0.65, models.MoodContent},
		{0.8, models.MoodHappy},
		{1.0, models.MoodHappy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelForScore(tt.score), "score %v", tt.score)
	}
}

func TestVaderScorer(t *testing.T) {
	a := NewDefaultAnalyzer()

	pos := a.Analyze("What a wonderful, beautiful day. I love it!")
	neg := a.Analyze("This is terrible. I hate everything and feel awful.")

	assert.Greater(t, pos.Score, 0.5)
	assert.Less(t, neg.Score, 0.5)
	assert.Equal(t, "vader", pos.Method)

	var nilScorer *VaderScorer
	_, err := nilScorer.Score("anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSuggestions(t *testing.T) {
	assert.NotEmpty(t, Suggestions(models.MoodSad))
	assert.Equal(t, Suggestions(models.MoodHappy), Suggestions(models.MoodEuphoric))

	s := Suggestions(models.MoodCalm)
	s[0] = "mutated"
	assert.NotEqual(t, "mutated", Suggestions(models.MoodCalm)[0])
}

func TestClean(t *testing.T) {
	assert.Equal(t, "one two three", Clean("  one\n two\t\tthree "))
}
