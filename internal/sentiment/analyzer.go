// Package sentiment turns journal text into a mood estimate.
//
// Scorers are tried in the order given to NewAnalyzer. A scorer that returns an
// error is skipped, and the keyword scorer always closes the chain, so Analyze
// never fails.
package sentiment

import (
	"errors"
	"math"
	"strings"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/models"
)

// ErrUnavailable is returned by a scorer that cannot produce a reading for the text
var ErrUnavailable = errors.New("sentiment scorer unavailable")

// Reading is the raw output of a scorer
type Reading struct {
	Polarity        float64 // [-1,1]
	Subjectivity    float64 // [0,1], only meaningful when HasSubjectivity is set
	HasSubjectivity bool
}

// Scorer produces a polarity reading for cleaned text
type Scorer interface {
	Name() string
	Score(text string) (Reading, error)
}

// Analyzer maps journal text to a MoodEstimate
type Analyzer struct {
	scorers  []Scorer
	keywords *KeywordScorer
}

// NewAnalyzer builds an analyzer that tries scorers in order before the keyword fallback
func NewAnalyzer(scorers ...Scorer) *Analyzer {
	chain := make([]Scorer, 0, len(scorers))
	for _, s := range scorers {
		if s != nil {
			chain = append(chain, s)
		}
	}
	return &Analyzer{
		scorers:  chain,
		keywords: NewKeywordScorer(),
	}
}

// Analyze returns a fresh estimate for text. It never fails.
func (a *Analyzer) Analyze(text string) models.MoodEstimate {
	cleaned := Clean(text)
	if cleaned == "" {
		logger.Debug("Empty journal text, using neutral estimate")
		return models.NeutralEstimate(models.MethodEmptyText)
	}

	for _, s := range a.scorers {
		reading, err := s.Score(cleaned)
		if err != nil {
			logger.Debug("Sentiment scorer skipped", "scorer", s.Name(), "error", err)
			continue
		}
		return estimateFromReading(reading, s.Name())
	}

	est := a.keywords.Estimate(cleaned)
	if len(a.scorers) > 0 {
		logger.Warn("All sentiment scorers unavailable, used keyword fallback", "confidence", est.Confidence)
	}
	return est
}

func estimateFromReading(r Reading, method string) models.MoodEstimate {
	p := clampPolarity(r.Polarity)
	score := models.Clamp01((p + 1) / 2)

	var confidence float64
	if r.HasSubjectivity {
		confidence = math.Min(1, models.Clamp01(r.Subjectivity)+constants.SubjectivityConfidenceBoost)
	} else {
		confidence = math.Min(1, math.Abs(p)+constants.CompoundConfidenceBoost)
	}

	return models.MoodEstimate{
		Score:      score,
		Label:      LabelForScore(score),
		Confidence: confidence,
		Method:     method,
	}
}

// LabelForScore buckets a text mood score
func LabelForScore(score float64) models.MoodLabel {
	score = models.Clamp01(score)
	switch {
	case score >= 0.8:
		return models.MoodHappy
	case score >= 0.65:
		return models.MoodContent
	case score >= 0.35:
		return models.MoodNeutral
	case score >= 0.2:
		return models.MoodCalm
	default:
		return models.MoodSad
	}
}

// Clean collapses whitespace and trims the text
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func clampPolarity(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(-1, math.Min(1, p))
}
