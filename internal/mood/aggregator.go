// Package mood combines per-source mood estimates into a unified mood.
package mood

import (
	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/models"
)

// Aggregator combines journal and music estimates with fixed source weights
type Aggregator struct {
	journalWeight float64
	musicWeight   float64
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		journalWeight: constants.JournalWeight,
		musicWeight:   constants.MusicWeight,
	}
}

// Combine merges the available estimates. Either argument may be nil.
func (a *Aggregator) Combine(journal, music *models.MoodEstimate) models.UnifiedMood {
	switch {
	case journal == nil && music == nil:
		return models.UnifiedMood{
			Score:      constants.NeutralScore,
			Label:      models.MoodNeutral,
			Confidence: 0,
			Sources:    []models.MoodSource{},
		}
	case music == nil:
		return single(*journal, models.SourceJournal)
	case journal == nil:
		return single(*music, models.SourceMusic)
	}

	j, m := sanitize(*journal), sanitize(*music)
	u := models.UnifiedMood{
		Score:      models.Clamp01(a.journalWeight*j.Score + a.musicWeight*m.Score),
		Confidence: models.Clamp01((j.Confidence + m.Confidence) / 2),
		Sources:    []models.MoodSource{models.SourceJournal, models.SourceMusic},
		Agreement:  j.Label.Tier() == m.Label.Tier(),
	}
	if j.Score == m.Score {
		u.Score = j.Score
	}
	if u.Agreement {
		u.Label = j.Label
	} else {
		u.Label = conservativeLabel(j.Label, m.Label)
	}
	return u
}

// conservativeLabel resolves disagreeing sources. A down signal pulls the
// result low; a thriving signal alone only reaches neutral.
func conservativeLabel(a, b models.MoodLabel) models.MoodLabel {
	ta, tb := a.Tier(), b.Tier()
	switch {
	case ta == models.TierDown || tb == models.TierDown:
		return models.MoodLow
	case ta == models.TierThriving || tb == models.TierThriving:
		return models.MoodNeutral
	case ta < tb:
		return a
	default:
		return b
	}
}

func single(e models.MoodEstimate, src models.MoodSource) models.UnifiedMood {
	e = sanitize(e)
	return models.UnifiedMood{
		Score:      e.Score,
		Label:      e.Label,
		Confidence: e.Confidence,
		Sources:    []models.MoodSource{src},
		Agreement:  true,
	}
}

func sanitize(e models.MoodEstimate) models.MoodEstimate {
	e.Score = models.Clamp01(e.Score)
	e.Confidence = models.Clamp01(e.Confidence)
	if e.Label == "" {
		e.Label = models.MoodNeutral
	}
	return e
}
