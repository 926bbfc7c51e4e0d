// Package audio turns music audio descriptors into a mood estimate.
package audio

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/models"
)

// Features are the audio descriptors of one track or session. Valence, energy
// and danceability are in [0,1]; tempo is in BPM. A tempo of zero means unknown.
type Features struct {
	Valence      float64 `json:"valence"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Tempo        float64 `json:"tempo"`
}

// Analyzer maps audio features to a MoodEstimate. It holds no state.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze returns a fresh estimate for one feature set. A nil set is neutral with no confidence.
func (a *Analyzer) Analyze(f *Features) models.MoodEstimate {
	if f == nil {
		logger.Debug("No audio features, using neutral estimate")
		return models.NeutralEstimate(models.MethodNoFeatures)
	}

	valence := models.Clamp01(f.Valence)
	energy := models.Clamp01(f.Energy)
	dance := models.Clamp01(f.Danceability)
	tempo := NormalizeTempo(f.Tempo)

	score := models.Clamp01(constants.ValenceWeight*valence +
		constants.EnergyWeight*energy +
		constants.DanceabilityWeight*dance +
		constants.TempoWeight*tempo)

	confidence := constants.MinAudioConfidence
	if variance, err := stats.PopulationVariance(stats.Float64Data{valence, energy, dance, tempo}); err == nil {
		confidence = math.Max(constants.MinAudioConfidence, 1-variance)
	}

	return models.MoodEstimate{
		Score:      score,
		Label:      LabelFor(score, energy),
		Confidence: math.Min(1, confidence),
		Method:     models.MethodAudioFeatures,
	}
}

// AnalyzeSession averages each descriptor across the tracks and analyzes the result
func (a *Analyzer) AnalyzeSession(tracks []Features) models.MoodEstimate {
	if len(tracks) == 0 {
		return a.Analyze(nil)
	}
	if len(tracks) == 1 {
		return a.Analyze(&tracks[0])
	}

	var valence, energy, dance, tempo stats.Float64Data
	for _, t := range tracks {
		valence = append(valence, t.Valence)
		energy = append(energy, t.Energy)
		dance = append(dance, t.Danceability)
		if t.Tempo > 0 {
			tempo = append(tempo, t.Tempo)
		}
	}

	avg := Features{
		Valence:      mean(valence),
		Energy:       mean(energy),
		Danceability: mean(dance),
	}
	if len(tempo) > 0 {
		avg.Tempo = mean(tempo)
	}
	return a.Analyze(&avg)
}

// NormalizeTempo maps BPM onto [0,1] over the 60-200 window. Unknown tempo uses 120 BPM.
func NormalizeTempo(bpm float64) float64 {
	if bpm <= 0 || math.IsNaN(bpm) {
		bpm = constants.DefaultTempoBPM
	}
	return models.Clamp01((bpm - constants.TempoMinBPM) / (constants.TempoMaxBPM - constants.TempoMinBPM))
}

// LabelFor buckets a music mood score. Energy only chooses between labels of
// the same tier, so a higher score never lands in a sadder tier.
func LabelFor(score, energy float64) models.MoodLabel {
	score = models.Clamp01(score)
	switch {
	case score >= 0.7:
		if energy > 0.6 {
			return models.MoodEuphoric
		}
		return models.MoodHappy
	case score >= 0.55:
		if energy > 0.6 {
			return models.MoodEnergetic
		}
		return models.MoodUpbeat
	case score >= 0.4:
		if energy < 0.3 {
			return models.MoodCalm
		}
		return models.MoodNeutral
	case score >= 0.3:
		if energy > 0.7 {
			return models.MoodAngry
		}
		return models.MoodMelancholy
	default:
		if energy < 0.4 {
			return models.MoodSad
		}
		return models.MoodLow
	}
}

func mean(data stats.Float64Data) float64 {
	m, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return m
}
