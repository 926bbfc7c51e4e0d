package growth

import (
	"math"
	"time"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/models"
)

// HealthStatus names the band a health score falls in
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
	HealthCritical  HealthStatus = "critical"
)

// StatusForHealth buckets a health score
func StatusForHealth(health int) HealthStatus {
	switch {
	case health >= constants.HealthExcellent:
		return HealthExcellent
	case health >= constants.HealthGood:
		return HealthGood
	case health >= constants.HealthFair:
		return HealthFair
	case health >= constants.HealthPoor:
		return HealthPoor
	default:
		return HealthCritical
	}
}

// MoodHealthNudge is the health change from one mood-driven update
func MoodHealthNudge(score float64) int {
	return int(math.Round((models.Clamp01(score) - constants.NeutralScore) * constants.MoodHealthFactor))
}

// Decay applies passive water loss for every full step since the last decay.
// Health drops by one per step spent below the dehydration level. The decay
// anchor only moves forward, so backdated updates never recharge a period.
func Decay(p models.PlantState, now time.Time) models.PlantState {
	if p.LastDecayAt.IsZero() {
		p.LastDecayAt = now
		return p
	}
	if now.Before(p.LastDecayAt) {
		return p
	}
	steps := int(now.Sub(p.LastDecayAt) / constants.DecayStep)
	if steps == 0 {
		return p
	}

	water := models.ClampInt(p.WaterLevel, 0, constants.MaxWater)
	dryFrom := max(0, water-constants.DehydratedLevel)
	dehydratedSteps := max(0, steps-dryFrom)

	p.WaterLevel = max(0, water-steps)
	p.HealthScore = models.ClampInt(p.HealthScore-dehydratedSteps, 0, constants.MaxHealth)
	p.LastDecayAt = p.LastDecayAt.Add(time.Duration(steps) * constants.DecayStep)
	return p
}

// ApplyListening adds the listening-time health bonus and returns it
func ApplyListening(p models.PlantState, minutes int) (models.PlantState, int) {
	if minutes <= 0 {
		return p, 0
	}
	bonus := int(math.Min(float64(minutes)*constants.MusicHealthPerMin, constants.MaxMusicHealthBonus))
	p.HealthScore = models.ClampInt(p.HealthScore+bonus, 0, constants.MaxHealth)
	p.TotalListeningMin += minutes
	return p, bonus
}

// ObserveJournal folds a journal estimate into the rolling journal score
func ObserveJournal(p models.PlantState, e models.MoodEstimate) models.PlantState {
	score := models.Clamp01(e.Score)
	if p.JournalSamples == 0 {
		p.JournalMoodScore = score
	} else {
		p.JournalMoodScore = models.Clamp01(constants.JournalNewWeight*score + constants.JournalExistingWeight*p.JournalMoodScore)
	}
	p.JournalSamples++
	p.CombinedMoodScore = CombinedScore(p)
	return p
}

// ObserveMusic folds a music estimate into the rolling music score and keeps
// it as the latest music reading
func ObserveMusic(p models.PlantState, e models.MoodEstimate, at time.Time) models.PlantState {
	score := models.Clamp01(e.Score)
	if p.MusicSamples == 0 {
		p.MusicMoodScore = score
	} else {
		p.MusicMoodScore = models.Clamp01(constants.MusicNewWeight*score + constants.MusicExistingWeight*p.MusicMoodScore)
	}
	p.MusicSamples++
	p.CombinedMoodScore = CombinedScore(p)

	latest := e
	latest.Score = score
	p.LastMusicMood = &latest
	t := at
	p.LastMusicAt = &t
	return p
}

// CombinedScore derives the combined score from the rolling source scores
func CombinedScore(p models.PlantState) float64 {
	switch {
	case p.JournalSamples > 0 && p.MusicSamples > 0:
		return models.Clamp01(constants.JournalWeight*p.JournalMoodScore + constants.MusicWeight*p.MusicMoodScore)
	case p.JournalSamples > 0:
		return models.Clamp01(p.JournalMoodScore)
	case p.MusicSamples > 0:
		return models.Clamp01(p.MusicMoodScore)
	default:
		return constants.NeutralScore
	}
}
