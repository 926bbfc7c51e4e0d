package models

import "time"

// ActivityType classifies activity log entries
type ActivityType string

const (
	ActivityMoodGrowth  ActivityType = "mood_growth"
	ActivityStageChange ActivityType = "stage_change"
	ActivityWilting     ActivityType = "wilting"
	ActivityWatered     ActivityType = "watered"
	ActivityFertilized  ActivityType = "fertilized"
	ActivitySunshine    ActivityType = "sunshine"
	ActivityMusicBoost  ActivityType = "music_boost"
)

// ActivityTypeForCare maps a care action to its log kind
func ActivityTypeForCare(action CareAction) ActivityType {
	switch action {
	case CareWater:
		return ActivityWatered
	case CareFertilize:
		return ActivityFertilized
	default:
		return ActivitySunshine
	}
}

// ActivityLog is an append-only audit record for a plant
type ActivityLog struct {
	ID           string       `json:"id"`
	PlantID      string       `json:"plant_id"`
	UserID       string       `json:"user_id"`
	ActivityType ActivityType `json:"activity_type"`
	Note         string       `json:"note"`
	Value        float64      `json:"value"`
	GrowthImpact int          `json:"growth_impact"`
	CreatedAt    time.Time    `json:"created_at"`
}
