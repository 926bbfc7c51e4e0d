package models

import (
	"time"

	"github.com/julianstephens/plantpal/internal/constants"
)

// Stage is a plant's discrete lifecycle phase
type Stage string

const (
	StageSeedling Stage = "seedling"
	StageSprout   Stage = "sprout"
	StageBloom    Stage = "bloom"
	StageWilt     Stage = "wilt"
)

// Valid reports whether s is a known stage
func (s Stage) Valid() bool {
	switch s {
	case StageSeedling, StageSprout, StageBloom, StageWilt:
		return true
	}
	return false
}

// CareAction is a user-invoked care action
type CareAction string

const (
	CareWater     CareAction = "water"
	CareFertilize CareAction = "fertilize"
	CareSunshine  CareAction = "sunshine"
)

// CareActions lists the supported care actions in display order
var CareActions = []CareAction{CareWater, CareFertilize, CareSunshine}

// PlantState is a user's plant
type PlantState struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`

	Stage          Stage `json:"stage"`
	GrowthPoints   int   `json:"growth_points"`
	RecoveryPoints int   `json:"recovery_points"` // accumulated while wilted
	HealthScore    int   `json:"health_score"`
	WaterLevel     int   `json:"water_level"`

	JournalMoodScore  float64 `json:"journal_mood_score"`
	MusicMoodScore    float64 `json:"music_mood_score"`
	CombinedMoodScore float64 `json:"combined_mood_score"`
	JournalSamples    int     `json:"journal_samples"`
	MusicSamples      int     `json:"music_samples"`

	CareStreak        int    `json:"care_streak"`
	LastCareDate      string `json:"last_care_date,omitempty"` // YYYY-MM-DD format
	TotalListeningMin int    `json:"total_listening_min"`

	LastWateredAt    *time.Time `json:"last_watered_at,omitempty"`
	LastFertilizedAt *time.Time `json:"last_fertilized_at,omitempty"`
	LastSunshineAt   *time.Time `json:"last_sunshine_at,omitempty"`
	LastDecayAt      time.Time  `json:"last_decay_at"`
	LastMusicAt      *time.Time `json:"last_music_at,omitempty"`

	LastMusicMood   *MoodEstimate `json:"last_music_mood,omitempty"`
	LastUnifiedMood *UnifiedMood  `json:"last_unified_mood,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlantState returns a fresh seedling with full health and water
func NewPlantState(id, userID, name string, now time.Time) PlantState {
	return PlantState{
		ID:                id,
		UserID:            userID,
		Name:              name,
		Stage:             StageSeedling,
		HealthScore:       constants.InitialHealth,
		WaterLevel:        constants.InitialWater,
		JournalMoodScore:  constants.NeutralScore,
		MusicMoodScore:    constants.NeutralScore,
		CombinedMoodScore: constants.NeutralScore,
		LastDecayAt:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// LastCareAt returns the cooldown timestamp for a care action
func (p PlantState) LastCareAt(action CareAction) *time.Time {
	switch action {
	case CareWater:
		return p.LastWateredAt
	case CareFertilize:
		return p.LastFertilizedAt
	case CareSunshine:
		return p.LastSunshineAt
	}
	return nil
}

// SetLastCareAt records when a care action was performed
func (p *PlantState) SetLastCareAt(action CareAction, at time.Time) {
	t := at
	switch action {
	case CareWater:
		p.LastWateredAt = &t
	case CareFertilize:
		p.LastFertilizedAt = &t
	case CareSunshine:
		p.LastSunshineAt = &t
	}
}
