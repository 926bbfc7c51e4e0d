package constants

import "time"

const (
	MaxHealth = 100
	MaxWater  = 100

	InitialHealth = 100
	InitialWater  = 100

	// Passive decay: one water unit per step, health drops per step while dehydrated
	DecayStep        = 6 * time.Hour
	DehydratedLevel  = 20
	MoodHealthFactor = 10.0

	// Care nudges
	WaterNudgeWater      = 30
	WaterNudgeHealth     = 5
	FertilizeNudgeHealth = 10
	FertilizeNudgeGrowth = 1
	SunshineNudgeHealth  = 5
	SunshineNudgeGrowth  = 1

	// Health status bands (lower bounds)
	HealthExcellent = 80
	HealthGood      = 60
	HealthFair      = 40
	HealthPoor      = 20
)
