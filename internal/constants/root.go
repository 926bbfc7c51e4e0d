package constants

import "time"

const (
	AppName            = "plantpal"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/plantpal/plantpal.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// EnvPrefix prefixes every environment variable read by the CLI
	EnvPrefix = "PLANTPAL_"

	DefaultUserID    = "default"
	DefaultPlantName = "Sprig"

	// Storage retry policy for optimistic-lock conflicts
	MaxCommitRetries = 5

	// Neglect sweep fan-out
	SweepConcurrency = 8

	DefaultSweepInterval = time.Hour
	DefaultMetricsAddr   = ":9464"
	DefaultKafkaTopic    = "plantpal.reminders"
	DefaultHistoryLimit  = 20
)
