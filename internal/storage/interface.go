package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/plantpal/internal/models"
)

var (
	// ErrNotFound is returned when a plant or counter does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a user already owns a plant
	ErrAlreadyExists = errors.New("already exists")
	// ErrVersionConflict is returned when a plant was modified since it was read
	ErrVersionConflict = errors.New("plant was modified concurrently")
)

// PlantUpdate is one atomic write: the new plant state, the logs produced by
// the transition, and optionally the user's neglect counter.
type PlantUpdate struct {
	Plant   models.PlantState
	Logs    []models.ActivityLog
	Counter *models.NeglectCounter
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Plants
	CreatePlant(models.PlantState, models.NeglectCounter) error
	GetPlant(userID string) (models.PlantState, error)
	GetAllPlants() ([]models.PlantState, error)
	DeletePlant(userID string) error
	// CommitPlant persists an update if the stored plant still carries
	// update.Plant.Version, bumping the version on success. It returns
	// ErrVersionConflict otherwise and writes nothing.
	CommitPlant(update PlantUpdate) (models.PlantState, error)

	// Neglect
	GetNeglectCounter(userID string) (models.NeglectCounter, error)

	// Activity logs, newest first; limit <= 0 returns all
	GetActivityLogs(userID string, limit int) ([]models.ActivityLog, error)
	GetActivityLogsByType(userID string, kind models.ActivityType, limit int) ([]models.ActivityLog, error)
	PruneActivityLogs(before time.Time) (int64, error)

	// Utility
	GetConfigPath() string
}

// Migrator is implemented by providers that can apply schema migrations on demand
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
}
