// Package engine wires the mood analyzers, growth machine, neglect monitor and
// care ledger to persistent storage. Every use-case is one read-modify-write of
// a single user's plant, serialized per user in-process and guarded across
// processes by the store's version check.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/plantpal/internal/audio"
	"github.com/julianstephens/plantpal/internal/care"
	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/events"
	"github.com/julianstephens/plantpal/internal/growth"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/metrics"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/mood"
	"github.com/julianstephens/plantpal/internal/neglect"
	"github.com/julianstephens/plantpal/internal/sentiment"
	"github.com/julianstephens/plantpal/internal/storage"
	"github.com/julianstephens/plantpal/internal/utils"
)

var (
	ErrNoPlantFound = errors.New("no plant found, run 'plantpal plant create' first")
	ErrPlantExists  = errors.New("a plant already exists for this user")
)

// Options are the optional collaborators of a Service
type Options struct {
	Sentiment *sentiment.Analyzer
	Audio     *audio.Analyzer
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Clock     func() time.Time
}

type Service struct {
	store      storage.Provider
	sentiment  *sentiment.Analyzer
	audio      *audio.Analyzer
	aggregator *mood.Aggregator
	publisher  events.Publisher
	metrics    *metrics.Metrics
	now        func() time.Time
	locks      *keyedMutex
}

func New(store storage.Provider, opts Options) *Service {
	s := &Service{
		store:      store,
		sentiment:  opts.Sentiment,
		audio:      opts.Audio,
		aggregator: mood.NewAggregator(),
		publisher:  opts.Publisher,
		metrics:    opts.Metrics,
		now:        opts.Clock,
		locks:      newKeyedMutex(),
	}
	if s.sentiment == nil {
		s.sentiment = sentiment.NewDefaultAnalyzer()
	}
	if s.audio == nil {
		s.audio = audio.NewAnalyzer()
	}
	if s.publisher == nil {
		s.publisher = events.NewLogPublisher()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// policy is the per-call view of the engine tunables
type policy struct {
	settings models.Settings
	loc      *time.Location
	machine  *growth.Machine
	monitor  *neglect.Monitor
	ledger   *care.Ledger
}

func (s *Service) policy() (policy, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return policy{}, fmt.Errorf("failed to load settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return policy{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	machine := growth.NewMachine(growth.ThresholdsFromSettings(settings))
	return policy{
		settings: settings,
		loc:      loc,
		machine:  machine,
		monitor:  neglect.NewMonitor(machine, neglect.ConfigFromSettings(settings)),
		ledger:   care.NewLedger(machine, settings.CareCooldown()),
	}, nil
}

// Today returns the current calendar day in the configured timezone
func (s *Service) Today() (string, error) {
	pol, err := s.policy()
	if err != nil {
		return "", err
	}
	return utils.DayOf(s.now(), pol.loc), nil
}

func (s *Service) at(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

// load reads the plant and its counter. A missing counter is rebuilt from the
// plant's creation day.
func (s *Service) load(userID string, pol policy) (models.PlantState, models.NeglectCounter, error) {
	p, err := s.store.GetPlant(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.PlantState{}, models.NeglectCounter{}, ErrNoPlantFound
		}
		return models.PlantState{}, models.NeglectCounter{}, fmt.Errorf("failed to load plant: %w", err)
	}
	c, err := s.store.GetNeglectCounter(userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return models.PlantState{}, models.NeglectCounter{}, fmt.Errorf("failed to load neglect counter: %w", err)
		}
		c = pol.monitor.NewCounter(userID, utils.DayOf(p.CreatedAt, pol.loc))
	}
	return p, c, nil
}

// mutation builds the update for one attempt. Returning a nil update skips the write.
type mutation func(p models.PlantState, c models.NeglectCounter, pol policy) (*storage.PlantUpdate, error)

// mutate runs fn under the user's lock and commits its update, re-reading and
// retrying when another writer got there first.
func (s *Service) mutate(userID string, fn mutation) (models.PlantState, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	pol, err := s.policy()
	if err != nil {
		return models.PlantState{}, err
	}

	for attempt := 1; attempt <= constants.MaxCommitRetries; attempt++ {
		p, c, err := s.load(userID, pol)
		if err != nil {
			return models.PlantState{}, err
		}

		update, err := fn(p, c, pol)
		if err != nil {
			return models.PlantState{}, err
		}
		if update == nil {
			return p, nil
		}

		committed, err := s.store.CommitPlant(*update)
		if err == nil {
			return committed, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) {
			return models.PlantState{}, fmt.Errorf("failed to save plant: %w", err)
		}
		logger.Debug("Plant version conflict, retrying", "user", userID, "attempt", attempt)
	}

	return models.PlantState{}, fmt.Errorf("failed to save plant after %d attempts: %w", constants.MaxCommitRetries, storage.ErrVersionConflict)
}

// CreatePlant creates the user's seedling and its neglect counter
func (s *Service) CreatePlant(userID, name string) (models.PlantState, error) {
	if userID == "" {
		return models.PlantState{}, errors.New("user id is required")
	}
	if name == "" {
		name = constants.DefaultPlantName
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	pol, err := s.policy()
	if err != nil {
		return models.PlantState{}, err
	}

	now := s.now().UTC()
	p := models.NewPlantState(uuid.New().String(), userID, name, now)
	c := pol.monitor.NewCounter(userID, utils.DayOf(now, pol.loc))
	if err := s.store.CreatePlant(p, c); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.PlantState{}, ErrPlantExists
		}
		return models.PlantState{}, fmt.Errorf("failed to create plant: %w", err)
	}

	logger.Info("Plant created", "user", userID, "plant", p.ID, "name", name)
	return p, nil
}

// DeletePlant removes the user's plant, its logs and its neglect counter
func (s *Service) DeletePlant(userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.store.DeletePlant(userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNoPlantFound
		}
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	logger.Info("Plant deleted", "user", userID)
	return nil
}

func (s *Service) recordTransition(tr growth.Transition) {
	s.metrics.GrowthPoints(tr.Delta)
	s.metrics.StageTransition(string(tr.From), string(tr.To))
	if tr.StageChanged() {
		logger.Info("Plant stage changed", "user", tr.Plant.UserID, "from", tr.From, "to", tr.To)
	}
}
