package engine

import (
	"errors"
	"time"

	"github.com/julianstephens/plantpal/internal/care"
	"github.com/julianstephens/plantpal/internal/growth"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/metrics"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/storage"
	"github.com/julianstephens/plantpal/internal/utils"
)

// CareResult is the outcome of a care action
type CareResult struct {
	Plant      models.PlantState
	Transition growth.Transition
	Log        models.ActivityLog
}

// Care performs a care action. Actions on cooldown fail with a *care.CooldownError.
func (s *Service) Care(userID string, action models.CareAction, at time.Time) (CareResult, error) {
	at = s.at(at)

	var res CareResult
	plant, err := s.mutate(userID, func(p models.PlantState, _ models.NeglectCounter, pol policy) (*storage.PlantUpdate, error) {
		p = growth.Decay(p, at)
		out, err := pol.ledger.Perform(p, action, at, utils.DayOf(at, pol.loc))
		if err != nil {
			return nil, err
		}
		res = CareResult{Transition: out.Transition, Log: out.Log}
		return &storage.PlantUpdate{Plant: out.Transition.Plant, Logs: []models.ActivityLog{out.Log}}, nil
	})
	if err != nil {
		if errors.Is(err, care.ErrCooldownActive) {
			s.metrics.CareAction(string(action), metrics.OutcomeCooldown)
		}
		return CareResult{}, err
	}

	res.Plant = plant
	s.metrics.CareAction(string(action), metrics.OutcomeApplied)
	s.recordTransition(res.Transition)
	logger.Info("Care action performed", "user", userID, "action", action, "health", plant.HealthScore, "water", plant.WaterLevel)
	return res, nil
}
