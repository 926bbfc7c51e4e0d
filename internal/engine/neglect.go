package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/events"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/metrics"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/neglect"
	"github.com/julianstephens/plantpal/internal/storage"
	"github.com/julianstephens/plantpal/internal/utils"
)

// CheckResult is the outcome of a daily neglect check
type CheckResult struct {
	Plant   models.PlantState
	Status  models.NeglectStatus
	Checked bool // false when the day was already checked
	Wilted  bool
}

// CheckNeglect runs the daily neglect check for today (YYYY-MM-DD, empty for
// the current day) and publishes the resulting reminder events.
func (s *Service) CheckNeglect(ctx context.Context, userID, today string) (CheckResult, error) {
	now := s.now()

	var res neglect.Result
	var status models.NeglectStatus
	plant, err := s.mutate(userID, func(p models.PlantState, c models.NeglectCounter, pol policy) (*storage.PlantUpdate, error) {
		day := today
		if day == "" {
			day = utils.DayOf(now, pol.loc)
		}
		out, err := pol.monitor.Check(c, p, day, now)
		if err != nil {
			return nil, err
		}
		res = out
		status = pol.monitor.Status(out.Counter, out.Transition.Plant)
		if !out.Checked {
			return nil, nil
		}
		return &storage.PlantUpdate{Plant: out.Transition.Plant, Logs: out.Transition.Logs, Counter: &out.Counter}, nil
	})
	if err != nil {
		s.metrics.NeglectCheck(metrics.OutcomeError)
		return CheckResult{}, err
	}

	out := CheckResult{Plant: plant, Status: status, Checked: res.Checked, Wilted: res.Wilted}
	switch {
	case !res.Checked:
		s.metrics.NeglectCheck(metrics.OutcomeSkipped)
		return out, nil
	case res.Wilted:
		s.metrics.NeglectCheck(metrics.OutcomeWilted)
		s.recordTransition(res.Transition)
		logger.Warn("Plant wilted from neglect", "user", userID, "missed_days", status.ConsecutiveMissedDays)
	default:
		s.metrics.NeglectCheck(metrics.OutcomeCounted)
	}

	// The update is committed; a failed publish is only logged.
	if err := s.publisher.Publish(ctx, events.ForCheck(status, res.Wilted, now)...); err != nil {
		logger.Error("Failed to publish reminder events", "user", userID, "error", err)
	}
	return out, nil
}

// SweepReport summarizes a neglect sweep over every plant
type SweepReport struct {
	Plants  int
	Checked int
	Skipped int
	Wilted  int
	Failed  int
}

// SweepNeglect runs CheckNeglect for every plant concurrently. Per-user
// failures are counted and logged; only cancellation aborts the sweep.
func (s *Service) SweepNeglect(ctx context.Context, today string) (SweepReport, error) {
	plants, err := s.store.GetAllPlants()
	if err != nil {
		return SweepReport{}, fmt.Errorf("failed to list plants: %w", err)
	}

	var (
		mu     sync.Mutex
		report = SweepReport{Plants: len(plants)}
	)
	s.metrics.SetPlants(len(plants))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.SweepConcurrency)
	for _, p := range plants {
		userID := p.UserID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.CheckNeglect(gctx, userID, today)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				report.Failed++
				logger.Error("Neglect check failed", "user", userID, "error", err)
			case !res.Checked:
				report.Skipped++
			default:
				report.Checked++
				if res.Wilted {
					report.Wilted++
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	logger.Info("Neglect sweep finished",
		"plants", report.Plants,
		"checked", report.Checked,
		"skipped", report.Skipped,
		"wilted", report.Wilted,
		"failed", report.Failed,
	)
	return report, nil
}

// ReminderStatus returns the neglect view of the user's plant without running a check
func (s *Service) ReminderStatus(userID string) (models.NeglectStatus, error) {
	pol, err := s.policy()
	if err != nil {
		return models.NeglectStatus{}, err
	}
	p, c, err := s.load(userID, pol)
	if err != nil {
		return models.NeglectStatus{}, err
	}
	return pol.monitor.Status(c, p), nil
}
