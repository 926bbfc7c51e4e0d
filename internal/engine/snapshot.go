package engine

import (
	"fmt"
	"time"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/growth"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/mood"
)

// trendHistory bounds how many mood entries feed the trend
const trendHistory = 4 * constants.TrendWindow

// Snapshot is a read-only view of a plant at a point in time
type Snapshot struct {
	Plant           models.PlantState
	Health          growth.HealthStatus
	Cooldowns       map[models.CareAction]time.Duration
	Mood            *models.UnifiedMood
	Neglect         models.NeglectStatus
	Trend           mood.TrendReport
	Recommendations []string
}

// Snapshot projects passive decay up to at without persisting it. A zero at means now.
func (s *Service) Snapshot(userID string, at time.Time) (Snapshot, error) {
	at = s.at(at)

	pol, err := s.policy()
	if err != nil {
		return Snapshot{}, err
	}
	p, c, err := s.load(userID, pol)
	if err != nil {
		return Snapshot{}, err
	}

	trend, err := s.moodTrend(userID)
	if err != nil {
		return Snapshot{}, err
	}

	projected := growth.Decay(p, at)
	snap := Snapshot{
		Plant:     projected,
		Health:    growth.StatusForHealth(projected.HealthScore),
		Cooldowns: pol.ledger.Cooldowns(projected, at),
		Mood:      projected.LastUnifiedMood,
		Neglect:   pol.monitor.Status(c, projected),
		Trend:     trend,
	}
	if snap.Mood != nil {
		snap.Recommendations = mood.Recommendations(*snap.Mood)
	}
	return snap, nil
}

// moodTrend reads recent mood-driven updates oldest first
func (s *Service) moodTrend(userID string) (mood.TrendReport, error) {
	logs, err := s.store.GetActivityLogsByType(userID, models.ActivityMoodGrowth, trendHistory)
	if err != nil {
		return mood.TrendReport{}, fmt.Errorf("failed to load activity logs: %w", err)
	}
	scores := make([]float64, 0, len(logs))
	for _, l := range logs {
		scores = append(scores, l.Value)
	}
	for i, j := 0, len(scores)-1; i < j; i, j = i+1, j-1 {
		scores[i], scores[j] = scores[j], scores[i]
	}
	return mood.AnalyzeTrend(scores), nil
}

// History returns the user's activity logs, newest first
func (s *Service) History(userID string, limit int) ([]models.ActivityLog, error) {
	logs, err := s.store.GetActivityLogs(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity logs: %w", err)
	}
	return logs, nil
}

// PruneHistory deletes activity logs older than before
func (s *Service) PruneHistory(before time.Time) (int64, error) {
	n, err := s.store.PruneActivityLogs(before)
	if err != nil {
		return 0, err
	}
	return n, nil
}
