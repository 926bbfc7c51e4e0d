package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/plantpal/internal/audio"
	"github.com/julianstephens/plantpal/internal/growth"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/mood"
	"github.com/julianstephens/plantpal/internal/sentiment"
	"github.com/julianstephens/plantpal/internal/storage"
	"github.com/julianstephens/plantpal/internal/utils"
)

// JournalResult is the outcome of recording a journal entry
type JournalResult struct {
	Plant       models.PlantState
	Estimate    models.MoodEstimate
	Unified     models.UnifiedMood
	Transition  growth.Transition
	Suggestions []string
}

// RecordJournal analyzes text, combines it with a fresh music reading if one
// exists, and grows the plant. A zero at means now.
func (s *Service) RecordJournal(userID, text string, at time.Time) (JournalResult, error) {
	at = s.at(at)
	est := s.sentiment.Analyze(text)

	var res JournalResult
	plant, err := s.mutate(userID, func(p models.PlantState, c models.NeglectCounter, pol policy) (*storage.PlantUpdate, error) {
		p = growth.Decay(p, at)
		p = growth.ObserveJournal(p, est)

		journal := est
		unified := s.aggregator.Combine(&journal, freshMusic(p, at, pol.settings.MusicFreshness()))
		tr := pol.machine.Apply(p, unified, at)

		counter := pol.monitor.RecordActivity(c, utils.DayOf(at, pol.loc))
		res = JournalResult{Estimate: est, Unified: unified, Transition: tr}
		return &storage.PlantUpdate{Plant: tr.Plant, Logs: tr.Logs, Counter: &counter}, nil
	})
	if err != nil {
		return JournalResult{}, err
	}

	res.Plant = plant
	res.Suggestions = sentiment.Suggestions(res.Unified.Label)
	s.metrics.JournalEntry(est.Method, res.Unified.Score)
	s.recordTransition(res.Transition)
	logger.Info("Journal entry recorded",
		"user", userID,
		"method", est.Method,
		"score", res.Unified.Score,
		"label", res.Unified.Label,
		"delta", res.Transition.Delta,
	)
	return res, nil
}

// freshMusic returns the plant's latest music estimate if it is recent enough
// to count toward a journal entry made at at
func freshMusic(p models.PlantState, at time.Time, freshness time.Duration) *models.MoodEstimate {
	if p.LastMusicMood == nil || p.LastMusicAt == nil {
		return nil
	}
	age := at.Sub(*p.LastMusicAt)
	if age < 0 || age > freshness {
		return nil
	}
	e := *p.LastMusicMood
	return &e
}

// ListeningResult is the outcome of recording a listening session
type ListeningResult struct {
	Plant    models.PlantState
	Estimate *models.MoodEstimate
	Bonus    int
}

// RecordListening folds a listening session into the plant's music mood and
// grants the listening health bonus. It never awards growth points.
func (s *Service) RecordListening(userID string, tracks []audio.Features, minutes int, at time.Time) (ListeningResult, error) {
	if len(tracks) == 0 && minutes <= 0 {
		return ListeningResult{}, errors.New("a listening session needs tracks or minutes")
	}
	at = s.at(at)

	var est *models.MoodEstimate
	if len(tracks) > 0 {
		e := s.audio.AnalyzeSession(tracks)
		est = &e
	}

	var res ListeningResult
	plant, err := s.mutate(userID, func(p models.PlantState, _ models.NeglectCounter, _ policy) (*storage.PlantUpdate, error) {
		p = growth.Decay(p, at)
		if est != nil {
			p = growth.ObserveMusic(p, *est, at)
		}
		p, bonus := growth.ApplyListening(p, minutes)
		p.UpdatedAt = at

		note := fmt.Sprintf("%d min listened, health %+d", max(0, minutes), bonus)
		value := 0.0
		if est != nil {
			note = fmt.Sprintf("%s music (%.2f), %s", est.Label, est.Score, note)
			value = est.Score
		}
		res = ListeningResult{Estimate: est, Bonus: bonus}
		log := growth.NewLog(p, models.ActivityMusicBoost, note, value, 0, at)
		return &storage.PlantUpdate{Plant: p, Logs: []models.ActivityLog{log}}, nil
	})
	if err != nil {
		return ListeningResult{}, err
	}

	res.Plant = plant
	logger.Info("Listening session recorded", "user", userID, "tracks", len(tracks), "minutes", minutes, "bonus", res.Bonus)
	return res, nil
}

// Preview is a stateless mood reading
type Preview struct {
	Journal         *models.MoodEstimate
	Music           *models.MoodEstimate
	Unified         models.UnifiedMood
	Suggestions     []string
	Recommendations []string
}

// PreviewMood runs the analyzers and the aggregator without touching any plant
func (s *Service) PreviewMood(text string, tracks []audio.Features) Preview {
	var out Preview
	if sentiment.Clean(text) != "" {
		e := s.sentiment.Analyze(text)
		out.Journal = &e
	}
	if len(tracks) > 0 {
		e := s.audio.AnalyzeSession(tracks)
		out.Music = &e
	}
	out.Unified = s.aggregator.Combine(out.Journal, out.Music)
	out.Suggestions = sentiment.Suggestions(out.Unified.Label)
	out.Recommendations = mood.Recommendations(out.Unified)
	return out
}
