// Package growth owns a plant's stage and growth points.
//
// Stages advance seedling -> sprout -> bloom by growth points. Wilt is entered
// only through Wilt (the neglect path) and left only into seedling, once the
// plant has regained enough recovery points. Bloom does not fall back on low
// mood alone.
package growth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/models"
)

// Thresholds configure stage transitions
type Thresholds struct {
	Sprout       int // seedling -> sprout
	Bloom        int // sprout -> bloom
	WiltRecovery int // recovery points needed to leave wilt
}

// ThresholdsFromSettings reads the stage thresholds from settings
func ThresholdsFromSettings(s models.Settings) Thresholds {
	return Thresholds{
		Sprout:       s.SproutThreshold,
		Bloom:        s.BloomThreshold,
		WiltRecovery: s.WiltRecoveryPoints,
	}
}

// Machine applies mood deltas and stage rules. It is safe for concurrent use.
type Machine struct {
	t Thresholds
}

// NewMachine returns a machine for t. Out-of-order thresholds are repaired so
// stage evaluation stays well defined.
func NewMachine(t Thresholds) *Machine {
	if t.Sprout < 1 {
		t.Sprout = 1
	}
	if t.Bloom <= t.Sprout {
		t.Bloom = t.Sprout + 1
	}
	if t.WiltRecovery < 1 {
		t.WiltRecovery = 1
	}
	return &Machine{t: t}
}

func (m *Machine) Thresholds() Thresholds {
	return m.t
}

// Transition is the outcome of one state machine step
type Transition struct {
	Plant    models.PlantState
	RawDelta int // delta before wilt halving
	Delta    int // points actually added (negative when deducted)
	From     models.Stage
	To       models.Stage
	Logs     []models.ActivityLog
}

// StageChanged reports whether the step moved the plant to another stage
func (t Transition) StageChanged() bool {
	return t.From != t.To
}

// Delta maps a unified mood score to a growth point delta
func Delta(score float64) int {
	score = models.Clamp01(score)
	switch {
	case score >= 0.8:
		return 3
	case score >= 0.6:
		return 2
	case score >= 0.4:
		return 1
	case score >= 0.2:
		return 0
	default:
		return -1
	}
}

// StageFor is the threshold function of growth points alone
func (m *Machine) StageFor(points int) models.Stage {
	switch {
	case points >= m.t.Bloom:
		return models.StageBloom
	case points >= m.t.Sprout:
		return models.StageSprout
	default:
		return models.StageSeedling
	}
}

func (m *Machine) nextStage(current models.Stage, points, recovery int) models.Stage {
	if current == models.StageWilt {
		if recovery >= m.t.WiltRecovery {
			return models.StageSeedling
		}
		return models.StageWilt
	}
	next := m.StageFor(points)
	if current == models.StageBloom && next != models.StageBloom {
		return models.StageBloom
	}
	return next
}

// AdjustPoints adds delta to the plant's growth points and re-evaluates the
// stage. Positive deltas are halved (rounding up) while wilted, and leaving
// wilt caps the points below the sprout threshold. No logs are
// produced; callers record the step in their own entry.
func (m *Machine) AdjustPoints(p models.PlantState, delta int) Transition {
	if !p.Stage.Valid() {
		p.Stage = m.StageFor(p.GrowthPoints)
	}
	from := p.Stage
	applied := delta
	if p.Stage == models.StageWilt && delta > 0 {
		applied = (delta + 1) / 2
		p.RecoveryPoints += applied
	}

	before := p.GrowthPoints
	p.GrowthPoints = max(0, p.GrowthPoints+applied)
	p.Stage = m.nextStage(p.Stage, p.GrowthPoints, p.RecoveryPoints)
	if from == models.StageWilt && p.Stage != models.StageWilt {
		// Recovery restarts as a seedling, so points cannot exceed its band
		p.RecoveryPoints = 0
		p.GrowthPoints = min(p.GrowthPoints, m.t.Sprout-1)
	}

	return Transition{
		Plant:    p,
		RawDelta: delta,
		Delta:    p.GrowthPoints - before,
		From:     from,
		To:       p.Stage,
	}
}

// Apply runs one mood-driven step: growth delta, stage re-evaluation and a
// small health nudge. It logs the delta and, when the stage moved, the change.
func (m *Machine) Apply(p models.PlantState, u models.UnifiedMood, now time.Time) Transition {
	u.Score = models.Clamp01(u.Score)
	u.Confidence = models.Clamp01(u.Confidence)

	tr := m.AdjustPoints(p, Delta(u.Score))
	tr.Plant.HealthScore = models.ClampInt(tr.Plant.HealthScore+MoodHealthNudge(u.Score), 0, constants.MaxHealth)
	unified := u
	unified.Sources = append([]models.MoodSource(nil), u.Sources...)
	tr.Plant.LastUnifiedMood = &unified
	tr.Plant.UpdatedAt = now

	note := fmt.Sprintf("%s mood (%.2f) %+d", u.Label, u.Score, tr.Delta)
	if tr.Delta != tr.RawDelta {
		note += fmt.Sprintf(" (%+d before wilt recovery)", tr.RawDelta)
	}
	tr.Logs = append(tr.Logs, NewLog(tr.Plant, models.ActivityMoodGrowth, note, u.Score, tr.Delta, now))
	if tr.StageChanged() {
		tr.Logs = append(tr.Logs, StageChangeLog(tr, now))
	}
	return tr
}

// Wilt forces the plant into wilt and deducts penalty points. Recovery
// progress restarts from zero.
func (m *Machine) Wilt(p models.PlantState, penalty int, now time.Time) Transition {
	from := p.Stage
	before := p.GrowthPoints
	p.GrowthPoints = max(0, p.GrowthPoints-max(0, penalty))
	p.Stage = models.StageWilt
	p.RecoveryPoints = 0
	p.UpdatedAt = now
	return Transition{
		Plant:    p,
		RawDelta: -penalty,
		Delta:    p.GrowthPoints - before,
		From:     from,
		To:       p.Stage,
	}
}

// StageChangeLog records a stage transition
func StageChangeLog(tr Transition, now time.Time) models.ActivityLog {
	return NewLog(tr.Plant, models.ActivityStageChange,
		fmt.Sprintf("%s -> %s", tr.From, tr.To), float64(tr.Plant.GrowthPoints), 0, now)
}

// NewLog builds an activity log entry for p
func NewLog(p models.PlantState, kind models.ActivityType, note string, value float64, impact int, now time.Time) models.ActivityLog {
	return models.ActivityLog{
		ID:           uuid.New().String(),
		PlantID:      p.ID,
		UserID:       p.UserID,
		ActivityType: kind,
		Note:         note,
		Value:        value,
		GrowthImpact: impact,
		CreatedAt:    now,
	}
}
