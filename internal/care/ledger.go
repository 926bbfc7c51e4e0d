// Package care records user care actions against a plant.
package care

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/growth"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/utils"
)

var (
	// ErrCooldownActive matches every CooldownError
	ErrCooldownActive = errors.New("care action is on cooldown")
	// ErrUnknownAction is returned for an action name that is not supported
	ErrUnknownAction = errors.New("unknown care action")
)

// CooldownError reports a care action attempted too soon
type CooldownError struct {
	Action    models.CareAction
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s is on cooldown for another %s", e.Action, e.Remaining.Round(time.Second))
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

// Nudge is the fixed effect of one care action
type Nudge struct {
	Health int
	Water  int
	Growth int
}

var nudges = map[models.CareAction]Nudge{
	models.CareWater:     {Health: constants.WaterNudgeHealth, Water: constants.WaterNudgeWater},
	models.CareFertilize: {Health: constants.FertilizeNudgeHealth, Growth: constants.FertilizeNudgeGrowth},
	models.CareSunshine:  {Health: constants.SunshineNudgeHealth, Growth: constants.SunshineNudgeGrowth},
}

// NudgeFor returns the effect of action
func NudgeFor(action models.CareAction) (Nudge, bool) {
	n, ok := nudges[action]
	return n, ok
}

// ParseAction validates a care action name
func ParseAction(s string) (models.CareAction, error) {
	action := models.CareAction(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := nudges[action]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return action, nil
}

// Ledger applies care actions with per-action cooldowns
type Ledger struct {
	machine  *growth.Machine
	cooldown time.Duration
}

func NewLedger(machine *growth.Machine, cooldown time.Duration) *Ledger {
	if cooldown < 0 {
		cooldown = 0
	}
	return &Ledger{machine: machine, cooldown: cooldown}
}

// Result is the outcome of a care action
type Result struct {
	Transition growth.Transition
	Log        models.ActivityLog
}

// Perform applies action to p. A rejected action leaves p untouched.
func (l *Ledger) Perform(p models.PlantState, action models.CareAction, now time.Time, today string) (Result, error) {
	nudge, ok := nudges[action]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if remaining := l.Remaining(p, action, now); remaining > 0 {
		return Result{}, &CooldownError{Action: action, Remaining: remaining}
	}

	tr := l.machine.AdjustPoints(p, nudge.Growth)
	next := tr.Plant
	next.HealthScore = models.ClampInt(next.HealthScore+nudge.Health, 0, constants.MaxHealth)
	next.WaterLevel = models.ClampInt(next.WaterLevel+nudge.Water, 0, constants.MaxWater)
	if action == models.CareWater {
		next.LastDecayAt = now
	}
	next.SetLastCareAt(action, now)
	streak, err := UpdateStreak(next, today)
	if err != nil {
		return Result{}, err
	}
	next = streak
	next.UpdatedAt = now
	tr.Plant = next

	note := fmt.Sprintf("%s: health %d, water %d, streak %d", action, next.HealthScore, next.WaterLevel, next.CareStreak)
	if tr.StageChanged() {
		note += fmt.Sprintf(", %s -> %s", tr.From, tr.To)
	}

	return Result{
		Transition: tr,
		Log:        growth.NewLog(next, models.ActivityTypeForCare(action), note, float64(nudge.Health), tr.Delta, now),
	}, nil
}

// Remaining returns how long action stays on cooldown
func (l *Ledger) Remaining(p models.PlantState, action models.CareAction, now time.Time) time.Duration {
	last := p.LastCareAt(action)
	if last == nil {
		return 0
	}
	remaining := l.cooldown - now.Sub(*last)
	if remaining <= 0 {
		return 0
	}
	return min(remaining, l.cooldown)
}

// Cooldowns returns the remaining cooldown of every action
func (l *Ledger) Cooldowns(p models.PlantState, now time.Time) map[models.CareAction]time.Duration {
	out := make(map[models.CareAction]time.Duration, len(models.CareActions))
	for _, a := range models.CareActions {
		out[a] = l.Remaining(p, a, now)
	}
	return out
}

// UpdateStreak advances the care streak for a care action on today
func UpdateStreak(p models.PlantState, today string) (models.PlantState, error) {
	if p.LastCareDate == today {
		return p, nil
	}
	yesterday, err := utils.AddDays(today, -1)
	if err != nil {
		return p, fmt.Errorf("failed to compute care streak: %w", err)
	}
	if p.LastCareDate == yesterday {
		p.CareStreak++
	} else {
		p.CareStreak = 1
	}
	p.LastCareDate = today
	return p, nil
}
