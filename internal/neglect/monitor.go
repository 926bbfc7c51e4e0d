// Package neglect tracks days without journaling and wilts neglected plants.
package neglect

import (
	"fmt"
	"time"

	"github.com/julianstephens/plantpal/internal/growth"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/utils"
)

// Config holds the neglect policy
type Config struct {
	WiltThreshold int // missed days before wilting
	PenaltyUnit   int // points deducted per missed day
}

// ConfigFromSettings reads the neglect policy from settings
func ConfigFromSettings(s models.Settings) Config {
	return Config{WiltThreshold: s.WiltThreshold, PenaltyUnit: s.NeglectPenaltyUnit}
}

// Monitor runs the daily neglect check
type Monitor struct {
	machine *growth.Machine
	cfg     Config
}

func NewMonitor(machine *growth.Machine, cfg Config) *Monitor {
	if cfg.WiltThreshold < 1 {
		cfg.WiltThreshold = 1
	}
	if cfg.PenaltyUnit < 0 {
		cfg.PenaltyUnit = 0
	}
	return &Monitor{machine: machine, cfg: cfg}
}

// NewCounter returns a counter that treats day as the last qualifying day
func (m *Monitor) NewCounter(userID, day string) models.NeglectCounter {
	return models.NeglectCounter{
		UserID:             userID,
		LastQualifyingDate: day,
		WiltThreshold:      m.cfg.WiltThreshold,
	}
}

// RecordActivity marks day as a qualifying (journaling) day
func (m *Monitor) RecordActivity(c models.NeglectCounter, day string) models.NeglectCounter {
	if c.LastQualifyingDate == "" || day > c.LastQualifyingDate {
		c.LastQualifyingDate = day
	}
	c.ConsecutiveMissedDays = 0
	if c.WiltThreshold < 1 {
		c.WiltThreshold = m.cfg.WiltThreshold
	}
	return c
}

// Result is the outcome of a daily check
type Result struct {
	Counter    models.NeglectCounter
	Transition growth.Transition
	Checked    bool // false when today was already checked
	Wilted     bool // the plant wilted during this check
}

// Check runs the daily check for today. Running it again on the same day is a no-op.
func (m *Monitor) Check(c models.NeglectCounter, p models.PlantState, today string, now time.Time) (Result, error) {
	res := Result{
		Counter:    c,
		Transition: growth.Transition{Plant: p, From: p.Stage, To: p.Stage},
	}
	if c.LastCheckedDate == today {
		return res, nil
	}
	if c.WiltThreshold < 1 {
		c.WiltThreshold = m.cfg.WiltThreshold
	}

	qualified := false
	missedSince := 0
	if c.LastQualifyingDate != "" {
		gap, err := utils.DaysBetween(c.LastQualifyingDate, today)
		if err != nil {
			return res, fmt.Errorf("failed to compare neglect dates: %w", err)
		}
		qualified = gap <= 1
		missedSince = gap - 1
	}

	if qualified {
		c.ConsecutiveMissedDays = 0
	} else {
		// A skipped check must not undercount the streak.
		c.ConsecutiveMissedDays = max(c.ConsecutiveMissedDays+1, missedSince)
	}
	c.LastCheckedDate = today
	res.Counter = c
	res.Checked = true

	if c.ConsecutiveMissedDays < c.WiltThreshold || p.Stage == models.StageWilt {
		return res, nil
	}

	penalty := c.ConsecutiveMissedDays * m.cfg.PenaltyUnit
	tr := m.machine.Wilt(p, penalty, now)
	note := fmt.Sprintf("no journal for %d days, %d points lost", c.ConsecutiveMissedDays, -tr.Delta)
	tr.Logs = append(tr.Logs, growth.NewLog(tr.Plant, models.ActivityWilting, note, float64(c.ConsecutiveMissedDays), tr.Delta, now))
	res.Transition = tr
	res.Wilted = true
	return res, nil
}

// Status is the reminder view of a plant's neglect state
func (m *Monitor) Status(c models.NeglectCounter, p models.PlantState) models.NeglectStatus {
	threshold := c.WiltThreshold
	if threshold < 1 {
		threshold = m.cfg.WiltThreshold
	}
	wilting := p.Stage == models.StageWilt
	return models.NeglectStatus{
		UserID:                p.UserID,
		Stage:                 p.Stage,
		Wilting:               wilting,
		Warning:               !wilting && c.ConsecutiveMissedDays > 0 && c.ConsecutiveMissedDays >= threshold-1,
		ConsecutiveMissedDays: c.ConsecutiveMissedDays,
		WiltThreshold:         threshold,
		LastQualifyingDate:    c.LastQualifyingDate,
	}
}
