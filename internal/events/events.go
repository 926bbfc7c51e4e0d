// Package events publishes reminder-facing notifications about plant state.
package events

import (
	"context"
	"time"

	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/models"
)

// Kind classifies an event
type Kind string

const (
	// KindNeglectUpdated is emitted after every neglect check that ran
	KindNeglectUpdated Kind = "neglect.updated"
	// KindPlantWilting is emitted when a check forced the plant into wilt
	KindPlantWilting Kind = "plant.wilting"
)

// Event is the JSON payload sent to the reminder subsystem
type Event struct {
	Kind   Kind                 `json:"kind"`
	UserID string               `json:"user_id"`
	Status models.NeglectStatus `json:"status"`
	At     time.Time            `json:"at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// LogPublisher writes events to the application log
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(_ context.Context, events ...Event) error {
	for _, e := range events {
		logger.Info("Reminder event",
			"kind", e.Kind,
			"user", e.UserID,
			"stage", e.Status.Stage,
			"missed_days", e.Status.ConsecutiveMissedDays,
			"warning", e.Status.Warning,
		)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// ForCheck builds the events for one neglect check outcome
func ForCheck(status models.NeglectStatus, wilted bool, at time.Time) []Event {
	out := []Event{{Kind: KindNeglectUpdated, UserID: status.UserID, Status: status, At: at}}
	if wilted {
		out = append(out, Event{Kind: KindPlantWilting, UserID: status.UserID, Status: status, At: at})
	}
	return out
}
