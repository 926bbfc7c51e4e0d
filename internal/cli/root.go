package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/plantpal/internal/backup"
	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/engine"
	"github.com/julianstephens/plantpal/internal/events"
	"github.com/julianstephens/plantpal/internal/logger"
	"github.com/julianstephens/plantpal/internal/metrics"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/storage"
	"github.com/julianstephens/plantpal/internal/storage/sqlite"
	"github.com/julianstephens/plantpal/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Engine    *engine.Service
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	UserID    string
}

// PerformAutomaticBackup backs up SQLite storage, logging rather than returning failures
func (c *Context) PerformAutomaticBackup() {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	if _, err := backup.NewManager(store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// StageIcon returns the glyph shown next to a stage
func StageIcon(stage models.Stage) string {
	switch stage {
	case models.StageSeedling:
		return "🌱"
	case models.StageSprout:
		return "🌿"
	case models.StageBloom:
		return "🌸"
	case models.StageWilt:
		return "🥀"
	default:
		return "?"
	}
}

// Meter renders value out of total as a fixed-width bar
func Meter(value, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	value = models.ClampInt(value, 0, total)
	filled := value * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatCooldown renders a remaining cooldown for display
func FormatCooldown(d time.Duration) string {
	if d <= 0 {
		return "ready"
	}
	d = d.Round(time.Minute)
	if d < time.Minute {
		return "<1m"
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// ParseDay validates a YYYY-MM-DD flag value. Empty means today.
func ParseDay(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if _, err := utils.ParseDate(s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected %s)", s, constants.DateFormat)
	}
	return s, nil
}

// ParseTimestamp accepts RFC3339 or YYYY-MM-DD (midnight in loc). Empty means the zero time.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected RFC3339 or %s)", s, constants.DateFormat)
	}
	return t, nil
}
