package mood

import (
	"github.com/montanaflynn/stats"

	"github.com/julianstephens/plantpal/internal/constants"
)

// Trend describes the direction of recent mood scores
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// TrendReport summarizes recent mood history
type TrendReport struct {
	Trend        Trend   `json:"trend"`
	RecentMean   float64 `json:"recent_mean"`
	PreviousMean float64 `json:"previous_mean"`
	Samples      int     `json:"samples"`
}

// AnalyzeTrend compares the newest window of scores with the window before it.
// scores must be ordered oldest first.
func AnalyzeTrend(scores []float64) TrendReport {
	report := TrendReport{Trend: TrendInsufficientData, Samples: len(scores)}
	window := constants.TrendWindow
	if len(scores) < window {
		return report
	}

	recent := stats.Float64Data(scores[len(scores)-window:])
	start := len(scores) - 2*window
	if start < 0 {
		start = 0
	}
	previous := stats.Float64Data(scores[start : len(scores)-window])

	recentMean, _ := stats.Mean(recent)
	report.RecentMean = recentMean
	if len(previous) == 0 {
		report.Trend = TrendStable
		report.PreviousMean = recentMean
		return report
	}

	previousMean, _ := stats.Mean(previous)
	report.PreviousMean = previousMean

	switch {
	case recentMean > previousMean+constants.TrendMargin:
		report.Trend = TrendImproving
	case recentMean < previousMean-constants.TrendMargin:
		report.Trend = TrendDeclining
	default:
		report.Trend = TrendStable
	}
	return report
}
