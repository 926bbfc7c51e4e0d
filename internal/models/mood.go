package models

import (
	"math"
	"sort"

	"github.com/julianstephens/plantpal/internal/constants"
)

// MoodLabel names a discrete mood bucket
type MoodLabel string

const (
	MoodEuphoric   MoodLabel = "euphoric"
	MoodHappy      MoodLabel = "happy"
	MoodUpbeat     MoodLabel = "upbeat"
	MoodEnergetic  MoodLabel = "energetic"
	MoodContent    MoodLabel = "content"
	MoodNeutral    MoodLabel = "neutral"
	MoodCalm       MoodLabel = "calm"
	MoodMelancholy MoodLabel = "melancholy"
	MoodAngry      MoodLabel = "angry"
	MoodSad        MoodLabel = "sad"
	MoodLow        MoodLabel = "low"
)

// MoodTier orders labels from saddest (TierDown) to brightest (TierThriving).
// Labels in the same tier are considered the same bucket.
type MoodTier int

const (
	TierDown MoodTier = iota
	TierHeavy
	TierSteady
	TierBright
	TierThriving
)

var moodTiers = map[MoodLabel]MoodTier{
	MoodSad:        TierDown,
	MoodLow:        TierDown,
	MoodMelancholy: TierHeavy,
	MoodAngry:      TierHeavy,
	MoodNeutral:    TierSteady,
	MoodCalm:       TierSteady,
	MoodContent:    TierBright,
	MoodUpbeat:     TierBright,
	MoodEnergetic:  TierBright,
	MoodHappy:      TierThriving,
	MoodEuphoric:   TierThriving,
}

// Tier returns the bucket of the label. Unknown labels are treated as steady.
func (l MoodLabel) Tier() MoodTier {
	if t, ok := moodTiers[l]; ok {
		return t
	}
	return TierSteady
}

func (t MoodTier) String() string {
	switch t {
	case TierDown:
		return "down"
	case TierHeavy:
		return "heavy"
	case TierSteady:
		return "steady"
	case TierBright:
		return "bright"
	case TierThriving:
		return "thriving"
	default:
		return "unknown"
	}
}

// MoodSource identifies where an estimate came from
type MoodSource string

const (
	SourceJournal MoodSource = "journal"
	SourceMusic   MoodSource = "music"
)

// Analysis methods recorded on estimates
const (
	MethodEmptyText     = "empty_text"
	MethodKeywords      = "keywords"
	MethodNoFeatures    = "no_features"
	MethodAudioFeatures = "audio_features"
	MethodNoSources     = "no_sources"
	MethodWeighted      = "weighted"
)

// MoodEstimate is one source's normalized reading of the user's mood
type MoodEstimate struct {
	Score      float64   `json:"score"`
	Label      MoodLabel `json:"label"`
	Confidence float64   `json:"confidence"`
	Method     string    `json:"method"`
}

// NeutralEstimate is the estimate used when a source has no usable input
func NeutralEstimate(method string) MoodEstimate {
	return MoodEstimate{Score: constants.NeutralScore, Label: MoodNeutral, Confidence: 0, Method: method}
}

// UnifiedMood is the combination of every estimate available at one moment
type UnifiedMood struct {
	Score      float64      `json:"score"`
	Label      MoodLabel    `json:"label"`
	Confidence float64      `json:"confidence"`
	Sources    []MoodSource `json:"sources"`
	Agreement  bool         `json:"agreement"`
}

// HasSource reports whether src contributed to the unified mood
func (u UnifiedMood) HasSource(src MoodSource) bool {
	for _, s := range u.Sources {
		if s == src {
			return true
		}
	}
	return false
}

// SortSources keeps Sources in a stable order for comparisons and storage
func (u *UnifiedMood) SortSources() {
	sort.Slice(u.Sources, func(i, j int) bool { return u.Sources[i] < u.Sources[j] })
}

// Clamp01 bounds v to [0,1]. NaN becomes the neutral score.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return constants.NeutralScore
	}
	return math.Max(0, math.Min(1, v))
}

// ClampInt bounds v to [lo,hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
