package constants

const (
	// Neutral mood used whenever a source has nothing to say
	NeutralScore = 0.5

	// Source weights for the unified mood. They must sum to 1.0.
	JournalWeight = 0.6
	MusicWeight   = 0.4

	// Rolling score EMA weights (new sample vs. existing average). Each pair must sum to 1.0.
	JournalNewWeight      = 0.7
	JournalExistingWeight = 0.3
	MusicNewWeight        = 0.6
	MusicExistingWeight   = 0.4

	// Text confidence shaping
	SubjectivityConfidenceBoost = 0.2
	CompoundConfidenceBoost     = 0.1
	KeywordConfidenceCap        = 0.8
	KeywordDensityFactor        = 2.0
	KeywordPolarityGain         = 0.8

	// Audio descriptor weights. They must sum to 1.0.
	ValenceWeight      = 0.4
	EnergyWeight       = 0.3
	DanceabilityWeight = 0.2
	TempoWeight        = 0.1

	TempoMinBPM         = 60.0
	TempoMaxBPM         = 200.0
	DefaultTempoBPM     = 120.0
	MinAudioConfidence  = 0.3
	TrendWindow         = 3
	TrendMargin         = 0.1
	MusicHealthPerMin   = 0.5
	MaxMusicHealthBonus = 5
)

func init() {
	if JournalWeight+MusicWeight != 1.0 {
		panic("JournalWeight and MusicWeight must sum to 1.0")
	}
	if JournalNewWeight+JournalExistingWeight != 1.0 || MusicNewWeight+MusicExistingWeight != 1.0 {
		panic("rolling mood EMA weights must sum to 1.0")
	}
	if ValenceWeight+EnergyWeight+DanceabilityWeight+TempoWeight != 1.0 {
		panic("audio descriptor weights must sum to 1.0")
	}
}
