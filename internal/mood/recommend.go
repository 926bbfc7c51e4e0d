package mood

import "github.com/julianstephens/plantpal/internal/models"

// Recommendations returns up to three care hints for the unified mood
func Recommendations(u models.UnifiedMood) []string {
	var recs []string
	switch tier := u.Label.Tier(); {
	case tier == models.TierDown || u.Score < 0.3:
		recs = []string{
			"Write about what's weighing on you; your plant grows with every entry.",
			"Put on a song you love and let it play through.",
			"Give your plant some water, it could use the company.",
		}
	case tier == models.TierHeavy || u.Score < 0.5:
		recs = []string{
			"A short journal entry can help untangle a busy mind.",
			"Try something upbeat on your next listen.",
			"Check in on your plant's water level.",
		}
	case u.Score > 0.7:
		recs = []string{
			"Your plant is soaking up the good mood.",
			"Note down what made today good while it's fresh.",
		}
	default:
		recs = []string{"Keep your journaling streak going to help your plant grow."}
	}
	if !u.HasSource(models.SourceMusic) && len(recs) < 3 {
		recs = append(recs, "Log a listening session to add music to your mood picture.")
	}
	return recs
}
