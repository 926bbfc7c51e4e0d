package sentiment

import "github.com/julianstephens/plantpal/internal/models"

var suggestionsByTier = map[models.MoodTier][]string{
	models.TierDown: {
		"Write down one thing that felt heavy today and one thing that helped, however small.",
		"Name someone you could reach out to this week.",
	},
	models.TierHeavy: {
		"What is taking up the most room in your head right now?",
		"Describe a place where you feel at ease.",
	},
	models.TierSteady: {
		"What did an ordinary moment today look like?",
		"Is there something you're looking forward to?",
	},
	models.TierBright: {
		"What went well today, and what part did you play in it?",
		"Who would you like to share today's good news with?",
	},
	models.TierThriving: {
		"Capture what made today great so you can come back to it.",
		"How could you pass some of this energy on tomorrow?",
	},
}

// Suggestions returns journaling prompts that fit the mood label's tier
func Suggestions(label models.MoodLabel) []string {
	src := suggestionsByTier[label.Tier()]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
