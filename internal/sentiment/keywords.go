package sentiment

import (
	"math"
	"strings"
	"unicode"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/models"
)

var (
	positiveWords = []string{
		"happy", "joy", "love", "good", "great", "amazing", "wonderful", "excited",
		"fantastic", "awesome", "excellent", "perfect", "beautiful", "grateful",
		"blessed", "content", "peaceful", "cheerful", "delighted", "thrilled",
		"ecstatic", "optimistic", "hopeful", "proud", "accomplished",
	}
	negativeWords = []string{
		"sad", "bad", "awful", "terrible", "hate", "angry", "frustrated", "depressed",
		"worried", "stressed", "horrible", "disgusting", "anxious", "upset",
		"disappointed", "lonely", "hurt", "pain", "difficult", "hard", "struggle",
		"problem", "issue", "concern",
	}
	neutralWords = []string{
		"okay", "fine", "normal", "usual", "regular", "typical", "average",
		"ordinary", "standard", "common",
	}
)

// KeywordScorer is the deterministic last-resort scorer
type KeywordScorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
	neutral  map[string]struct{}
}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{
		positive: wordSet(positiveWords),
		negative: wordSet(negativeWords),
		neutral:  wordSet(neutralWords),
	}
}

// Estimate biases the score away from neutral by the positive/negative balance
// and derives confidence from keyword density.
func (k *KeywordScorer) Estimate(text string) models.MoodEstimate {
	words := tokenize(text)
	if len(words) == 0 {
		return models.NeutralEstimate(models.MethodKeywords)
	}

	var pos, neg, neu int
	for _, w := range words {
		if _, ok := k.positive[w]; ok {
			pos++
		} else if _, ok := k.negative[w]; ok {
			neg++
		} else if _, ok := k.neutral[w]; ok {
			neu++
		}
	}

	total := float64(len(words))
	polarity := clampPolarity(float64(pos-neg) / total * constants.KeywordPolarityGain)
	score := models.Clamp01((polarity + 1) / 2)
	density := float64(pos+neg+neu) / total

	return models.MoodEstimate{
		Score:      score,
		Label:      LabelForScore(score),
		Confidence: math.Min(constants.KeywordConfidenceCap, density*constants.KeywordDensityFactor),
		Method:     models.MethodKeywords,
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
