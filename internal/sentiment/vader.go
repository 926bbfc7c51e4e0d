package sentiment

import (
	"fmt"

	"github.com/jonreiter/govader"
)

// minSubjectivity is the share of sentiment-bearing tokens the lexical scorer
// needs before its subjectivity is trusted as a confidence signal.
const minSubjectivity = 0.05

// VaderScorer wraps a VADER lexicon analyzer. In lexical mode it reports
// subjectivity as the non-neutral share of the text; in compound mode it only
// reports the compound polarity.
type VaderScorer struct {
	analyzer     *govader.SentimentIntensityAnalyzer
	subjectivity bool
}

// NewLexicalScorer returns the first-choice scorer (polarity and subjectivity)
func NewLexicalScorer(a *govader.SentimentIntensityAnalyzer) *VaderScorer {
	return &VaderScorer{analyzer: a, subjectivity: true}
}

// NewCompoundScorer returns the second-choice scorer (compound polarity only)
func NewCompoundScorer(a *govader.SentimentIntensityAnalyzer) *VaderScorer {
	return &VaderScorer{analyzer: a}
}

// NewDefaultAnalyzer loads the VADER lexicon once and wires both scorers
func NewDefaultAnalyzer() *Analyzer {
	vader := govader.NewSentimentIntensityAnalyzer()
	return NewAnalyzer(NewLexicalScorer(vader), NewCompoundScorer(vader))
}

func (v *VaderScorer) Name() string {
	if v.subjectivity {
		return "vader"
	}
	return "vader_compound"
}

func (v *VaderScorer) Score(text string) (Reading, error) {
	if v == nil || v.analyzer == nil {
		return Reading{}, ErrUnavailable
	}

	scores := v.analyzer.PolarityScores(text)

	if !v.subjectivity {
		if scores.Compound == 0 {
			return Reading{}, fmt.Errorf("%w: no compound signal", ErrUnavailable)
		}
		return Reading{Polarity: scores.Compound}, nil
	}

	subjectivity := 1 - scores.Neutral
	if subjectivity < minSubjectivity {
		return Reading{}, fmt.Errorf("%w: subjectivity %.2f below %.2f", ErrUnavailable, subjectivity, minSubjectivity)
	}
	return Reading{
		Polarity:        scores.Compound,
		Subjectivity:    subjectivity,
		HasSubjectivity: true,
	}, nil
}
