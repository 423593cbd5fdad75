package llm

import (
	"context"
	"math"

	"github.com/jonreiter/govader"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// compound polarity beyond which vader text is labeled positive or negative
const vaderThreshold = 0.2

// VaderScorer is an offline lexicon scorer used when no LLM endpoint is configured
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a VADER based scorer
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the sentiment of text. It never fails.
func (v *VaderScorer) Score(_ context.Context, text string) (domain.SentimentScore, error) {
	s := v.analyzer.PolarityScores(text)

	label := domain.LabelNeutral
	switch {
	case s.Compound >= vaderThreshold:
		label = domain.LabelPositive
	case s.Compound <= -vaderThreshold:
		label = domain.LabelNegative
	}
	confidence := 0.5 + math.Abs(s.Compound)/2
	return normalize(label, confidence, s.Positive, s.Neutral, s.Negative), nil
}
