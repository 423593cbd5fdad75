package scheduler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/sentiscope/sentiscope/pkg/aggregate"
	"github.com/sentiscope/sentiscope/pkg/domain"
)

var sampleTexts = []struct {
	text  string
	label domain.Label
}{
	{"Claude Code is amazing! It helps me code so much faster.", domain.LabelPositive},
	{"I love using Claude Code for my projects.", domain.LabelPositive},
	{"Claude Code has some bugs that need fixing.", domain.LabelNegative},
	{"How do I use Claude Code with TypeScript?", domain.LabelNeutral},
	{"Claude Code is the best AI coding assistant!", domain.LabelPositive},
	{"Having issues with Claude Code crashing.", domain.LabelNegative},
	{"Claude Code works well for most tasks.", domain.LabelNeutral},
	{"Great experience with Claude Code so far!", domain.LabelPositive},
	{"Claude Code needs better documentation.", domain.LabelNegative},
	{"Just started using Claude Code.", domain.LabelNeutral},
}

// SampleData fills the store with days of synthetic scored items for every tracked subreddit,
// 5 to 14 items per subreddit and day, and recomputes the covered window.
// The same seed produces the same data.
func SampleData(ctx context.Context, store Store, agg Recomputer, days int, now time.Time, seed uint64) (int, aggregate.RecomputeResult, error) {
	if days <= 0 {
		return 0, aggregate.RecomputeResult{}, fmt.Errorf("days must be positive, got %d", days)
	}
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // synthetic data

	var items []domain.ScoredItem
	for offset := 0; offset < days; offset++ {
		day := now.UTC().AddDate(0, 0, -offset)
		dayStart, _, err := domain.DayBounds(domain.DayOfTime(day))
		if err != nil {
			return 0, aggregate.RecomputeResult{}, err
		}
		date := domain.DayOfTime(day)
		for _, sub := range agg.Subreddits() {
			count := 5 + rnd.IntN(10)
			for i := 0; i < count; i++ {
				sample := sampleTexts[rnd.IntN(len(sampleTexts))]
				ts := min(dayStart+rnd.Int64N(86400), now.Unix())
				itemType := domain.ItemComment
				if rnd.IntN(2) == 0 {
					itemType = domain.ItemPost
				}
				items = append(items, domain.ScoredItem{
					ID:        fmt.Sprintf("sample-%s-%s-%d", sub, date, i),
					Subreddit: sub,
					Timestamp: ts,
					Author:    fmt.Sprintf("user_%d", rnd.IntN(1000)),
					Content:   sample.text,
					Score:     rnd.IntN(100),
					Permalink: fmt.Sprintf("https://reddit.com/r/%s/comments/sample%d", sub, i),
					Type:      itemType,
					Sentiment: sampleScore(rnd, sample.label),
				})
			}
		}
	}

	stored, err := store.InsertItems(ctx, items)
	if err != nil {
		return 0, aggregate.RecomputeResult{}, fmt.Errorf("store sample items: %w", err)
	}
	start := domain.DayOfTime(now.AddDate(0, 0, -(days - 1)))
	rec, err := agg.RecomputeRange(ctx, start, domain.DayOfTime(now), nil, nil)
	if err != nil {
		return stored, rec, fmt.Errorf("recompute sample window: %w", err)
	}
	lgr.Printf("[INFO] sample data: %d items over %d days", stored, days)
	return stored, rec, nil
}

// sampleScore makes a plausible score for the label, probabilities sum to 1
func sampleScore(rnd *rand.Rand, label domain.Label) domain.SentimentScore {
	var pos, neu, neg float64
	switch label {
	case domain.LabelPositive:
		pos, neu, neg = 0.6+rnd.Float64()*0.4, rnd.Float64()*0.2, rnd.Float64()*0.2
	case domain.LabelNegative:
		pos, neu, neg = rnd.Float64()*0.2, rnd.Float64()*0.2, 0.6+rnd.Float64()*0.4
	default:
		pos, neu, neg = rnd.Float64()*0.3, 0.4+rnd.Float64()*0.3, rnd.Float64()*0.3
	}
	sum := pos + neu + neg
	return domain.SentimentScore{
		Label:      label,
		Confidence: 0.6 + rnd.Float64()*0.4,
		Positive:   pos / sum,
		Neutral:    neu / sum,
		Negative:   neg / sum,
	}
}
