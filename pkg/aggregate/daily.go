package aggregate

import (
	"context"
	"fmt"
	"sort"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// ComputeDaily builds the aggregate for one (subreddit, date) from stored items and upserts it.
// Days without items produce a zero aggregate which is stored as well.
func (a *Aggregator) ComputeDaily(ctx context.Context, subreddit, date string) (domain.DailyAggregate, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return domain.DailyAggregate{}, err
	}
	if subreddit == "" || subreddit == domain.SubredditAll {
		return domain.DailyAggregate{}, fmt.Errorf("daily aggregate needs a concrete subreddit, got %q", subreddit)
	}

	items, err := a.store.GetScoredItems(ctx, subreddit, date)
	if err != nil {
		return domain.DailyAggregate{}, fmt.Errorf("get scored items for %s/%s: %w", subreddit, date, err)
	}

	agg := BuildDaily(subreddit, date, items, a.opts.Keywords)
	if err := a.store.UpsertDailyAggregate(ctx, agg); err != nil {
		return domain.DailyAggregate{}, fmt.Errorf("upsert daily aggregate %s/%s: %w", subreddit, date, err)
	}
	return agg, nil
}

// BuildDaily computes the aggregate for a set of items of one subreddit-day.
// Items are ordered by timestamp and id first, so the result does not depend on input order.
func BuildDaily(subreddit, date string, items []domain.ScoredItem, kwOpts KeywordOptions) domain.DailyAggregate {
	agg := domain.DailyAggregate{Date: date, Subreddit: subreddit, TopKeywords: []domain.KeywordCount{}}
	if len(items) == 0 {
		return agg
	}

	sorted := make([]domain.ScoredItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Timestamp != sorted[j].Timestamp {
			return sorted[i].Timestamp < sorted[j].Timestamp
		}
		return sorted[i].ID < sorted[j].ID
	})

	var weighted, confidence float64
	for _, item := range sorted {
		switch item.Sentiment.Label {
		case domain.LabelPositive:
			agg.PositiveCount++
		case domain.LabelNegative:
			agg.NegativeCount++
		default:
			agg.NeutralCount++
		}
		weighted += item.Sentiment.Polarity() * item.Sentiment.Confidence
		confidence += item.Sentiment.Confidence
	}

	n := float64(len(sorted))
	agg.TotalCount = len(sorted)
	agg.SentimentScore = weighted / n // divided by item count, not by the sum of confidences
	agg.AverageConfidence = confidence / n
	agg.TopKeywords = ExtractKeywords(sorted, kwOpts)
	return agg
}
