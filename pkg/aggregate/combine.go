package aggregate

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// GetRange returns stored aggregates of a subreddit in [start, end], ascending by date.
// Days without a stored row are absent. The "all" sentinel is served by the combiner
// over the tracked subreddits.
func (a *Aggregator) GetRange(ctx context.Context, subreddit, start, end string) ([]domain.DailyAggregate, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if subreddit == domain.SubredditAll {
		return a.GetCombinedRange(ctx, a.opts.Subreddits, start, end)
	}

	aggs, err := a.store.GetDailyAggregates(ctx, subreddit, start, end)
	if err != nil {
		return nil, fmt.Errorf("get daily aggregates for %s: %w", subreddit, err)
	}
	res := make([]domain.DailyAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Date < start || agg.Date > end {
			continue
		}
		res = append(res, agg)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Date < res[j].Date })
	return res, nil
}

// GetCombinedRange reads every subreddit's range concurrently and merges same-date rows
func (a *Aggregator) GetCombinedRange(ctx context.Context, subreddits []string, start, end string) ([]domain.DailyAggregate, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	for _, sub := range subreddits {
		if sub == domain.SubredditAll {
			return nil, fmt.Errorf("combined range can't include %q", domain.SubredditAll)
		}
	}

	series := make([][]domain.DailyAggregate, len(subreddits))
	g, gctx := errgroup.WithContext(ctx)
	for i, sub := range subreddits {
		g.Go(func() error {
			aggs, err := a.GetRange(gctx, sub, start, end)
			if err != nil {
				return err
			}
			series[i] = aggs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("combined range: %w", err)
	}
	return Combine(a.opts.Keywords.TopN, series...), nil
}

// Combine merges per-subreddit series into one "all" series. For every date present in any
// input, counts are summed, sentiment and confidence are count-weighted means (0 when the
// combined volume is 0) and keyword counts are summed and re-ranked.
func Combine(topN int, series ...[]domain.DailyAggregate) []domain.DailyAggregate {
	byDate := map[string][]domain.DailyAggregate{}
	for _, s := range series {
		for _, agg := range s {
			byDate[agg.Date] = append(byDate[agg.Date], agg)
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	res := make([]domain.DailyAggregate, 0, len(dates))
	for _, d := range dates {
		res = append(res, mergeDay(d, byDate[d], topN))
	}
	return res
}

func mergeDay(date string, rows []domain.DailyAggregate, topN int) domain.DailyAggregate {
	merged := domain.DailyAggregate{Date: date, Subreddit: domain.SubredditAll}
	var weightedScore, weightedConf float64
	keywords := make([][]domain.KeywordCount, 0, len(rows))
	for _, r := range rows {
		merged.PositiveCount += r.PositiveCount
		merged.NeutralCount += r.NeutralCount
		merged.NegativeCount += r.NegativeCount
		merged.TotalCount += r.TotalCount
		weightedScore += r.SentimentScore * float64(r.TotalCount)
		weightedConf += r.AverageConfidence * float64(r.TotalCount)
		keywords = append(keywords, r.TopKeywords)
	}
	if merged.TotalCount > 0 {
		merged.SentimentScore = weightedScore / float64(merged.TotalCount)
		merged.AverageConfidence = weightedConf / float64(merged.TotalCount)
	}
	merged.TopKeywords = MergeKeywords(topN, keywords...)
	return merged
}

func validateRange(start, end string) error {
	from, err := domain.ParseDay(start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	to, err := domain.ParseDay(end)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("end %s is before start %s", end, start)
	}
	return nil
}
