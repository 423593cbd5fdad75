// Package aggregate turns sentiment-scored items into daily aggregates, merges them into
// range series and reduces series into dashboard summaries.
package aggregate

import (
	"context"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store is the persistence contract the aggregation pipeline needs
type Store interface {
	GetScoredItems(ctx context.Context, subreddit, date string) ([]domain.ScoredItem, error)
	UpsertDailyAggregate(ctx context.Context, agg domain.DailyAggregate) error
	GetDailyAggregates(ctx context.Context, subreddit, start, end string) ([]domain.DailyAggregate, error)
}

// DefaultTrendThreshold is the hysteresis band for trend detection
const DefaultTrendThreshold = 0.1

// DefaultWorkers limits concurrent recompute units
const DefaultWorkers = 4

// Options configures an Aggregator
type Options struct {
	Subreddits     []string // tracked subreddits, "all" expands to these
	Keywords       KeywordOptions
	TrendThreshold float64
	Workers        int
}

// Aggregator computes, reads and combines daily aggregates on top of a Store
type Aggregator struct {
	store Store
	opts  Options
}

// NewAggregator makes an aggregator, zero options take defaults
func NewAggregator(store Store, opts Options) *Aggregator {
	if opts.Keywords.Stopwords == nil {
		opts.Keywords.Stopwords = NewKeywordOptions(DefaultStopwords(), 0, 0).Stopwords
	}
	if opts.Keywords.MinLength <= 0 {
		opts.Keywords.MinLength = DefaultMinKeywordLength
	}
	if opts.Keywords.TopN <= 0 {
		opts.Keywords.TopN = DefaultTopKeywords
	}
	if opts.TrendThreshold <= 0 {
		opts.TrendThreshold = DefaultTrendThreshold
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Aggregator{store: store, opts: opts}
}

// Subreddits returns the tracked subreddits
func (a *Aggregator) Subreddits() []string {
	res := make([]string, len(a.opts.Subreddits))
	copy(res, a.opts.Subreddits)
	return res
}

// IsTracked reports whether name is a tracked subreddit or the "all" sentinel
func (a *Aggregator) IsTracked(name string) bool {
	if name == domain.SubredditAll {
		return true
	}
	for _, s := range a.opts.Subreddits {
		if s == name {
			return true
		}
	}
	return false
}

// Summarize reduces a series using the configured trend threshold
func (a *Aggregator) Summarize(series []domain.DailyAggregate) domain.DashboardSummary {
	return Summarize(series, a.opts.TrendThreshold)
}
