package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/sentiscope/sentiscope/pkg/aggregate"
	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/llm"
	"github.com/sentiscope/sentiscope/pkg/metrics"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/recomputer.go -pkg mocks -skip-ensure -fmt goimports . Recomputer

// Source delivers raw posts and comments of a subreddit
type Source interface {
	FetchSince(ctx context.Context, subreddit string, since time.Time) ([]domain.RawItem, error)
}

// Store persists scored items and run markers
type Store interface {
	ItemExists(ctx context.Context, id string) (bool, error)
	InsertItems(ctx context.Context, items []domain.ScoredItem) (int, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Recomputer rebuilds daily aggregates of tracked subreddits
type Recomputer interface {
	Subreddits() []string
	RecomputeRange(ctx context.Context, start, end string, subreddits []string, onProgress aggregate.ProgressFunc) (aggregate.RecomputeResult, error)
}

// IngestConfig configures an Ingestor
type IngestConfig struct {
	Workers      int           // concurrent scoring calls
	PollLookback time.Duration // how far back a poll fetches
	OnUpdate     func()        // called after stored data changed, optional
}

// Ingestor fetches, scores and stores items, then refreshes affected aggregates
type Ingestor struct {
	source Source
	scorer llm.TextScorer
	store  Store
	agg    Recomputer
	cfg    IngestConfig
	now    func() time.Time
}

// SubredditResult reports ingestion of one subreddit
type SubredditResult struct {
	Subreddit     string `json:"subreddit"`
	Fetched       int    `json:"fetched"`
	New           int    `json:"new"`
	Stored        int    `json:"stored"`
	ScoreFailures int    `json:"scoreFailures"`
	Error         string `json:"error,omitempty"`
}

// RunResult reports a poll or backfill run
type RunResult struct {
	Subreddits []SubredditResult         `json:"subreddits"`
	Recompute  aggregate.RecomputeResult `json:"recompute"`
}

// NewIngestor creates an ingestor
func NewIngestor(source Source, scorer llm.TextScorer, store Store, agg Recomputer, cfg IngestConfig) *Ingestor {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.PollLookback <= 0 {
		cfg.PollLookback = 24 * time.Hour
	}
	return &Ingestor{source: source, scorer: scorer, store: store, agg: agg, cfg: cfg, now: time.Now}
}

// PollSubreddit ingests items of one subreddit newer than since and returns the day keys it touched
func (in *Ingestor) PollSubreddit(ctx context.Context, subreddit string, since time.Time) (SubredditResult, []string, error) {
	res := SubredditResult{Subreddit: subreddit}

	raw, err := in.source.FetchSince(ctx, subreddit, since)
	if err != nil {
		return res, nil, fmt.Errorf("fetch %s: %w", subreddit, err)
	}
	res.Fetched = len(raw)

	fresh := make([]domain.RawItem, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		exists, err := in.store.ItemExists(ctx, item.ID)
		if err != nil {
			return res, nil, fmt.Errorf("check item %s: %w", item.ID, err)
		}
		if !exists {
			fresh = append(fresh, item)
		}
	}
	res.New = len(fresh)
	if len(fresh) == 0 {
		return res, nil, nil
	}

	scored, failed, err := llm.ScoreBatch(ctx, in.scorer, fresh, in.cfg.Workers)
	if err != nil {
		return res, nil, err
	}
	res.ScoreFailures = failed

	if res.Stored, err = in.store.InsertItems(ctx, scored); err != nil {
		return res, nil, fmt.Errorf("store items of %s: %w", subreddit, err)
	}

	days := map[string]bool{}
	touched := []string{}
	for _, item := range scored {
		metrics.ItemsIngested.WithLabelValues(subreddit, string(item.Type)).Inc()
		if d := item.Day(); !days[d] {
			days[d] = true
			touched = append(touched, d)
		}
	}
	lgr.Printf("[INFO] ingested %s: fetched %d, new %d, stored %d, scoring failures %d",
		subreddit, res.Fetched, res.New, res.Stored, res.ScoreFailures)
	return res, touched, nil
}

// Poll ingests recent items of every tracked subreddit and recomputes yesterday, today and
// any older day that received items. A failing subreddit is logged and reported, the rest go on.
func (in *Ingestor) Poll(ctx context.Context) (RunResult, error) {
	now := in.now()
	since := now.Add(-in.cfg.PollLookback)
	start := domain.DayOfTime(now.AddDate(0, 0, -1))

	res, earliest := in.ingestAll(ctx, "poll", since)
	if ctx.Err() != nil {
		return res, fmt.Errorf("poll interrupted: %w", ctx.Err())
	}
	if earliest != "" && earliest < start {
		start = earliest
	}

	rec, err := in.agg.RecomputeRange(ctx, start, domain.DayOfTime(now), nil, nil)
	res.Recompute = rec
	if err != nil {
		return res, fmt.Errorf("recompute after poll: %w", err)
	}

	in.mark(ctx, domain.SettingLastPoll, now)
	return res, nil
}

// Backfill ingests up to daysBack days of history for every tracked subreddit and
// recomputes the whole window, reporting recompute progress to onProgress
func (in *Ingestor) Backfill(ctx context.Context, daysBack int, onProgress aggregate.ProgressFunc) (RunResult, error) {
	if daysBack <= 0 {
		return RunResult{}, fmt.Errorf("days back must be positive, got %d", daysBack)
	}
	now := in.now()
	since := now.AddDate(0, 0, -daysBack)

	res, _ := in.ingestAll(ctx, "backfill", since)
	if ctx.Err() != nil {
		return res, fmt.Errorf("backfill interrupted: %w", ctx.Err())
	}

	rec, err := in.agg.RecomputeRange(ctx, domain.DayOfTime(since), domain.DayOfTime(now), nil, onProgress)
	res.Recompute = rec
	if err != nil {
		return res, fmt.Errorf("recompute after backfill: %w", err)
	}

	in.mark(ctx, domain.SettingLastBackfill, now)
	return res, nil
}

// ingestAll polls each tracked subreddit in turn, returning the earliest touched day
func (in *Ingestor) ingestAll(ctx context.Context, kind string, since time.Time) (res RunResult, earliest string) {
	res.Subreddits = []SubredditResult{}
	for _, sub := range in.agg.Subreddits() {
		if ctx.Err() != nil {
			return res, earliest
		}
		subRes, days, err := in.PollSubreddit(ctx, sub, since)
		metrics.RecordIngest(kind, sub, err)
		if err != nil {
			lgr.Printf("[WARN] %s of %s failed: %v", kind, sub, err)
			subRes.Error = err.Error()
		}
		res.Subreddits = append(res.Subreddits, subRes)
		for _, d := range days {
			if earliest == "" || d < earliest {
				earliest = d
			}
		}
	}
	return res, earliest
}

// mark stores the run time and notifies listeners
func (in *Ingestor) mark(ctx context.Context, key string, ts time.Time) {
	value := ts.UTC().Format(time.RFC3339)
	for _, k := range []string{key, domain.SettingLastUpdated} {
		if err := in.store.SetSetting(ctx, k, value); err != nil {
			lgr.Printf("[WARN] failed to save %s: %v", k, err)
		}
	}
	if in.cfg.OnUpdate != nil {
		in.cfg.OnUpdate()
	}
}
