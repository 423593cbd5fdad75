package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/metrics"
)

// ProgressFunc receives the number of finished units and the total after every unit.
// Calls are serialized and completed never decreases.
type ProgressFunc func(completed, total int)

// UnitError is a failed (subreddit, date) computation
type UnitError struct {
	Subreddit string `json:"subreddit"`
	Date      string `json:"date"`
	Err       string `json:"error"`
}

// RecomputeResult summarizes a recompute run
type RecomputeResult struct {
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
	Failed    []UnitError `json:"failed,omitempty"`
}

// RecomputeRange recomputes every (date, subreddit) pair in [start, end] date-major through a
// bounded worker pool. A failed pair is logged and recorded in the result, the rest go on.
// The returned error is set only for invalid input or when ctx is canceled before all units ran.
func (a *Aggregator) RecomputeRange(ctx context.Context, start, end string, subreddits []string, onProgress ProgressFunc) (RecomputeResult, error) {
	if err := validateRange(start, end); err != nil {
		return RecomputeResult{}, err
	}
	days, err := domain.DaysBetween(start, end)
	if err != nil {
		return RecomputeResult{}, err
	}
	if len(subreddits) == 0 {
		subreddits = a.opts.Subreddits
	}

	res := RecomputeResult{Total: len(days) * len(subreddits)}
	lgr.Printf("[INFO] recompute %s..%s for %v, %d units", start, end, subreddits, res.Total)
	started := time.Now()

	var mu sync.Mutex
	done := func(sub, day string, err error) {
		mu.Lock()
		defer mu.Unlock()
		res.Completed++
		if err != nil {
			res.Failed = append(res.Failed, UnitError{Subreddit: sub, Date: day, Err: err.Error()})
		}
		if onProgress != nil {
			onProgress(res.Completed, res.Total)
		}
	}

	var g errgroup.Group
	g.SetLimit(a.opts.Workers)
	canceled := false
	for _, day := range days {
		for _, sub := range subreddits {
			if ctx.Err() != nil {
				canceled = true
				break
			}
			g.Go(func() error {
				_, err := a.ComputeDaily(ctx, sub, day)
				metrics.RecordAggregate(err)
				if err != nil {
					lgr.Printf("[WARN] recompute %s/%s failed: %v", sub, day, err)
				}
				done(sub, day, err)
				return nil
			})
		}
		if canceled {
			break
		}
	}
	_ = g.Wait() // units never return errors
	metrics.RecomputeDuration.Observe(time.Since(started).Seconds())

	lgr.Printf("[INFO] recompute %s..%s finished, %d/%d units, %d failed in %v",
		start, end, res.Completed, res.Total, len(res.Failed), time.Since(started).Round(time.Millisecond))
	if canceled {
		return res, fmt.Errorf("recompute interrupted: %w", ctx.Err())
	}
	return res, nil
}
