// Package scheduler runs ingestion of tracked subreddits, periodic polling and
// asynchronous maintenance jobs.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// Poller runs one poll of all tracked subreddits
type Poller interface {
	Poll(ctx context.Context) (RunResult, error)
}

// CachePurger drops scorer cache entries older than maxAge
type CachePurger interface {
	PurgeSentiment(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Config holds scheduler configuration
type Config struct {
	PollInterval    time.Duration
	CacheMaxAge     time.Duration // scorer cache entries older than this are purged, 0 disables cleanup
	CleanupInterval time.Duration
}

// Scheduler manages periodic polling and scorer cache cleanup
type Scheduler struct {
	poller Poller
	purger CachePurger
	cfg    Config
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler instance, purger may be nil
func NewScheduler(poller Poller, purger CachePurger, cfg Config) *Scheduler {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 30 * time.Minute
	}
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = 24 * time.Hour
	}
	return &Scheduler{poller: poller, purger: purger, cfg: cfg}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.pollWorker(ctx)

	if s.purger != nil && s.cfg.CacheMaxAge > 0 {
		s.wg.Add(1)
		go s.cleanupWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with poll interval %v", s.cfg.PollInterval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// pollWorker polls on start and then on every tick
func (s *Scheduler) pollWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	s.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Scheduler) poll(ctx context.Context) {
	started := time.Now()
	res, err := s.poller.Poll(ctx)
	if err != nil {
		lgr.Printf("[ERROR] scheduled poll failed: %v", err)
		return
	}
	failed := 0
	for _, r := range res.Subreddits {
		if r.Error != "" {
			failed++
		}
	}
	lgr.Printf("[INFO] scheduled poll completed in %v, %d subreddits, %d failed, %d aggregates",
		time.Since(started).Round(time.Millisecond), len(res.Subreddits), failed, res.Recompute.Completed)
}

// cleanupWorker purges stale scorer cache entries on every cleanup tick
func (s *Scheduler) cleanupWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.purger.PurgeSentiment(ctx, s.cfg.CacheMaxAge)
			if err != nil {
				lgr.Printf("[WARN] failed to purge sentiment cache: %v", err)
				continue
			}
			if n > 0 {
				lgr.Printf("[INFO] purged %d stale sentiment cache entries", n)
			}
		}
	}
}
