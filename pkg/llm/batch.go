package llm

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/metrics"
)

//go:generate moq -out mocks/text_scorer.go -pkg mocks -skip-ensure -fmt goimports . TextScorer

// TextScorer scores the sentiment of a text
type TextScorer interface {
	Score(ctx context.Context, text string) (domain.SentimentScore, error)
}

// ScoreBatch scores items with at most workers concurrent calls. An item whose scoring
// fails gets the neutral fallback and is counted in failed. Result order matches items.
func ScoreBatch(ctx context.Context, scorer TextScorer, items []domain.RawItem, workers int) (scored []domain.ScoredItem, failed int, err error) {
	if workers <= 0 {
		workers = 1
	}
	scores := make([]domain.SentimentScore, len(items))
	errs := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			scores[i], errs[i] = scorer.Score(gctx, item.Text())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("score batch: %w", err)
	}
	if ctx.Err() != nil {
		return nil, 0, fmt.Errorf("score batch: %w", ctx.Err())
	}

	scored = make([]domain.ScoredItem, 0, len(items))
	for i, item := range items {
		score := scores[i]
		if errs[i] != nil {
			failed++
			metrics.ScoringFailures.Inc()
			lgr.Printf("[WARN] scoring %s failed, using neutral: %v", item.ID, errs[i])
			score = domain.NeutralScore
		}
		scored = append(scored, ToScored(item, score))
	}
	return scored, failed, nil
}

// ToScored attaches a score to a raw item
func ToScored(item domain.RawItem, score domain.SentimentScore) domain.ScoredItem {
	return domain.ScoredItem{
		ID:        item.ID,
		Subreddit: item.Subreddit,
		Timestamp: item.Timestamp,
		Author:    item.Author,
		Content:   item.Text(),
		Score:     item.Score,
		Permalink: item.Permalink,
		Type:      item.Type,
		Sentiment: score,
	}
}
