package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// CacheRepository stores scorer results by content hash
type CacheRepository struct {
	db *sqlx.DB
}

type cacheSQL struct {
	Key        string  `db:"cache_key"`
	Label      string  `db:"label"`
	Confidence float64 `db:"confidence"`
	Positive   float64 `db:"positive"`
	Neutral    float64 `db:"neutral"`
	Negative   float64 `db:"negative"`
	AnalyzedAt int64   `db:"analyzed_at"` // unix seconds
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(db *sqlx.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// GetSentiment returns a cached score younger than maxAge
func (r *CacheRepository) GetSentiment(ctx context.Context, key string, maxAge time.Duration) (domain.SentimentScore, bool, error) {
	var row cacheSQL
	err := r.db.GetContext(ctx, &row, `SELECT cache_key, label, confidence, positive, neutral, negative, analyzed_at
		FROM sentiment_cache WHERE cache_key = ? AND analyzed_at >= ?`, key, time.Now().Add(-maxAge).Unix())
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SentimentScore{}, false, nil
	}
	if err != nil {
		return domain.SentimentScore{}, false, fmt.Errorf("get cached sentiment: %w", err)
	}
	return domain.SentimentScore{
		Label:      domain.Label(row.Label),
		Confidence: row.Confidence,
		Positive:   row.Positive,
		Neutral:    row.Neutral,
		Negative:   row.Negative,
	}, true, nil
}

// PutSentiment stores or refreshes a cached score
func (r *CacheRepository) PutSentiment(ctx context.Context, key string, score domain.SentimentScore) error {
	query := `
		INSERT INTO sentiment_cache (cache_key, label, confidence, positive, neutral, negative, analyzed_at)
		VALUES (:cache_key, :label, :confidence, :positive, :neutral, :negative, :analyzed_at)
		ON CONFLICT(cache_key) DO UPDATE SET
			label = excluded.label,
			confidence = excluded.confidence,
			positive = excluded.positive,
			neutral = excluded.neutral,
			negative = excluded.negative,
			analyzed_at = excluded.analyzed_at
	`
	row := cacheSQL{
		Key:        key,
		Label:      string(score.Label),
		Confidence: score.Confidence,
		Positive:   score.Positive,
		Neutral:    score.Neutral,
		Negative:   score.Negative,
		AnalyzedAt: time.Now().Unix(),
	}
	return withRetry(ctx, func() error {
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("put cached sentiment: %w", err)
		}
		return nil
	})
}

// PurgeSentiment removes cached scores older than maxAge
func (r *CacheRepository) PurgeSentiment(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sentiment_cache WHERE analyzed_at < ?", time.Now().Add(-maxAge).Unix())
	if err != nil {
		return 0, fmt.Errorf("purge sentiment cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purged rows: %w", err)
	}
	return n, nil
}
