package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// AggregateRepository handles daily aggregate rows
type AggregateRepository struct {
	db *sqlx.DB
}

// aggregateSQL represents a daily aggregate for SQL operations
type aggregateSQL struct {
	Subreddit         string      `db:"subreddit"`
	Date              string      `db:"date"`
	SentimentScore    float64     `db:"sentiment_score"`
	PositiveCount     int         `db:"positive_count"`
	NeutralCount      int         `db:"neutral_count"`
	NegativeCount     int         `db:"negative_count"`
	TotalCount        int         `db:"total_count"`
	AverageConfidence float64     `db:"average_confidence"`
	TopKeywords       keywordsSQL `db:"top_keywords"`
}

// keywordsSQL is a JSON array of keyword counts for SQL operations
type keywordsSQL []domain.KeywordCount

// Value implements driver.Valuer for database storage
func (k keywordsSQL) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	data, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (k *keywordsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*k = keywordsSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported keywords type %T", value)
	}
	res := keywordsSQL{}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal keywords: %w", err)
	}
	*k = res
	return nil
}

// NewAggregateRepository creates a new aggregate repository
func NewAggregateRepository(db *sqlx.DB) *AggregateRepository {
	return &AggregateRepository{db: db}
}

// UpsertDailyAggregate replaces or inserts the row keyed by (subreddit, date)
func (r *AggregateRepository) UpsertDailyAggregate(ctx context.Context, agg domain.DailyAggregate) error {
	query := `
		INSERT INTO daily_aggregates (
			subreddit, date, sentiment_score, positive_count, neutral_count, negative_count,
			total_count, average_confidence, top_keywords, updated_at
		) VALUES (
			:subreddit, :date, :sentiment_score, :positive_count, :neutral_count, :negative_count,
			:total_count, :average_confidence, :top_keywords, CURRENT_TIMESTAMP
		)
		ON CONFLICT(subreddit, date) DO UPDATE SET
			sentiment_score = excluded.sentiment_score,
			positive_count = excluded.positive_count,
			neutral_count = excluded.neutral_count,
			negative_count = excluded.negative_count,
			total_count = excluded.total_count,
			average_confidence = excluded.average_confidence,
			top_keywords = excluded.top_keywords,
			updated_at = CURRENT_TIMESTAMP
	`
	row := aggregateSQL{
		Subreddit:         agg.Subreddit,
		Date:              agg.Date,
		SentimentScore:    agg.SentimentScore,
		PositiveCount:     agg.PositiveCount,
		NeutralCount:      agg.NeutralCount,
		NegativeCount:     agg.NegativeCount,
		TotalCount:        agg.TotalCount,
		AverageConfidence: agg.AverageConfidence,
		TopKeywords:       keywordsSQL(agg.TopKeywords),
	}
	return withRetry(ctx, func() error {
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("upsert daily aggregate: %w", err)
		}
		return nil
	})
}

// GetDailyAggregates returns rows of a subreddit with start <= date <= end, ascending by date
func (r *AggregateRepository) GetDailyAggregates(ctx context.Context, subreddit, start, end string) ([]domain.DailyAggregate, error) {
	query := `
		SELECT subreddit, date, sentiment_score, positive_count, neutral_count, negative_count,
			total_count, average_confidence, top_keywords
		FROM daily_aggregates
		WHERE subreddit = ? AND date >= ? AND date <= ?
		ORDER BY date
	`
	var rows []aggregateSQL
	if err := r.db.SelectContext(ctx, &rows, query, subreddit, start, end); err != nil {
		return nil, fmt.Errorf("get daily aggregates: %w", err)
	}

	res := make([]domain.DailyAggregate, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.DailyAggregate{
			Date:              row.Date,
			Subreddit:         row.Subreddit,
			SentimentScore:    row.SentimentScore,
			PositiveCount:     row.PositiveCount,
			NeutralCount:      row.NeutralCount,
			NegativeCount:     row.NegativeCount,
			TotalCount:        row.TotalCount,
			AverageConfidence: row.AverageConfidence,
			TopKeywords:       []domain.KeywordCount(row.TopKeywords),
		})
	}
	return res, nil
}
