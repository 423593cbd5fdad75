package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// ItemRepository handles scored item operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents a scored item for SQL operations
type itemSQL struct {
	ID         string  `db:"id"`
	Subreddit  string  `db:"subreddit"`
	Day        string  `db:"day"`
	Timestamp  int64   `db:"timestamp"`
	Author     string  `db:"author"`
	Content    string  `db:"content"`
	Score      int     `db:"score"`
	Permalink  string  `db:"permalink"`
	Type       string  `db:"type"`
	Label      string  `db:"label"`
	Confidence float64 `db:"confidence"`
	Positive   float64 `db:"positive"`
	Neutral    float64 `db:"neutral"`
	Negative   float64 `db:"negative"`
}

const itemColumns = `id, subreddit, day, timestamp, author, content, score, permalink, type,
	label, confidence, positive, neutral, negative`

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// InsertItems stores items in one transaction. Items already stored are left untouched,
// so repeated delivery of the same item is harmless. Returns the number of new rows.
func (r *ItemRepository) InsertItems(ctx context.Context, items []domain.ScoredItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := `INSERT INTO scored_items (` + itemColumns + `) VALUES (
		:id, :subreddit, :day, :timestamp, :author, :content, :score, :permalink, :type,
		:label, :confidence, :positive, :neutral, :negative
	) ON CONFLICT(id) DO NOTHING`

	var inserted int
	err := withRetry(ctx, func() error {
		inserted = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin insert items: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		for _, item := range items {
			res, err := tx.NamedExecContext(ctx, query, toItemSQL(item))
			if err != nil {
				return fmt.Errorf("insert item %s: %w", item.ID, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit items: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// ItemExists checks whether an item with the id is already stored
func (r *ItemRepository) ItemExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM scored_items WHERE id = ?)", id)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

// GetScoredItems returns all items of a subreddit for a UTC day, oldest first
func (r *ItemRepository) GetScoredItems(ctx context.Context, subreddit, date string) ([]domain.ScoredItem, error) {
	var rows []itemSQL
	query := `SELECT ` + itemColumns + ` FROM scored_items WHERE subreddit = ? AND day = ? ORDER BY timestamp, id`
	if err := r.db.SelectContext(ctx, &rows, query, subreddit, date); err != nil {
		return nil, fmt.Errorf("get scored items: %w", err)
	}
	return toDomainItems(rows), nil
}

// GetTopItems returns items of the given type for a day ranked by upstream score.
// The "all" subreddit matches every subreddit.
func (r *ItemRepository) GetTopItems(ctx context.Context, subreddit, date string, itemType domain.ItemType, limit int) ([]domain.ScoredItem, error) {
	query := `SELECT ` + itemColumns + ` FROM scored_items WHERE day = ? AND type = ?`
	args := []any{date, string(itemType)}
	if subreddit != domain.SubredditAll {
		query += ` AND subreddit = ?`
		args = append(args, subreddit)
	}
	query += ` ORDER BY score DESC, timestamp DESC, id LIMIT ?`
	args = append(args, limit)

	var rows []itemSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get top items: %w", err)
	}
	return toDomainItems(rows), nil
}

// CountItems returns the number of stored items
func (r *ItemRepository) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM scored_items"); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

func toItemSQL(item domain.ScoredItem) itemSQL {
	return itemSQL{
		ID:         item.ID,
		Subreddit:  item.Subreddit,
		Day:        item.Day(),
		Timestamp:  item.Timestamp,
		Author:     item.Author,
		Content:    item.Content,
		Score:      item.Score,
		Permalink:  item.Permalink,
		Type:       string(item.Type),
		Label:      string(item.Sentiment.Label),
		Confidence: item.Sentiment.Confidence,
		Positive:   item.Sentiment.Positive,
		Neutral:    item.Sentiment.Neutral,
		Negative:   item.Sentiment.Negative,
	}
}

func toDomainItems(rows []itemSQL) []domain.ScoredItem {
	res := make([]domain.ScoredItem, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.ScoredItem{
			ID:        row.ID,
			Subreddit: row.Subreddit,
			Timestamp: row.Timestamp,
			Author:    row.Author,
			Content:   row.Content,
			Score:     row.Score,
			Permalink: row.Permalink,
			Type:      domain.ItemType(row.Type),
			Sentiment: domain.SentimentScore{
				Label:      domain.Label(row.Label),
				Confidence: row.Confidence,
				Positive:   row.Positive,
				Neutral:    row.Neutral,
				Negative:   row.Negative,
			},
		})
	}
	return res
}
