package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// MemoryStore keeps items, aggregates, cached scores and settings in maps.
// It offers the same operations as the sqlite repositories and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string]domain.ScoredItem
	byDay    map[string][]string // subreddit/day to ids in insertion order
	aggs     map[string]domain.DailyAggregate
	cache    map[string]cachedScore
	settings map[string]string
}

type cachedScore struct {
	score domain.SentimentScore
	at    time.Time
}

// NewMemoryStore makes an empty in-memory store
func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{}
	m.init()
	return m
}

func (m *MemoryStore) init() {
	m.items = map[string]domain.ScoredItem{}
	m.byDay = map[string][]string{}
	m.aggs = map[string]domain.DailyAggregate{}
	m.cache = map[string]cachedScore{}
	m.settings = map[string]string{}
}

func dayKey(subreddit, date string) string { return subreddit + "/" + date }

// InsertItems stores new items, already known ids are skipped
func (m *MemoryStore) InsertItems(_ context.Context, items []domain.ScoredItem) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := 0
	for _, item := range items {
		if _, ok := m.items[item.ID]; ok {
			continue
		}
		if !item.Sentiment.Label.Valid() {
			return inserted, fmt.Errorf("insert item %s: invalid label %q", item.ID, item.Sentiment.Label)
		}
		m.items[item.ID] = item
		k := dayKey(item.Subreddit, item.Day())
		m.byDay[k] = append(m.byDay[k], item.ID)
		inserted++
	}
	return inserted, nil
}

// ItemExists checks whether an item with the id is stored
func (m *MemoryStore) ItemExists(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[id]
	return ok, nil
}

// GetScoredItems returns all items of a subreddit for a UTC day, oldest first
func (m *MemoryStore) GetScoredItems(_ context.Context, subreddit, date string) ([]domain.ScoredItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.byDay[dayKey(subreddit, date)]
	res := make([]domain.ScoredItem, 0, len(ids))
	for _, id := range ids {
		res = append(res, m.items[id])
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Timestamp != res[j].Timestamp {
			return res[i].Timestamp < res[j].Timestamp
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// GetTopItems returns items of a type for a day ranked by upstream score, "all" matches every subreddit
func (m *MemoryStore) GetTopItems(_ context.Context, subreddit, date string, itemType domain.ItemType, limit int) ([]domain.ScoredItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.ScoredItem{}
	for _, item := range m.items {
		if item.Type != itemType || item.Day() != date {
			continue
		}
		if subreddit != domain.SubredditAll && item.Subreddit != subreddit {
			continue
		}
		res = append(res, item)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		if res[i].Timestamp != res[j].Timestamp {
			return res[i].Timestamp > res[j].Timestamp
		}
		return res[i].ID < res[j].ID
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// CountItems returns the number of stored items
func (m *MemoryStore) CountItems(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

// UpsertDailyAggregate replaces or inserts the aggregate keyed by (subreddit, date)
func (m *MemoryStore) UpsertDailyAggregate(_ context.Context, agg domain.DailyAggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kw := make([]domain.KeywordCount, len(agg.TopKeywords))
	copy(kw, agg.TopKeywords)
	agg.TopKeywords = kw
	m.aggs[dayKey(agg.Subreddit, agg.Date)] = agg
	return nil
}

// GetDailyAggregates returns aggregates of a subreddit with start <= date <= end, ascending by date
func (m *MemoryStore) GetDailyAggregates(_ context.Context, subreddit, start, end string) ([]domain.DailyAggregate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []domain.DailyAggregate{}
	for _, agg := range m.aggs {
		if agg.Subreddit == subreddit && agg.Date >= start && agg.Date <= end {
			res = append(res, agg)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date < res[j].Date })
	return res, nil
}

// GetSentiment returns a cached score younger than maxAge
func (m *MemoryStore) GetSentiment(_ context.Context, key string, maxAge time.Duration) (domain.SentimentScore, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cache[key]
	if !ok || time.Since(c.at) > maxAge {
		return domain.SentimentScore{}, false, nil
	}
	return c.score, true, nil
}

// PutSentiment stores or refreshes a cached score
func (m *MemoryStore) PutSentiment(_ context.Context, key string, score domain.SentimentScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[key] = cachedScore{score: score, at: time.Now()}
	return nil
}

// PurgeSentiment removes cached scores older than maxAge
func (m *MemoryStore) PurgeSentiment(_ context.Context, maxAge time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, c := range m.cache {
		if time.Since(c.at) > maxAge {
			delete(m.cache, k)
			n++
		}
	}
	return n, nil
}

// GetSetting retrieves a setting value, empty string if not set
func (m *MemoryStore) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings[key], nil
}

// SetSetting stores a setting value
func (m *MemoryStore) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

// Reset drops everything
func (m *MemoryStore) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	return nil
}

// Ping always succeeds
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op
func (m *MemoryStore) Close() error { return nil }
