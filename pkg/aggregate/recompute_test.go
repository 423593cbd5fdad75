package aggregate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentiscope/sentiscope/pkg/aggregate/mocks"
	"github.com/sentiscope/sentiscope/pkg/domain"
)

func TestAggregator_RecomputeRange(t *testing.T) {
	ms := newMemStore()
	ms.items["a/2024-01-02"] = []domain.ScoredItem{scored("x", 1704153600, domain.LabelPositive, 0.9, 0.05, 0.05, 1, "hello world")}
	store := ms.mock()
	agg := NewAggregator(store, Options{Subreddits: []string{"a", "b"}, Workers: 3})

	var mu sync.Mutex
	var progress []int
	res, err := agg.RecomputeRange(context.Background(), "2024-01-01", "2024-01-03", nil, func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 6, total)
		progress = append(progress, completed)
	})
	require.NoError(t, err)

	assert.Equal(t, RecomputeResult{Total: 6, Completed: 6}, res)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, progress)
	assert.Len(t, ms.aggs, 6, "every pair is upserted, empty days included")
	assert.Equal(t, 1, ms.aggs["a/2024-01-02"].TotalCount)
	assert.Equal(t, 0, ms.aggs["b/2024-01-02"].TotalCount)
}

func TestAggregator_RecomputeRangeOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	store := &mocks.StoreMock{
		GetScoredItemsFunc: func(_ context.Context, subreddit, date string) ([]domain.ScoredItem, error) {
			mu.Lock()
			order = append(order, date+"/"+subreddit)
			mu.Unlock()
			return nil, nil
		},
		UpsertDailyAggregateFunc: func(context.Context, domain.DailyAggregate) error { return nil },
	}
	agg := NewAggregator(store, Options{Workers: 1})

	_, err := agg.RecomputeRange(context.Background(), "2024-01-01", "2024-01-02", []string{"x", "y"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01/x", "2024-01-01/y", "2024-01-02/x", "2024-01-02/y"}, order)
}

func TestAggregator_RecomputeRangeContinuesOnFailure(t *testing.T) {
	store := &mocks.StoreMock{
		GetScoredItemsFunc: func(_ context.Context, subreddit, date string) ([]domain.ScoredItem, error) {
			if subreddit == "bad" && date == "2024-01-02" {
				return nil, errors.New("store unavailable")
			}
			return nil, nil
		},
		UpsertDailyAggregateFunc: func(context.Context, domain.DailyAggregate) error { return nil },
	}
	agg := NewAggregator(store, Options{Workers: 2})

	calls := 0
	res, err := agg.RecomputeRange(context.Background(), "2024-01-01", "2024-01-03", []string{"good", "bad"},
		func(int, int) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 6, res.Completed)
	assert.Equal(t, 6, calls)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "bad", res.Failed[0].Subreddit)
	assert.Equal(t, "2024-01-02", res.Failed[0].Date)
	assert.Contains(t, res.Failed[0].Err, "store unavailable")
	assert.Len(t, store.UpsertDailyAggregateCalls(), 5)
}

func TestAggregator_RecomputeRangeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &mocks.StoreMock{
		GetScoredItemsFunc: func(context.Context, string, string) ([]domain.ScoredItem, error) {
			cancel()
			return nil, nil
		},
		UpsertDailyAggregateFunc: func(context.Context, domain.DailyAggregate) error { return nil },
	}
	agg := NewAggregator(store, Options{Workers: 1})

	res, err := agg.RecomputeRange(ctx, "2024-01-01", "2024-01-10", []string{"a"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, res.Total)
	assert.Less(t, res.Completed, 10)
}

func TestAggregator_RecomputeRangeInvalid(t *testing.T) {
	agg := NewAggregator(&mocks.StoreMock{}, Options{})
	_, err := agg.RecomputeRange(context.Background(), "2024-01-05", "2024-01-01", []string{"a"}, nil)
	require.Error(t, err)
	_, err = agg.RecomputeRange(context.Background(), "nope", "2024-01-01", []string{"a"}, nil)
	require.Error(t, err)
}
