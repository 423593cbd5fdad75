package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentiscope/sentiscope/pkg/aggregate"
	aggmocks "github.com/sentiscope/sentiscope/pkg/aggregate/mocks"
	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/export"
	"github.com/sentiscope/sentiscope/pkg/scheduler"
	"github.com/sentiscope/sentiscope/server/mocks"
)

func dailyAgg(sub, date string, score float64, pos, neu, neg int) domain.DailyAggregate {
	return domain.DailyAggregate{
		Date:              date,
		Subreddit:         sub,
		SentimentScore:    score,
		PositiveCount:     pos,
		NeutralCount:      neu,
		NegativeCount:     neg,
		TotalCount:        pos + neu + neg,
		AverageConfidence: 0.8,
		TopKeywords:       []domain.KeywordCount{{Keyword: "generics", Count: 2}},
	}
}

func TestServer_aggregateHandler(t *testing.T) {
	f := newFixture(t, "", nil)
	ctx := context.Background()
	require.NoError(t, f.store.UpsertDailyAggregate(ctx, dailyAgg("golang", "2024-03-09", 0.5, 3, 1, 0)))
	require.NoError(t, f.store.UpsertDailyAggregate(ctx, dailyAgg("golang", "2024-02-01", 0.9, 1, 0, 0))) // outside 7d
	require.NoError(t, f.store.SetSetting(ctx, domain.SettingLastUpdated, "2024-03-10T06:00:00Z"))

	get := func(url string) rangeResponse {
		w := request(t, f.srv, http.MethodGet, url, "", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp rangeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	resp := get("/api/v1/sentiment/aggregate?subreddit=golang&timeRange=7d")
	assert.True(t, resp.Success)
	assert.Equal(t, "golang", resp.Data.Subreddit)
	assert.Equal(t, domain.Range7d, resp.Data.TimeRange)
	require.Len(t, resp.Data.Aggregates, 1)
	assert.Equal(t, "2024-03-09", resp.Data.Aggregates[0].Date)
	assert.Equal(t, 4, resp.Data.Summary.TotalVolume)
	assert.InDelta(t, 0.5, resp.Data.Summary.AverageSentiment, 1e-9)
	assert.Equal(t, domain.TrendStable, resp.Data.Summary.TrendDirection)
	assert.Equal(t, "2024-03-10T06:00:00Z", resp.Meta.LastUpdated)
	assert.False(t, resp.Meta.CacheHit)

	// new data is not visible until the cache is purged
	require.NoError(t, f.store.UpsertDailyAggregate(ctx, dailyAgg("golang", "2024-03-10", -0.5, 0, 0, 2)))
	resp = get("/api/v1/dashboard/data?subreddit=golang&range=7d")
	assert.True(t, resp.Meta.CacheHit)
	assert.Len(t, resp.Data.Aggregates, 1)

	f.srv.InvalidateCache()
	resp = get("/api/v1/sentiment/aggregate?subreddit=golang&timeRange=7d")
	assert.False(t, resp.Meta.CacheHit)
	require.Len(t, resp.Data.Aggregates, 2)
	assert.Equal(t, 6, resp.Data.Summary.TotalVolume)
}

func TestServer_aggregateHandler_defaults(t *testing.T) {
	f := newFixture(t, "", nil)
	ctx := context.Background()
	require.NoError(t, f.store.UpsertDailyAggregate(ctx, dailyAgg("golang", "2024-02-20", 0.5, 2, 0, 0)))
	require.NoError(t, f.store.UpsertDailyAggregate(ctx, dailyAgg("rust", "2024-02-20", -0.5, 0, 0, 2)))

	w := request(t, f.srv, http.MethodGet, "/api/v1/sentiment/aggregate", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp rangeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, domain.SubredditAll, resp.Data.Subreddit)
	assert.Equal(t, domain.Range30d, resp.Data.TimeRange)
	require.Len(t, resp.Data.Aggregates, 1)
	assert.Equal(t, 4, resp.Data.Aggregates[0].TotalCount)
	assert.InDelta(t, 0, resp.Data.Aggregates[0].SentimentScore, 1e-9)
	assert.Equal(t, testNow.Format(time.RFC3339), resp.Meta.LastUpdated)
}

func TestServer_aggregateHandler_empty(t *testing.T) {
	f := newFixture(t, "", nil)
	w := request(t, f.srv, http.MethodGet, "/api/v1/sentiment/aggregate?subreddit=rust", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"aggregates":[]`)
	assert.Contains(t, w.Body.String(), `"trendDirection":"stable"`)
}

func TestServer_badParams(t *testing.T) {
	f := newFixture(t, "", nil)
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "bad range", url: "/api/v1/sentiment/aggregate?timeRange=1y", want: "invalid time range"},
		{name: "unknown subreddit", url: "/api/v1/dashboard/data?subreddit=python", want: "unknown subreddit"},
		{name: "drill-down without date", url: "/api/v1/drill-down?subreddit=golang", want: "missing required parameter: date"},
		{name: "drill-down without subreddit", url: "/api/v1/drill-down?date=2024-03-09", want: "missing required parameter: subreddit"},
		{name: "drill-down bad date", url: "/api/v1/drill-down?date=03/09/2024&subreddit=golang", want: "invalid date"},
		{name: "samples bad date", url: "/api/v1/sentiment/samples?date=yesterday", want: "invalid date"},
		{name: "export bad range", url: "/api/v1/export/csv?timeRange=2d", want: "invalid time range"},
		{name: "export unknown subreddit", url: "/api/v1/export/csv?subreddit=all2", want: "unknown subreddit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, f.srv, http.MethodGet, tt.url, "", "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeError(t, w).Error, tt.want)
		})
	}
}

func TestServer_drillDownHandler(t *testing.T) {
	f := newFixture(t, "", nil)
	_, err := f.store.InsertItems(context.Background(), []domain.ScoredItem{
		item("p1", "golang", 9, domain.ItemPost, 5, domain.LabelPositive),
		item("p2", "golang", 9, domain.ItemPost, 50, domain.LabelNeutral),
		item("p3", "rust", 9, domain.ItemPost, 20, domain.LabelNegative),
		item("c1", "golang", 9, domain.ItemComment, 7, domain.LabelNegative),
		item("p4", "golang", 8, domain.ItemPost, 99, domain.LabelPositive), // other day
	})
	require.NoError(t, err)

	t.Run("single subreddit", func(t *testing.T) {
		w := request(t, f.srv, http.MethodGet, "/api/v1/drill-down?date=2024-03-09&subreddit=golang", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "public, s-maxage=300, stale-while-revalidate=600", w.Header().Get("Cache-Control"))

		var resp drillDownResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "2024-03-09", resp.Data.Date)
		require.Len(t, resp.Data.Posts, 2)
		assert.Equal(t, "p2", resp.Data.Posts[0].ID)
		assert.Equal(t, "p1", resp.Data.Posts[1].ID)
		require.Len(t, resp.Data.Comments, 1)
		assert.Equal(t, "c1", resp.Data.Comments[0].ID)
	})

	t.Run("all subreddits merged by score", func(t *testing.T) {
		w := request(t, f.srv, http.MethodGet, "/api/v1/drill-down?date=2024-03-09&subreddit=all", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp drillDownResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Posts, 3)
		assert.Equal(t, []string{"p2", "p3", "p1"},
			[]string{resp.Data.Posts[0].ID, resp.Data.Posts[1].ID, resp.Data.Posts[2].ID})
	})

	t.Run("empty day", func(t *testing.T) {
		w := request(t, f.srv, http.MethodGet, "/api/v1/drill-down?date=2024-01-01&subreddit=rust", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"posts":[]`)
		assert.Contains(t, w.Body.String(), `"comments":[]`)
	})
}

func TestServer_samplesHandler(t *testing.T) {
	f := newFixture(t, "", nil)
	long := item("c1", "rust", 10, domain.ItemComment, 3, domain.LabelPositive)
	long.Content = strings.Repeat("a", 250)
	_, err := f.store.InsertItems(context.Background(), []domain.ScoredItem{
		long,
		item("p1", "golang", 10, domain.ItemPost, 1, domain.LabelNeutral),
		item("p2", "golang", 9, domain.ItemPost, 1, domain.LabelNeutral),
	})
	require.NoError(t, err)

	w := request(t, f.srv, http.MethodGet, "/api/v1/sentiment/samples", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp samplesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, domain.SubredditAll, resp.Data.Subreddit)
	assert.Equal(t, "2024-03-10", resp.Data.Date)
	require.Equal(t, 2, resp.Data.TotalCount)

	byID := map[string]domain.Sample{}
	for _, s := range resp.Data.Samples {
		byID[s.ID] = s
	}
	assert.Equal(t, strings.Repeat("a", 200)+"...", byID["c1"].Content)
	assert.Equal(t, domain.LabelPositive, byID["c1"].Sentiment.Label)
	assert.Equal(t, "content of p1", byID["p1"].Content)

	w = request(t, f.srv, http.MethodGet, "/api/v1/sentiment/samples?subreddit=golang&date=2024-03-09", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Samples, 1)
	assert.Equal(t, "p2", resp.Data.Samples[0].ID)
}

func TestServer_exportCSVHandler(t *testing.T) {
	f := newFixture(t, "", nil)
	ctx := context.Background()
	require.NoError(t, f.store.UpsertDailyAggregate(ctx, dailyAgg("golang", "2024-03-08", 0.25, 1, 2, 1)))
	require.NoError(t, f.store.UpsertDailyAggregate(ctx, dailyAgg("golang", "2024-03-09", 0.5, 3, 1, 0)))

	w := request(t, f.srv, http.MethodGet, "/api/v1/export/csv?subreddit=golang&timeRange=7d", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="sentiment-golang-7d.csv"`, w.Header().Get("Content-Disposition"))

	rows, err := export.ParseCSV(w.Body)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-08", rows[0].Date)
	assert.Equal(t, 4, rows[0].Volume)
	assert.Equal(t, "25.0", rows[0].PositivePercentage.StringFixed(1))
	assert.Equal(t, "0.500", rows[1].SentimentScore.StringFixed(3))
	assert.Equal(t, "75.0", rows[1].PositivePercentage.StringFixed(1))
}

func TestServer_storeErrors(t *testing.T) {
	store := &mocks.StoreMock{
		GetScoredItemsFunc: func(context.Context, string, string) ([]domain.ScoredItem, error) {
			return nil, errors.New("db is gone")
		},
		GetTopItemsFunc: func(context.Context, string, string, domain.ItemType, int) ([]domain.ScoredItem, error) {
			return nil, errors.New("db is gone")
		},
	}
	aggStore := &aggmocks.StoreMock{
		GetDailyAggregatesFunc: func(context.Context, string, string, string) ([]domain.DailyAggregate, error) {
			return nil, errors.New("aggregates unavailable")
		},
	}
	agg := aggregate.NewAggregator(aggStore, aggregate.Options{Subreddits: []string{"golang"}})
	srv := New(testConfig(":8080", ""), store, agg, nil, scheduler.NewJobs(context.Background(), 10), "test", false)

	tests := []struct {
		url  string
		want string
	}{
		{url: "/api/v1/sentiment/samples?subreddit=golang", want: "failed to fetch sample data"},
		{url: "/api/v1/drill-down?subreddit=golang&date=2024-03-09", want: "failed to fetch drill-down data"},
		{url: "/api/v1/sentiment/aggregate?subreddit=golang", want: "failed to fetch sentiment data"},
		{url: "/api/v1/export/csv?subreddit=golang", want: "failed to export data"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := request(t, srv, http.MethodGet, tt.url, "", "")
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tt.want, decodeError(t, w).Error)
		})
	}
	assert.Len(t, store.GetScoredItemsCalls(), 1)
}
