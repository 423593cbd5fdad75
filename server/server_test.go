package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentiscope/sentiscope/pkg/aggregate"
	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/repository"
	"github.com/sentiscope/sentiscope/pkg/scheduler"
	"github.com/sentiscope/sentiscope/server/mocks"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	srv   *Server
	store *repository.MemoryStore
	agg   *aggregate.Aggregator
	jobs  *scheduler.Jobs
}

func testConfig(listen, token string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return listen, 30 * time.Second },
		GetCacheConfigFunc:  func() (time.Duration, int) { return time.Minute, 16 },
		GetAdminTokenFunc:   func() string { return token },
	}
}

// newFixture wires a server over a memory store tracking golang and rust
func newFixture(t *testing.T, token string, ingestor Ingestor) fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	agg := aggregate.NewAggregator(store, aggregate.Options{Subreddits: []string{"golang", "rust"}})
	jobs := scheduler.NewJobs(context.Background(), 10)
	srv := New(testConfig(":8080", token), store, agg, ingestor, jobs, "test", false)
	srv.now = func() time.Time { return testNow }
	return fixture{srv: srv, store: store, agg: agg, jobs: jobs}
}

func request(t *testing.T, h http.Handler, method, url, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, rdr)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	return resp
}

func item(id, sub string, day int, typ domain.ItemType, score int, label domain.Label) domain.ScoredItem {
	sentiment := domain.SentimentScore{Label: label, Confidence: 0.8, Positive: 0.1, Neutral: 0.8, Negative: 0.1}
	switch label {
	case domain.LabelPositive:
		sentiment = domain.SentimentScore{Label: label, Confidence: 0.9, Positive: 0.9, Neutral: 0.05, Negative: 0.05}
	case domain.LabelNegative:
		sentiment = domain.SentimentScore{Label: label, Confidence: 0.7, Positive: 0.1, Neutral: 0.2, Negative: 0.7}
	}
	return domain.ScoredItem{
		ID:        id,
		Subreddit: sub,
		Timestamp: time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC).Unix(),
		Author:    "user_" + id,
		Content:   "content of " + id,
		Score:     score,
		Permalink: "https://reddit.com/r/" + sub + "/comments/" + id,
		Type:      typ,
		Sentiment: sentiment,
	}
}

func TestServer_New(t *testing.T) {
	f := newFixture(t, "", nil)
	assert.NotNil(t, f.srv)
	assert.Equal(t, "test", f.srv.version)
	assert.False(t, f.srv.debug)
	assert.Equal(t, 0, f.srv.cache.Len())
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	err = listener.Close()
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	agg := aggregate.NewAggregator(store, aggregate.Options{Subreddits: []string{"golang"}})
	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port), ""), store, agg, nil,
		scheduler.NewJobs(context.Background(), 10), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start server in background
	go func() {
		_ = srv.Run(ctx)
	}()

	// wait for server to start
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
	assert.Equal(t, "sentiscope", resp.Header.Get("App-Name"))

	// shutdown server
	cancel()
	time.Sleep(100 * time.Millisecond)
}

func TestServer_statusHandler(t *testing.T) {
	f := newFixture(t, "", nil)
	_, err := f.store.InsertItems(context.Background(), []domain.ScoredItem{item("p1", "golang", 9, domain.ItemPost, 1, domain.LabelPositive)})
	require.NoError(t, err)
	require.NoError(t, f.store.SetSetting(context.Background(), domain.SettingLastPoll, "2024-03-10T11:00:00Z"))

	w := request(t, f.srv, http.MethodGet, "/api/v1/status", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "test", status["version"])
	assert.InDelta(t, 1, status["items"], 0.001)
	assert.Equal(t, "2024-03-10T11:00:00Z", status["lastPoll"])
	assert.Equal(t, []any{"golang", "rust"}, status["subreddits"])
	assert.NotEmpty(t, status["time"])
}

func TestServer_metrics(t *testing.T) {
	f := newFixture(t, "", nil)
	w := request(t, f.srv, http.MethodGet, "/api/v1/sentiment/aggregate", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, f.srv, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sentiscope_range_cache_lookups_total")
}

func TestRenderJSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)

	renderJSON(w, req, http.StatusCreated, map[string]string{"key": "value"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{name: "with error", err: errors.New("bad thing"), code: http.StatusBadRequest, want: `{"success":false,"error":"bad thing"}`},
		{name: "nil error", err: nil, code: http.StatusInternalServerError, want: `{"success":false,"error":"unknown error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			renderError(w, req, tt.err, tt.code)
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}
