package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentiscope/sentiscope/pkg/config"
	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/llm/mocks"
)

// chatServer returns a test server answering chat completions with the given contents in order,
// repeating the last one when exhausted
func chatServer(t *testing.T, calls *int32, contents ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		}

		n := int(atomic.AddInt32(calls, 1)) - 1
		if n >= len(contents) {
			n = len(contents) - 1
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: contents[n]}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testLLMConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    url + "/v1",
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.3,
		MaxTokens:   500,
		UseJSONMode: true,
		CacheTTL:    time.Hour,
	}
}

func TestScorer_Score(t *testing.T) {
	var calls int32
	srv := chatServer(t, &calls, `{"sentiment":"positive","confidence":0.9,"scores":{"positive":0.8,"neutral":0.15,"negative":0.05}}`)

	scorer := NewScorer(testLLMConfig(srv.URL), nil)
	score, err := scorer.Score(context.Background(), "claude code is great")
	require.NoError(t, err)

	assert.Equal(t, domain.LabelPositive, score.Label)
	assert.InDelta(t, 0.9, score.Confidence, 1e-9)
	assert.InDelta(t, 0.8, score.Positive, 1e-9)
	assert.InDelta(t, 0.05, score.Negative, 1e-9)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestScorer_ScoreRetriesInvalidJSON(t *testing.T) {
	var calls int32
	srv := chatServer(t, &calls,
		"sorry, I can't",
		`Sure! {"sentiment":"negative","confidence":0.7,"scores":{"positive":0.1,"neutral":0.2,"negative":0.7}} hope it helps`)

	scorer := NewScorer(testLLMConfig(srv.URL), nil)
	score, err := scorer.Score(context.Background(), "it keeps crashing")
	require.NoError(t, err)
	assert.Equal(t, domain.LabelNegative, score.Label)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestScorer_ScoreFailsAfterAttempts(t *testing.T) {
	var calls int32
	srv := chatServer(t, &calls, "not json at all")

	scorer := NewScorer(testLLMConfig(srv.URL), nil)
	_, err := scorer.Score(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestScorer_ScoreRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	scorer := NewScorer(testLLMConfig(srv.URL), nil)
	_, err := scorer.Score(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm request failed")
}

func TestScorer_ScoreUsesCache(t *testing.T) {
	var calls int32
	srv := chatServer(t, &calls, `{"sentiment":"neutral","confidence":0.6,"scores":{"positive":0.2,"neutral":0.6,"negative":0.2}}`)

	stored := map[string]domain.SentimentScore{}
	cache := &mocks.CacheMock{
		GetSentimentFunc: func(_ context.Context, key string, maxAge time.Duration) (domain.SentimentScore, bool, error) {
			assert.Equal(t, time.Hour, maxAge)
			s, ok := stored[key]
			return s, ok, nil
		},
		PutSentimentFunc: func(_ context.Context, key string, score domain.SentimentScore) error {
			stored[key] = score
			return nil
		},
	}

	scorer := NewScorer(testLLMConfig(srv.URL), cache)
	first, err := scorer.Score(context.Background(), "How do I use hooks?")
	require.NoError(t, err)
	second, err := scorer.Score(context.Background(), "  how do i use HOOKS?  ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "second call served from cache")
	assert.Len(t, cache.PutSentimentCalls(), 1)
	assert.Len(t, cache.GetSentimentCalls(), 2)
	require.Len(t, stored, 1)
	for k := range stored {
		assert.Len(t, k, 64, "sha256 hex key")
	}
}

func TestScorer_CacheErrorsIgnored(t *testing.T) {
	var calls int32
	srv := chatServer(t, &calls, `{"sentiment":"positive","confidence":1,"scores":{"positive":1,"neutral":0,"negative":0}}`)

	cache := &mocks.CacheMock{
		GetSentimentFunc: func(context.Context, string, time.Duration) (domain.SentimentScore, bool, error) {
			return domain.SentimentScore{}, false, errors.New("db locked")
		},
		PutSentimentFunc: func(context.Context, string, domain.SentimentScore) error {
			return errors.New("db locked")
		},
	}
	score, err := NewScorer(testLLMConfig(srv.URL), cache).Score(context.Background(), "love it")
	require.NoError(t, err)
	assert.Equal(t, domain.LabelPositive, score.Label)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.SentimentScore
		wantErr string
	}{
		{
			name:    "plain object",
			content: `{"sentiment":"negative","confidence":0.8,"scores":{"positive":0.1,"neutral":0.1,"negative":0.8}}`,
			want:    domain.SentimentScore{Label: domain.LabelNegative, Confidence: 0.8, Positive: 0.1, Neutral: 0.1, Negative: 0.8},
		},
		{
			name:    "unnormalized scores",
			content: `{"sentiment":"positive","confidence":0.5,"scores":{"positive":2,"neutral":1,"negative":1}}`,
			want:    domain.SentimentScore{Label: domain.LabelPositive, Confidence: 0.5, Positive: 0.5, Neutral: 0.25, Negative: 0.25},
		},
		{
			name:    "missing label uses argmax",
			content: `{"confidence":1.5,"scores":{"positive":0.1,"neutral":0.2,"negative":0.7}}`,
			want:    domain.SentimentScore{Label: domain.LabelNegative, Confidence: 1, Positive: 0.1, Neutral: 0.2, Negative: 0.7},
		},
		{
			name:    "uppercase label and no scores",
			content: `{"sentiment":"POSITIVE","confidence":0.9}`,
			want:    domain.SentimentScore{Label: domain.LabelPositive, Confidence: 0.9, Positive: 1},
		},
		{
			name:    "nothing usable",
			content: `{"sentiment":"mixed"}`,
			want:    domain.NeutralScore,
		},
		{name: "no object", content: "no idea", wantErr: "no json object found"},
		{name: "broken object", content: "{sentiment: positive}", wantErr: "failed to parse json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.content)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Label, got.Label)
			assert.InDelta(t, tt.want.Confidence, got.Confidence, 1e-9)
			assert.InDelta(t, tt.want.Positive, got.Positive, 1e-9)
			assert.InDelta(t, tt.want.Neutral, got.Neutral, 1e-9)
			assert.InDelta(t, tt.want.Negative, got.Negative, 1e-9)
		})
	}
}

func TestVaderScorer(t *testing.T) {
	v := NewVaderScorer()
	ctx := context.Background()

	pos, err := v.Score(ctx, "I love this tool, it is absolutely amazing and wonderful!")
	require.NoError(t, err)
	assert.Equal(t, domain.LabelPositive, pos.Label)
	assert.Greater(t, pos.Confidence, 0.5)

	neg, err := v.Score(ctx, "This is terrible, awful and I hate it. Worst update ever.")
	require.NoError(t, err)
	assert.Equal(t, domain.LabelNegative, neg.Label)

	neu, err := v.Score(ctx, "The release is on Tuesday.")
	require.NoError(t, err)
	assert.Equal(t, domain.LabelNeutral, neu.Label)

	for _, s := range []domain.SentimentScore{pos, neg, neu} {
		assert.InDelta(t, 1.0, s.Positive+s.Neutral+s.Negative, 1e-9)
		assert.LessOrEqual(t, s.Confidence, 1.0)
	}
}
