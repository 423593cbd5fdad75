package llm

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/llm/mocks"
)

func TestScoreBatch(t *testing.T) {
	items := []domain.RawItem{
		{ID: "p1", Subreddit: "golang", Timestamp: 100, Title: "good", Content: "body", Type: domain.ItemPost},
		{ID: "c1", Subreddit: "golang", Timestamp: 200, Content: "fail me", Type: domain.ItemComment},
		{ID: "c2", Subreddit: "golang", Timestamp: 300, Content: "bad", Type: domain.ItemComment},
	}

	var inflight, maxInflight int32
	scorer := &mocks.TextScorerMock{
		ScoreFunc: func(_ context.Context, text string) (domain.SentimentScore, error) {
			n := atomic.AddInt32(&inflight, 1)
			defer atomic.AddInt32(&inflight, -1)
			for {
				m := atomic.LoadInt32(&maxInflight)
				if n <= m || atomic.CompareAndSwapInt32(&maxInflight, m, n) {
					break
				}
			}
			switch {
			case strings.HasPrefix(text, "good"):
				return domain.SentimentScore{Label: domain.LabelPositive, Confidence: 0.9, Positive: 0.9, Neutral: 0.1}, nil
			case text == "fail me":
				return domain.SentimentScore{}, errors.New("rate limited")
			default:
				return domain.SentimentScore{Label: domain.LabelNegative, Confidence: 0.8, Negative: 0.8, Neutral: 0.2}, nil
			}
		},
	}

	scored, failed, err := ScoreBatch(context.Background(), scorer, items, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	require.Len(t, scored, 3)
	assert.Len(t, scorer.ScoreCalls(), 3)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInflight), int32(2))

	assert.Equal(t, "p1", scored[0].ID)
	assert.Equal(t, "good\n\nbody", scored[0].Content)
	assert.Equal(t, domain.LabelPositive, scored[0].Sentiment.Label)
	assert.Equal(t, domain.NeutralScore, scored[1].Sentiment, "failed item falls back to neutral")
	assert.Equal(t, domain.LabelNegative, scored[2].Sentiment.Label)
	assert.Equal(t, domain.ItemComment, scored[2].Type)
}

func TestScoreBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scorer := &mocks.TextScorerMock{
		ScoreFunc: func(context.Context, string) (domain.SentimentScore, error) {
			return domain.NeutralScore, nil
		},
	}
	_, _, err := ScoreBatch(ctx, scorer, []domain.RawItem{{ID: "a"}}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoreBatch_Empty(t *testing.T) {
	scored, failed, err := ScoreBatch(context.Background(), &mocks.TextScorerMock{}, nil, 4)
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Empty(t, scored)
}
