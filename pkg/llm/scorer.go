package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/sentiscope/sentiscope/pkg/config"
	"github.com/sentiscope/sentiscope/pkg/domain"
)

//go:generate moq -out mocks/cache.go -pkg mocks -skip-ensure -fmt goimports . Cache

// Cache keeps scorer results keyed by content hash
type Cache interface {
	GetSentiment(ctx context.Context, key string, maxAge time.Duration) (domain.SentimentScore, bool, error)
	PutSentiment(ctx context.Context, key string, score domain.SentimentScore) error
}

// Scorer uses an OpenAI-compatible LLM to score sentiment of texts
type Scorer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	cache     Cache
}

// default system prompt for sentiment scoring
const defaultSystemPrompt = `You are a sentiment analysis expert. Analyze the sentiment of Reddit posts and comments about AI coding assistants.

Classification rules:
- positive: praise, satisfaction, excitement, recommendations
- neutral: questions, factual statements, mixed opinions
- negative: complaints, frustration, criticism, problems`

const maxAttempts = 3

// NewScorer creates a new LLM scorer. The cache is optional.
func NewScorer(cfg config.LLMConfig, cache Cache) *Scorer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Scorer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
		cache:     cache,
	}
}

// llmResponse is the JSON object the model is asked to return
type llmResponse struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Scores     struct {
		Positive float64 `json:"positive"`
		Neutral  float64 `json:"neutral"`
		Negative float64 `json:"negative"`
	} `json:"scores"`
}

// Score returns the sentiment of a single text, using the cache when configured
func (s *Scorer) Score(ctx context.Context, text string) (domain.SentimentScore, error) {
	key := s.cacheKey(text)
	if s.cache != nil {
		score, ok, err := s.cache.GetSentiment(ctx, key, s.config.CacheTTL)
		if err != nil {
			lgr.Printf("[WARN] sentiment cache lookup failed: %v", err)
		}
		if ok {
			return score, nil
		}
	}

	prompt := buildPrompt(text)

	// retry up to 3 times if we get invalid JSON
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       s.config.Model,
			Temperature: float32(s.config.Temperature),
			MaxTokens:   s.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: s.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}
		if s.config.UseJSONMode {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		}

		resp, err := s.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return domain.SentimentScore{}, fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return domain.SentimentScore{}, fmt.Errorf("no response from llm")
		}

		score, err := parseResponse(resp.Choices[0].Message.Content)
		if err != nil {
			lastErr = err
			continue
		}

		if s.cache != nil {
			if err := s.cache.PutSentiment(ctx, key, score); err != nil {
				lgr.Printf("[WARN] sentiment cache store failed: %v", err)
			}
		}
		return score, nil
	}

	return domain.SentimentScore{}, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

// cacheKey hashes the model and the normalized text
func (s *Scorer) cacheKey(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(s.config.Model + "|" + normalized))
	return hex.EncodeToString(sum[:])
}

func buildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the sentiment of this Reddit post/comment:\n\n")
	sb.WriteString(fmt.Sprintf("%q\n\n", text))
	sb.WriteString(`Return a JSON object with:
{
  "sentiment": "positive" | "neutral" | "negative",
  "confidence": 0.0-1.0,
  "scores": {"positive": 0.0-1.0, "neutral": 0.0-1.0, "negative": 0.0-1.0}
}`)
	return sb.String()
}

// parseResponse extracts the JSON object from the model output and normalizes it
func parseResponse(content string) (domain.SentimentScore, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return domain.SentimentScore{}, fmt.Errorf("no json object found in response")
	}

	var resp llmResponse
	if err := json.Unmarshal([]byte(content[start:end+1]), &resp); err != nil {
		return domain.SentimentScore{}, fmt.Errorf("failed to parse json response: %w", err)
	}
	return normalize(domain.Label(strings.ToLower(strings.TrimSpace(resp.Sentiment))), resp.Confidence,
		resp.Scores.Positive, resp.Scores.Neutral, resp.Scores.Negative), nil
}

// normalize clamps values to [0,1], rescales probabilities to sum to 1 and
// derives the label from the highest probability when it is missing or unknown
func normalize(label domain.Label, confidence, pos, neu, neg float64) domain.SentimentScore {
	pos, neu, neg = clamp01(pos), clamp01(neu), clamp01(neg)
	sum := pos + neu + neg
	switch {
	case sum > 0:
		pos, neu, neg = pos/sum, neu/sum, neg/sum
	case label == domain.LabelPositive:
		pos = 1
	case label == domain.LabelNegative:
		neg = 1
	case label == domain.LabelNeutral:
		neu = 1
	default:
		return domain.NeutralScore
	}

	if !label.Valid() {
		label = domain.LabelNeutral
		if pos > neu && pos > neg {
			label = domain.LabelPositive
		}
		if neg > neu && neg > pos {
			label = domain.LabelNegative
		}
	}

	return domain.SentimentScore{
		Label:      label,
		Confidence: clamp01(confidence),
		Positive:   pos,
		Neutral:    neu,
		Negative:   neg,
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
