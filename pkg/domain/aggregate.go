package domain

// SubredditAll is the query-time sentinel for the combined view of all tracked subreddits
const SubredditAll = "all"

// KeywordCount is a keyword with its frequency
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// DailyAggregate is the rollup for one (subreddit, date) key.
// PositiveCount+NeutralCount+NegativeCount always equals TotalCount.
type DailyAggregate struct {
	Date              string         `json:"date"`
	Subreddit         string         `json:"subreddit"`
	SentimentScore    float64        `json:"sentimentScore"`
	PositiveCount     int            `json:"positiveCount"`
	NeutralCount      int            `json:"neutralCount"`
	NegativeCount     int            `json:"negativeCount"`
	TotalCount        int            `json:"totalCount"`
	AverageConfidence float64        `json:"averageConfidence"`
	TopKeywords       []KeywordCount `json:"topKeywords"`
}

// Trend is the direction of sentiment over a range
type Trend string

// trend directions
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// DashboardSummary is the headline reduction of a range series
type DashboardSummary struct {
	AverageSentiment   float64 `json:"averageSentiment"`
	TotalVolume        int     `json:"totalVolume"`
	PositivePercentage float64 `json:"positivePercentage"`
	NegativePercentage float64 `json:"negativePercentage"`
	TrendDirection     Trend   `json:"trendDirection"`
}

// DrillDown holds the top posts and comments of a single (subreddit, date)
type DrillDown struct {
	Date      string       `json:"date"`
	Subreddit string       `json:"subreddit"`
	Posts     []ScoredItem `json:"posts"`
	Comments  []ScoredItem `json:"comments"`
}

// Sample is a shortened preview of a scored item
type Sample struct {
	ID        string         `json:"id"`
	Subreddit string         `json:"subreddit"`
	Author    string         `json:"author"`
	Content   string         `json:"content"`
	Score     int            `json:"score"`
	Permalink string         `json:"permalink"`
	Type      ItemType       `json:"type"`
	Sentiment SentimentScore `json:"sentiment"`
}

// previewLength is the number of runes kept in a sample preview
const previewLength = 200

// NewSample builds a preview of the item with content truncated to 200 runes
func NewSample(item ScoredItem) Sample {
	content := item.Content
	if r := []rune(content); len(r) > previewLength {
		content = string(r[:previewLength]) + "..."
	}
	return Sample{
		ID:        item.ID,
		Subreddit: item.Subreddit,
		Author:    item.Author,
		Content:   content,
		Score:     item.Score,
		Permalink: item.Permalink,
		Type:      item.Type,
		Sentiment: item.Sentiment,
	}
}
