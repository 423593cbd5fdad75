package domain

// Label is the categorical sentiment of a scored item
type Label string

// sentiment labels
const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Valid reports whether the label is one of the known values
func (l Label) Valid() bool {
	return l == LabelPositive || l == LabelNeutral || l == LabelNegative
}

// ItemType distinguishes posts from comments
type ItemType string

// item types
const (
	ItemPost    ItemType = "post"
	ItemComment ItemType = "comment"
)

// SentimentScore is the scorer output attached to an item.
// Positive, Neutral and Negative are probabilities summing to 1.
type SentimentScore struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Positive   float64 `json:"positive"`
	Neutral    float64 `json:"neutral"`
	Negative   float64 `json:"negative"`
}

// Polarity returns positive minus negative probability
func (s SentimentScore) Polarity() float64 {
	return s.Positive - s.Negative
}

// NeutralScore is used when scoring fails
var NeutralScore = SentimentScore{Label: LabelNeutral, Confidence: 0, Positive: 0.33, Neutral: 0.34, Negative: 0.33}

// RawItem is a post or comment as delivered by an ingestion source, before scoring
type RawItem struct {
	ID        string   `json:"id"`
	Subreddit string   `json:"subreddit"`
	Timestamp int64    `json:"timestamp"`
	Author    string   `json:"author"`
	Title     string   `json:"title,omitempty"`
	Content   string   `json:"content"`
	Score     int      `json:"score"`
	Permalink string   `json:"permalink"`
	Type      ItemType `json:"type"`
}

// Text returns the text sent to the scorer, title and body joined for posts
func (r RawItem) Text() string {
	if r.Title == "" {
		return r.Content
	}
	if r.Content == "" {
		return r.Title
	}
	return r.Title + "\n\n" + r.Content
}

// ScoredItem is one analyzed post or comment, immutable once stored
type ScoredItem struct {
	ID        string         `json:"id"`
	Subreddit string         `json:"subreddit"`
	Timestamp int64          `json:"timestamp"`
	Author    string         `json:"author"`
	Content   string         `json:"content"`
	Score     int            `json:"score"`
	Permalink string         `json:"permalink"`
	Type      ItemType       `json:"type"`
	Sentiment SentimentScore `json:"sentiment"`
}

// Day returns the UTC calendar day key of the item
func (s ScoredItem) Day() string {
	return DayOf(s.Timestamp)
}
