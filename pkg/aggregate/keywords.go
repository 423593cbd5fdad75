package aggregate

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// keyword extraction defaults
const (
	DefaultMinKeywordLength = 4
	DefaultTopKeywords      = 10
)

// defaultStopwords is the built-in stopword list
var defaultStopwords = []string{
	"the", "is", "at", "which", "on", "a", "an", "and", "or", "but", "in", "with", "to", "for", "of",
	"as", "by", "from", "it", "this", "that", "was", "are", "be", "have", "has", "had", "do", "does",
	"did", "will", "would", "could", "should", "can", "may", "might",
}

// DefaultStopwords returns the built-in stopword list
func DefaultStopwords() []string {
	res := make([]string, len(defaultStopwords))
	copy(res, defaultStopwords)
	return res
}

// KeywordOptions control keyword extraction
type KeywordOptions struct {
	Stopwords map[string]struct{}
	MinLength int
	TopN      int
}

// NewKeywordOptions builds options from a stopword list, zero values take defaults
func NewKeywordOptions(stopwords []string, minLength, topN int) KeywordOptions {
	if minLength <= 0 {
		minLength = DefaultMinKeywordLength
	}
	if topN <= 0 {
		topN = DefaultTopKeywords
	}
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return KeywordOptions{Stopwords: set, MinLength: minLength, TopN: topN}
}

// ExtractKeywords counts surviving tokens across all items and returns the top ones,
// ordered by count desc with ties kept in first-occurrence order.
func ExtractKeywords(items []domain.ScoredItem, opts KeywordOptions) []domain.KeywordCount {
	c := newCounter()
	for _, item := range items {
		for _, token := range tokenize(item.Content) {
			if utf8.RuneCountInString(token) < opts.MinLength {
				continue
			}
			if _, stop := opts.Stopwords[token]; stop {
				continue
			}
			c.add(token, 1)
		}
	}
	return c.top(opts.TopN)
}

// MergeKeywords sums keyword counts over several ranked lists and re-ranks them.
// First-seen order follows the order of lists and their entries.
func MergeKeywords(topN int, lists ...[]domain.KeywordCount) []domain.KeywordCount {
	c := newCounter()
	for _, list := range lists {
		for _, kw := range list {
			c.add(kw.Keyword, kw.Count)
		}
	}
	return c.top(topN)
}

// tokenize lower-cases text, drops everything except letters, digits and whitespace, and splits on whitespace
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, text)
	return strings.Fields(cleaned)
}

// counter accumulates counts keeping insertion order
type counter struct {
	index  map[string]int
	counts []domain.KeywordCount
}

func newCounter() *counter {
	return &counter{index: map[string]int{}}
}

func (c *counter) add(word string, n int) {
	if i, ok := c.index[word]; ok {
		c.counts[i].Count += n
		return
	}
	c.index[word] = len(c.counts)
	c.counts = append(c.counts, domain.KeywordCount{Keyword: word, Count: n})
}

func (c *counter) top(n int) []domain.KeywordCount {
	res := make([]domain.KeywordCount, len(c.counts))
	copy(res, c.counts)
	sort.SliceStable(res, func(i, j int) bool { return res[i].Count > res[j].Count })
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return res
}
