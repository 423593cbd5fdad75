package reddit

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var stripPolicy = bluemonday.StrictPolicy()

// Normalize converts reddit markdown into plain text with collapsed whitespace
func Normalize(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	rendered := blackfriday.Run([]byte(markdown))
	return StripHTML(string(rendered))
}

// StripHTML removes all markup from an HTML fragment and unescapes entities
func StripHTML(fragment string) string {
	text := html.UnescapeString(stripPolicy.Sanitize(fragment))
	return strings.Join(strings.Fields(text), " ")
}

// skipAuthor reports whether items of the author are not worth scoring
func skipAuthor(author string) bool {
	return author == "" || author == "[deleted]" || strings.Contains(strings.ToLower(author), "bot")
}
