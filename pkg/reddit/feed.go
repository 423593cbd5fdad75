package reddit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/sentiscope/sentiscope/pkg/config"
	"github.com/sentiscope/sentiscope/pkg/domain"
)

// FeedSource reads new posts from the public subreddit feeds, no credentials needed.
// Feeds carry neither scores nor comments.
type FeedSource struct {
	parser  *gofeed.Parser
	baseURL string
	timeout time.Duration
}

// NewFeedSource creates a feed based source
func NewFeedSource(cfg config.RedditConfig) *FeedSource {
	parser := gofeed.NewParser()
	if cfg.UserAgent != "" {
		parser.UserAgent = cfg.UserAgent
	}
	return &FeedSource{parser: parser, baseURL: strings.TrimSuffix(cfg.FeedURL, "/"), timeout: cfg.Timeout}
}

// FetchSince returns feed entries of the subreddit published at or after since
func (f *FeedSource) FetchSince(ctx context.Context, subreddit string, since time.Time) ([]domain.RawItem, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	feedURL := fmt.Sprintf("%s/r/%s/new/.rss", f.baseURL, subreddit)
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	items := make([]domain.RawItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		var published time.Time
		switch {
		case entry.PublishedParsed != nil:
			published = *entry.PublishedParsed
		case entry.UpdatedParsed != nil:
			published = *entry.UpdatedParsed
		default:
			continue
		}
		if published.Before(since) {
			continue
		}

		author := ""
		if entry.Author != nil {
			author = strings.TrimPrefix(entry.Author.Name, "/u/")
		}
		if skipAuthor(author) {
			continue
		}

		content := entry.Content
		if content == "" {
			content = entry.Description
		}
		items = append(items, domain.RawItem{
			ID:        strings.TrimPrefix(entry.GUID, "t3_"),
			Subreddit: subreddit,
			Timestamp: published.Unix(),
			Author:    author,
			Title:     entry.Title,
			Content:   StripHTML(content),
			Permalink: entry.Link,
			Type:      domain.ItemPost,
		})
	}
	return items, nil
}
