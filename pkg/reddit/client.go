// Package reddit fetches posts and comments from reddit, either through the OAuth API
// or through the public RSS feeds.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/sentiscope/sentiscope/pkg/config"
	"github.com/sentiscope/sentiscope/pkg/domain"
)

const (
	minCommentLength = 10
	maxRetryAfter    = 2 * time.Minute
	cacheSize        = 1000
)

// Client reads subreddit listings through the reddit OAuth API
type Client struct {
	http     *resty.Client
	limiter  *rate.Limiter
	posts    *expirable.LRU[string, Page]
	comments *expirable.LRU[string, []domain.RawItem]
	cfg      config.RedditConfig
}

// Page is one listing page of posts with the cursor of the next page
type Page struct {
	Items []domain.RawItem
	After string
}

// NewClient creates a reddit API client authenticated with client credentials
func NewClient(ctx context.Context, cfg config.RedditConfig) *Client {
	oauthConf := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}

	httpClient := resty.NewWithClient(oauthConf.Client(ctx)).
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", cfg.UserAgent).
		SetTimeout(cfg.Timeout)

	return &Client{
		http:     httpClient,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		posts:    expirable.NewLRU[string, Page](cacheSize, nil, cfg.PostsCacheTTL),
		comments: expirable.NewLRU[string, []domain.RawItem](cacheSize, nil, cfg.CommentsCacheTTL),
		cfg:      cfg,
	}
}

type listing struct {
	Data struct {
		After    string  `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type postData struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
}

type commentData struct {
	ID         string          `json:"id"`
	Author     string          `json:"author"`
	Body       string          `json:"body"`
	Score      int             `json:"score"`
	CreatedUTC float64         `json:"created_utc"`
	Permalink  string          `json:"permalink"`
	Replies    json.RawMessage `json:"replies"`
}

// FetchNew returns one page of newest posts of the subreddit, deleted and bot authors removed
func (c *Client) FetchNew(ctx context.Context, subreddit, after string, limit int) (Page, error) {
	cacheKey := fmt.Sprintf("%s:%s:%d", subreddit, after, limit)
	if page, ok := c.posts.Get(cacheKey); ok {
		return page, nil
	}

	params := map[string]string{"limit": strconv.Itoa(limit), "raw_json": "1"}
	if after != "" {
		params["after"] = after
	}
	var resp listing
	if err := c.get(ctx, "/r/"+subreddit+"/new", params, &resp); err != nil {
		return Page{}, fmt.Errorf("fetch new posts of %s: %w", subreddit, err)
	}

	page := Page{After: resp.Data.After, Items: make([]domain.RawItem, 0, len(resp.Data.Children))}
	for _, child := range resp.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var p postData
		if err := json.Unmarshal(child.Data, &p); err != nil {
			return Page{}, fmt.Errorf("decode post of %s: %w", subreddit, err)
		}
		if skipAuthor(p.Author) {
			continue
		}
		page.Items = append(page.Items, domain.RawItem{
			ID:        p.ID,
			Subreddit: subreddit,
			Timestamp: int64(p.CreatedUTC),
			Author:    p.Author,
			Title:     p.Title,
			Content:   Normalize(p.Selftext),
			Score:     p.Score,
			Permalink: p.Permalink,
			Type:      domain.ItemPost,
		})
	}

	c.posts.Add(cacheKey, page)
	return page, nil
}

// FetchComments returns all comments of a post with nested replies flattened.
// Deleted, bot and very short comments are dropped.
func (c *Client) FetchComments(ctx context.Context, subreddit, postID string) ([]domain.RawItem, error) {
	if cached, ok := c.comments.Get(postID); ok {
		return cached, nil
	}

	var resp []listing
	if err := c.get(ctx, "/r/"+subreddit+"/comments/"+postID, map[string]string{"raw_json": "1"}, &resp); err != nil {
		return nil, fmt.Errorf("fetch comments of %s: %w", postID, err)
	}
	if len(resp) < 2 {
		return nil, fmt.Errorf("fetch comments of %s: unexpected response with %d listings", postID, len(resp))
	}

	var flat []commentData
	if err := flattenComments(resp[1], &flat); err != nil {
		return nil, fmt.Errorf("decode comments of %s: %w", postID, err)
	}

	res := make([]domain.RawItem, 0, len(flat))
	for _, cm := range flat {
		if skipAuthor(cm.Author) || utf8.RuneCountInString(cm.Body) <= minCommentLength {
			continue
		}
		res = append(res, domain.RawItem{
			ID:        cm.ID,
			Subreddit: subreddit,
			Timestamp: int64(cm.CreatedUTC),
			Author:    cm.Author,
			Content:   Normalize(cm.Body),
			Score:     cm.Score,
			Permalink: cm.Permalink,
			Type:      domain.ItemComment,
		})
	}

	c.comments.Add(postID, res)
	return res, nil
}

// FetchSince pages through newest posts until it reaches items older than since or the page limit.
// Comments of collected posts are added when enabled, a failed comment fetch is logged and skipped.
func (c *Client) FetchSince(ctx context.Context, subreddit string, since time.Time) ([]domain.RawItem, error) {
	var posts []domain.RawItem
	after := ""
	for page := 0; page < c.cfg.MaxPages; page++ {
		resp, err := c.FetchNew(ctx, subreddit, after, c.cfg.PageSize)
		if err != nil {
			return nil, err
		}
		reachedEnd := false
		for _, p := range resp.Items {
			if p.Timestamp < since.Unix() {
				reachedEnd = true
				continue
			}
			posts = append(posts, p)
		}
		if reachedEnd || len(resp.Items) == 0 || resp.After == "" {
			break
		}
		after = resp.After
	}

	res := append([]domain.RawItem{}, posts...)
	if !c.cfg.FetchComments {
		return res, nil
	}
	for _, p := range posts {
		comments, err := c.FetchComments(ctx, subreddit, p.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lgr.Printf("[WARN] skip comments of %s/%s: %v", subreddit, p.ID, err)
			continue
		}
		res = append(res, comments...)
	}
	return res, nil
}

// get performs a rate limited GET, honoring Retry-After once on 429
func (c *Client) get(ctx context.Context, path string, params map[string]string, result any) error {
	for attempt := 0; attempt < 2; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for rate limiter: %w", err)
		}

		resp, err := c.http.R().SetContext(ctx).SetQueryParams(params).Get(path)
		if err != nil {
			return fmt.Errorf("request %s: %w", path, err)
		}

		if resp.StatusCode() == http.StatusTooManyRequests && attempt == 0 {
			wait := retryAfter(resp.Header().Get("Retry-After"))
			lgr.Printf("[WARN] reddit rate limited on %s, retry in %v", path, wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		if resp.IsError() {
			return fmt.Errorf("request %s: status %d", path, resp.StatusCode())
		}

		if err := json.Unmarshal(resp.Body(), result); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("request %s: still rate limited", path)
}

func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return time.Minute
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}

// flattenComments walks the comment tree depth first, skipping "more" stubs
func flattenComments(l listing, res *[]commentData) error {
	for _, child := range l.Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var cm commentData
		if err := json.Unmarshal(child.Data, &cm); err != nil {
			return err
		}
		if cm.Body != "" {
			*res = append(*res, cm)
		}
		// replies is an empty string when there are none
		if len(cm.Replies) == 0 || cm.Replies[0] != '{' {
			continue
		}
		var replies listing
		if err := json.Unmarshal(cm.Replies, &replies); err != nil {
			return fmt.Errorf("decode replies of %s: %w", cm.ID, err)
		}
		if err := flattenComments(replies, res); err != nil {
			return err
		}
	}
	return nil
}
