package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database    DatabaseConfig    `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Reddit      RedditConfig      `yaml:"reddit" json:"reddit" jsonschema:"description=Reddit ingestion source"`
	LLM         LLMConfig         `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for sentiment scoring"`
	Aggregation AggregationConfig `yaml:"aggregation" json:"aggregation" jsonschema:"description=Aggregation pipeline settings"`
	Schedule    ScheduleConfig    `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen     string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	AdminToken string        `yaml:"admin_token" json:"admin_token" jsonschema:"description=Bearer token for ingestion and maintenance endpoints (can use environment variable)"`
	CacheTTL   time.Duration `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=5m,description=TTL of cached dashboard responses"`
	CacheSize  int           `yaml:"cache_size" json:"cache_size" jsonschema:"default=256,description=Maximum number of cached dashboard responses"`
}

// DatabaseConfig holds storage settings
type DatabaseConfig struct {
	Type            string `yaml:"type" json:"type" jsonschema:"default=sqlite,enum=sqlite,enum=memory,description=Storage backend"`
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:sentiscope.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// RedditConfig holds settings of the Reddit source
type RedditConfig struct {
	Source            string        `yaml:"source" json:"source" jsonschema:"enum=api,enum=rss,description=Ingestion source (api when client_id is set and rss otherwise)"`
	ClientID          string        `yaml:"client_id" json:"client_id" jsonschema:"description=Reddit OAuth client id (can use environment variable)"`
	ClientSecret      string        `yaml:"client_secret" json:"client_secret" jsonschema:"description=Reddit OAuth client secret (can use environment variable)"`
	UserAgent         string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=sentiscope/1.0,description=User agent for Reddit requests"`
	BaseURL           string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://oauth.reddit.com,description=Reddit API base URL"`
	TokenURL          string        `yaml:"token_url" json:"token_url" jsonschema:"default=https://www.reddit.com/api/v1/access_token,description=OAuth token endpoint"`
	FeedURL           string        `yaml:"feed_url" json:"feed_url" jsonschema:"default=https://www.reddit.com,description=Base URL for RSS feeds"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute" jsonschema:"default=60,minimum=1,description=Rate limit for API requests"`
	PageSize          int           `yaml:"page_size" json:"page_size" jsonschema:"default=100,minimum=1,maximum=100,description=Posts per listing page"`
	MaxPages          int           `yaml:"max_pages" json:"max_pages" jsonschema:"default=10,minimum=1,description=Maximum listing pages per fetch"`
	FetchComments     bool          `yaml:"fetch_comments" json:"fetch_comments" jsonschema:"default=false,description=Fetch comments of new posts (api source only)"`
	PostsCacheTTL     time.Duration `yaml:"posts_cache_ttl" json:"posts_cache_ttl" jsonschema:"default=15m,description=Cache TTL of listing responses"`
	CommentsCacheTTL  time.Duration `yaml:"comments_cache_ttl" json:"comments_cache_ttl" jsonschema:"default=6h,description=Cache TTL of comment responses"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// LLMConfig holds LLM configuration for sentiment scoring
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (offline scorer is used when empty)"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	UseJSONMode  bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=true,description=Use JSON response format (not all models support this)"`
	CacheTTL     time.Duration `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=168h,description=How long scored texts are cached"`
	Workers      int           `yaml:"workers" json:"workers" jsonschema:"default=4,minimum=1,description=Concurrent scoring requests"`
}

// AggregationConfig holds aggregation constants
type AggregationConfig struct {
	Subreddits       []string `yaml:"subreddits" json:"subreddits" jsonschema:"description=Tracked subreddits"`
	Stopwords        []string `yaml:"stopwords" json:"stopwords" jsonschema:"description=Keyword stopwords (built-in list when empty)"`
	MinKeywordLength int      `yaml:"min_keyword_length" json:"min_keyword_length" jsonschema:"default=4,minimum=1,description=Minimum keyword length"`
	TopKeywords      int      `yaml:"top_keywords" json:"top_keywords" jsonschema:"default=10,minimum=1,description=Keywords kept per aggregate"`
	TrendThreshold   float64  `yaml:"trend_threshold" json:"trend_threshold" jsonschema:"default=0.1,minimum=0,maximum=2,description=Sentiment change needed to report a trend"`
	Workers          int      `yaml:"workers" json:"workers" jsonschema:"default=4,minimum=1,description=Concurrent recompute units"`
}

// ScheduleConfig holds periodic polling settings
type ScheduleConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Poll tracked subreddits periodically"`
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=30m,description=Polling interval"`
	PollLookback time.Duration `yaml:"poll_lookback" json:"poll_lookback" jsonschema:"default=24h,description=How far back a poll fetches"`
	BackfillDays int           `yaml:"backfill_days" json:"backfill_days" jsonschema:"default=90,minimum=1,description=Default backfill depth in days"`
}

// defaultSubreddits are tracked when none are configured
var defaultSubreddits = []string{"ClaudeAI", "ClaudeCode", "Anthropic"}

// LoadEnv loads variables from .env style files, missing files are skipped
func LoadEnv(files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills zero values with defaults
func (c *Config) SetDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.CacheTTL == 0 {
		c.Server.CacheTTL = 5 * time.Minute
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 256
	}

	// database
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "file:sentiscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// reddit
	if c.Reddit.Source == "" {
		c.Reddit.Source = "rss"
		if c.Reddit.ClientID != "" {
			c.Reddit.Source = "api"
		}
	}
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = "sentiscope/1.0"
	}
	if c.Reddit.BaseURL == "" {
		c.Reddit.BaseURL = "https://oauth.reddit.com"
	}
	if c.Reddit.TokenURL == "" {
		c.Reddit.TokenURL = "https://www.reddit.com/api/v1/access_token"
	}
	if c.Reddit.FeedURL == "" {
		c.Reddit.FeedURL = "https://www.reddit.com"
	}
	if c.Reddit.RequestsPerMinute == 0 {
		c.Reddit.RequestsPerMinute = 60
	}
	if c.Reddit.PageSize == 0 {
		c.Reddit.PageSize = 100
	}
	if c.Reddit.MaxPages == 0 {
		c.Reddit.MaxPages = 10
	}
	if c.Reddit.PostsCacheTTL == 0 {
		c.Reddit.PostsCacheTTL = 15 * time.Minute
	}
	if c.Reddit.CommentsCacheTTL == 0 {
		c.Reddit.CommentsCacheTTL = 6 * time.Hour
	}
	if c.Reddit.Timeout == 0 {
		c.Reddit.Timeout = 30 * time.Second
	}

	// llm
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}
	if c.LLM.CacheTTL == 0 {
		c.LLM.CacheTTL = 7 * 24 * time.Hour
	}
	if c.LLM.Workers == 0 {
		c.LLM.Workers = 4
	}

	// aggregation
	if len(c.Aggregation.Subreddits) == 0 {
		c.Aggregation.Subreddits = append([]string{}, defaultSubreddits...)
	}
	if c.Aggregation.MinKeywordLength == 0 {
		c.Aggregation.MinKeywordLength = 4
	}
	if c.Aggregation.TopKeywords == 0 {
		c.Aggregation.TopKeywords = 10
	}
	if c.Aggregation.TrendThreshold == 0 {
		c.Aggregation.TrendThreshold = 0.1
	}
	if c.Aggregation.Workers == 0 {
		c.Aggregation.Workers = 4
	}

	// schedule
	if c.Schedule.PollInterval == 0 {
		c.Schedule.PollInterval = 30 * time.Minute
	}
	if c.Schedule.PollLookback == 0 {
		c.Schedule.PollLookback = 24 * time.Hour
	}
	if c.Schedule.BackfillDays == 0 {
		c.Schedule.BackfillDays = 90
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Database.Type != "sqlite" && cfg.Database.Type != "memory" {
		return fmt.Errorf("database.type must be sqlite or memory, got %q", cfg.Database.Type)
	}

	switch cfg.Reddit.Source {
	case "api":
		if cfg.Reddit.ClientID == "" || cfg.Reddit.ClientSecret == "" {
			return fmt.Errorf("reddit.client_id and reddit.client_secret are required for the api source")
		}
	case "rss":
	default:
		return fmt.Errorf("reddit.source must be api or rss, got %q", cfg.Reddit.Source)
	}
	if cfg.Reddit.PageSize > 100 {
		return fmt.Errorf("reddit.page_size must not exceed 100")
	}

	if cfg.LLM.Endpoint != "" && cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required when llm.endpoint is set")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	seen := map[string]bool{}
	for _, s := range cfg.Aggregation.Subreddits {
		name := strings.TrimSpace(s)
		if name == "" || strings.EqualFold(name, "all") {
			return fmt.Errorf("aggregation.subreddits has invalid name %q", s)
		}
		if seen[name] {
			return fmt.Errorf("aggregation.subreddits has duplicate %q", s)
		}
		seen[name] = true
	}
	if cfg.Aggregation.TrendThreshold < 0 {
		return fmt.Errorf("aggregation.trend_threshold must be non-negative")
	}
	if cfg.Schedule.Enabled && cfg.Schedule.PollInterval < time.Minute {
		return fmt.Errorf("schedule.poll_interval must be at least 1 minute")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetCacheConfig returns the dashboard response cache ttl and size
func (c *Config) GetCacheConfig() (ttl time.Duration, size int) {
	return c.Server.CacheTTL, c.Server.CacheSize
}

// GetAdminToken returns the bearer token guarding maintenance endpoints, empty disables the check
func (c *Config) GetAdminToken() string {
	return c.Server.AdminToken
}
