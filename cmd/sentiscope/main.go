package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/sentiscope/sentiscope/pkg/aggregate"
	"github.com/sentiscope/sentiscope/pkg/config"
	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/llm"
	"github.com/sentiscope/sentiscope/pkg/reddit"
	"github.com/sentiscope/sentiscope/pkg/repository"
	"github.com/sentiscope/sentiscope/pkg/scheduler"
	"github.com/sentiscope/sentiscope/pkg/service"
	"github.com/sentiscope/sentiscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" description:"path to YAML config file, defaults are used when empty"`
	EnvFile string `short:"e" long:"env-file" env:"ENV_FILE" default:".env" description:"dotenv file loaded before the config"`
	Store   string `long:"store" env:"STORE" choice:"sqlite" choice:"memory" description:"override database.type"`

	// common options
	Dbg     bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// dataStore is everything the pipeline, scorer cache and server need from storage
type dataStore interface {
	aggregate.Store
	scheduler.Store
	server.Store
	llm.Cache
	scheduler.CachePurger
	Close() error
}

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Dbg)

	log.Printf("[INFO] starting sentiscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires storage, scoring, ingestion and the http server and blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	if err := config.LoadEnv(opts.EnvFile); err != nil {
		return fmt.Errorf("failed to load env: %w", err)
	}

	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.Store != "" {
		cfg.Database.Type = opts.Store
	}
	SetupLog(opts.Dbg, cfg.LLM.APIKey, cfg.Reddit.ClientSecret, cfg.Server.AdminToken)

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	stopwords := cfg.Aggregation.Stopwords
	if len(stopwords) == 0 {
		stopwords = aggregate.DefaultStopwords()
	}
	agg := aggregate.NewAggregator(store, aggregate.Options{
		Subreddits:     cfg.Aggregation.Subreddits,
		Keywords:       aggregate.NewKeywordOptions(stopwords, cfg.Aggregation.MinKeywordLength, cfg.Aggregation.TopKeywords),
		TrendThreshold: cfg.Aggregation.TrendThreshold,
		Workers:        cfg.Aggregation.Workers,
	})

	var srv *server.Server
	ingestor := scheduler.NewIngestor(newSource(ctx, cfg.Reddit), newScorer(cfg.LLM, store), store, agg, scheduler.IngestConfig{
		Workers:      cfg.LLM.Workers,
		PollLookback: cfg.Schedule.PollLookback,
		OnUpdate: func() {
			if srv != nil {
				srv.InvalidateCache()
			}
		},
	})

	jobs := scheduler.NewJobs(ctx, 100)
	srv = server.New(cfg, store, agg, ingestor, jobs, revision, opts.Dbg)

	if cfg.Schedule.Enabled {
		sched := scheduler.NewScheduler(ingestor, store, scheduler.Config{
			PollInterval: cfg.Schedule.PollInterval,
			CacheMaxAge:  cfg.LLM.CacheTTL,
		})
		sched.Start(ctx)
		defer sched.Stop()
		startBackfill(ctx, store, ingestor, jobs, cfg.Schedule.BackfillDays)
	}

	err = srv.Run(ctx)
	jobs.Wait()
	if err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// openStore opens sqlite or the in-memory store
func openStore(ctx context.Context, cfg config.DatabaseConfig) (dataStore, error) {
	switch cfg.Type {
	case "memory":
		log.Printf("[INFO] using in-memory store, data is lost on exit")
		return repository.NewMemoryStore(), nil
	case "sqlite", "":
		repos, err := repository.NewRepositories(ctx, repository.Config{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return service.NewDataService(repos), nil
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.Type)
	}
}

// newSource picks the oauth api client or the public rss feeds
func newSource(ctx context.Context, cfg config.RedditConfig) scheduler.Source {
	if cfg.Source == "api" {
		log.Printf("[INFO] reddit source: api %s", cfg.BaseURL)
		return reddit.NewClient(ctx, cfg)
	}
	log.Printf("[INFO] reddit source: rss %s", cfg.FeedURL)
	return reddit.NewFeedSource(cfg)
}

// newScorer returns the llm scorer when an endpoint is configured and the offline lexicon scorer otherwise
func newScorer(cfg config.LLMConfig, cache llm.Cache) llm.TextScorer {
	if cfg.Endpoint == "" {
		log.Printf("[INFO] llm endpoint not set, using offline vader scorer")
		return llm.NewVaderScorer()
	}
	log.Printf("[INFO] llm scorer: %s, model %s", cfg.Endpoint, cfg.Model)
	return llm.NewScorer(cfg, cache)
}

// startBackfill fills an empty store in the background
func startBackfill(ctx context.Context, store dataStore, ingestor *scheduler.Ingestor, jobs *scheduler.Jobs, days int) {
	count, err := store.CountItems(ctx)
	if err != nil {
		log.Printf("[WARN] can't count stored items: %v", err)
		return
	}
	if count > 0 || days <= 0 {
		return
	}
	last, err := store.GetSetting(ctx, domain.SettingLastBackfill)
	if err == nil && last != "" {
		return
	}
	job := jobs.Start("backfill", func(ctx context.Context, progress aggregate.ProgressFunc) (any, error) {
		res, err := ingestor.Backfill(ctx, days, progress)
		if err != nil && !errors.Is(err, context.Canceled) {
			return res, err
		}
		return res, nil
	})
	log.Printf("[INFO] store is empty, initial backfill of %d days started as job %s", days, job.ID)
}

// SetupLog configures lgr and the std logger, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if os.Getenv("NO_COLOR") == "" {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
