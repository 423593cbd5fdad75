// Package service exposes the sqlite repositories as one flat data service.
package service

import (
	"context"
	"time"

	"github.com/sentiscope/sentiscope/pkg/domain"
	"github.com/sentiscope/sentiscope/pkg/repository"
)

// DataService provides unified access to repositories for the aggregator, scheduler and server
type DataService struct {
	itemRepo      *repository.ItemRepository
	aggregateRepo *repository.AggregateRepository
	cacheRepo     *repository.CacheRepository
	settingRepo   *repository.SettingRepository
	repos         *repository.Repositories
}

// NewDataService creates a new data service
func NewDataService(repos *repository.Repositories) *DataService {
	return &DataService{
		itemRepo:      repos.Item,
		aggregateRepo: repos.Aggregate,
		cacheRepo:     repos.Cache,
		settingRepo:   repos.Setting,
		repos:         repos,
	}
}

// Item methods

func (s *DataService) InsertItems(ctx context.Context, items []domain.ScoredItem) (int, error) {
	return s.itemRepo.InsertItems(ctx, items)
}

func (s *DataService) ItemExists(ctx context.Context, id string) (bool, error) {
	return s.itemRepo.ItemExists(ctx, id)
}

func (s *DataService) GetScoredItems(ctx context.Context, subreddit, date string) ([]domain.ScoredItem, error) {
	return s.itemRepo.GetScoredItems(ctx, subreddit, date)
}

func (s *DataService) GetTopItems(ctx context.Context, subreddit, date string, itemType domain.ItemType, limit int) ([]domain.ScoredItem, error) {
	return s.itemRepo.GetTopItems(ctx, subreddit, date, itemType, limit)
}

func (s *DataService) CountItems(ctx context.Context) (int, error) {
	return s.itemRepo.CountItems(ctx)
}

// Aggregate methods

func (s *DataService) UpsertDailyAggregate(ctx context.Context, agg domain.DailyAggregate) error {
	return s.aggregateRepo.UpsertDailyAggregate(ctx, agg)
}

func (s *DataService) GetDailyAggregates(ctx context.Context, subreddit, start, end string) ([]domain.DailyAggregate, error) {
	return s.aggregateRepo.GetDailyAggregates(ctx, subreddit, start, end)
}

// Sentiment cache methods

func (s *DataService) GetSentiment(ctx context.Context, key string, maxAge time.Duration) (domain.SentimentScore, bool, error) {
	return s.cacheRepo.GetSentiment(ctx, key, maxAge)
}

func (s *DataService) PutSentiment(ctx context.Context, key string, score domain.SentimentScore) error {
	return s.cacheRepo.PutSentiment(ctx, key, score)
}

func (s *DataService) PurgeSentiment(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.cacheRepo.PurgeSentiment(ctx, maxAge)
}

// Setting methods

func (s *DataService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.settingRepo.GetSetting(ctx, key)
}

func (s *DataService) SetSetting(ctx context.Context, key, value string) error {
	return s.settingRepo.SetSetting(ctx, key, value)
}

// Maintenance methods

// Reset removes all stored data
func (s *DataService) Reset(ctx context.Context) error {
	return s.repos.Reset(ctx)
}

// Ping verifies the database connection
func (s *DataService) Ping(ctx context.Context) error {
	return s.repos.Ping(ctx)
}

// Close closes the database
func (s *DataService) Close() error {
	return s.repos.Close()
}
