package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-ranking/internal/domains/ranking/model"
	"bookstore-ranking/internal/domains/ranking/repository"
	"bookstore-ranking/pkg/cache"
)

type RankingService struct {
	repo         repository.RepositoryInterface
	cache        cache.Cache
	cacheTTL     time.Duration
	queryTimeout time.Duration
	now          func() time.Time
}

type Option func(*RankingService)

// WithClock replaces time.Now; the yearly ranking reads the year from it.
func WithClock(now func() time.Time) Option {
	return func(s *RankingService) { s.now = now }
}

func NewService(repo repository.RepositoryInterface, c cache.Cache, cacheTTL, queryTimeout time.Duration, opts ...Option) ServiceInterface {
	if c == nil {
		c = cache.NewNoop()
	}
	s := &RankingService{
		repo:         repo,
		cache:        c,
		cacheTTL:     cacheTTL,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rank returns at most model.TopN groups ordered by total sales, highest first.
// Yearly rankings always cover the current year and ignore req.WindowValue.
// A week or month key that is empty or malformed matches no sale and yields
// an empty ranking.
func (s *RankingService) Rank(ctx context.Context, req model.RankRequest) ([]model.RankingEntry, error) {
	period, err := model.ParsePeriod(string(req.Period))
	if err != nil {
		return nil, err
	}
	category := model.ParseCategory(string(req.Category))

	var window string
	if period == model.PeriodYearly {
		window = strconv.Itoa(s.now().Year())
	} else {
		window = req.WindowValue
		if !model.IsWindowKey(window) {
			return []model.RankingEntry{}, nil
		}
	}

	gen, cacheOK := s.generation(ctx)
	cacheKey := cache.VersionedKey(gen, "ranking", string(period), string(category), window)
	var cached []model.RankingEntry
	if cacheOK && s.getCached(ctx, cacheKey, &cached) {
		return cached, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var entries []model.RankingEntry
	if period == model.PeriodYearly {
		year, _ := strconv.Atoi(window)
		entries, err = s.repo.RankByYear(ctx, category, year, model.TopN)
	} else {
		entries, err = s.repo.RankByKey(ctx, period, category, window, model.TopN)
	}
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.RankingEntry{}
	}

	log.Debug().
		Str("period", string(period)).
		Str("category", string(category)).
		Str("window", window).
		Int("groups", len(entries)).
		Msg("[RankingService] ranking computed")

	if cacheOK {
		s.setCached(ctx, cacheKey, entries)
	}
	return entries, nil
}

func (s *RankingService) ListAvailableWeeks(ctx context.Context) ([]model.WeekEntry, error) {
	gen, cacheOK := s.generation(ctx)
	cacheKey := cache.VersionedKey(gen, "windows", "weeks")
	var cached []model.WeekEntry
	if cacheOK && s.getCached(ctx, cacheKey, &cached) {
		return cached, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys, err := s.repo.ListWeeks(ctx)
	if err != nil {
		return nil, err
	}

	weeks := make([]model.WeekEntry, len(keys))
	for i, k := range keys {
		weeks[i] = model.WeekEntry{Week: k}
	}

	if cacheOK {
		s.setCached(ctx, cacheKey, weeks)
	}
	return weeks, nil
}

func (s *RankingService) ListAvailableMonths(ctx context.Context) ([]model.MonthEntry, error) {
	gen, cacheOK := s.generation(ctx)
	cacheKey := cache.VersionedKey(gen, "windows", "months")
	var cached []model.MonthEntry
	if cacheOK && s.getCached(ctx, cacheKey, &cached) {
		return cached, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys, err := s.repo.ListMonths(ctx)
	if err != nil {
		return nil, err
	}

	months := make([]model.MonthEntry, len(keys))
	for i, k := range keys {
		months[i] = model.MonthEntry{Month: k}
	}

	if cacheOK {
		s.setCached(ctx, cacheKey, months)
	}
	return months, nil
}

func (s *RankingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// generation must be read before the store is queried: a result computed from
// pre-ingestion rows then lands under a retired generation. When it cannot be
// read the call bypasses the cache entirely.
func (s *RankingService) generation(ctx context.Context) (int64, bool) {
	gen, err := cache.Generation(ctx, s.cache)
	if err != nil {
		log.Warn().Err(err).Msg("Cache generation unavailable, bypassing cache")
		return 0, false
	}
	return gen, true
}

// Cache errors are logged and otherwise ignored: the store is the source of truth.
func (s *RankingService) getCached(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache GET failed, querying store")
		return false
	}
	return found
}

func (s *RankingService) setCached(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache SET failed")
	}
}
