package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstore-ranking/internal/domains/ranking/model"
	"bookstore-ranking/internal/testutil"
	"bookstore-ranking/pkg/cache"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) RankByKey(ctx context.Context, period model.Period, category model.Category, windowKey string, limit int) ([]model.RankingEntry, error) {
	args := m.Called(ctx, period, category, windowKey, limit)
	entries, _ := args.Get(0).([]model.RankingEntry)
	return entries, args.Error(1)
}

func (m *mockRepository) RankByYear(ctx context.Context, category model.Category, year int, limit int) ([]model.RankingEntry, error) {
	args := m.Called(ctx, category, year, limit)
	entries, _ := args.Get(0).([]model.RankingEntry)
	return entries, args.Error(1)
}

func (m *mockRepository) ListWeeks(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

func (m *mockRepository) ListMonths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

var fixedNow = func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }

func newTestService(repo *mockRepository, c cache.Cache) ServiceInterface {
	return NewService(repo, c, time.Minute, time.Second, WithClock(fixedNow))
}

func TestRank_MonthlyBook(t *testing.T) {
	repo := new(mockRepository)
	want := []model.RankingEntry{
		{Category: "Title A", ISBN13: "9780000000001", Title: "Title A", TotalSales: 8},
	}
	repo.On("RankByKey", mock.Anything, model.PeriodMonthly, model.CategoryBook, "2024-03", model.TopN).
		Return(want, nil).Once()

	svc := newTestService(repo, nil)
	got, err := svc.Rank(context.Background(), model.RankRequest{
		Period:      model.PeriodMonthly,
		Category:    model.CategoryBook,
		WindowValue: "2024-03",
	})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestRank_UnknownCategoryFallsBackToBook(t *testing.T) {
	repo := new(mockRepository)
	repo.On("RankByKey", mock.Anything, model.PeriodWeekly, model.CategoryBook, "2024-10", model.TopN).
		Return([]model.RankingEntry{}, nil).Twice()

	svc := newTestService(repo, nil)
	for _, category := range []model.Category{"genre", ""} {
		got, err := svc.Rank(context.Background(), model.RankRequest{
			Period:      model.PeriodWeekly,
			Category:    category,
			WindowValue: "2024-10",
		})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	repo.AssertExpectations(t)
}

func TestRank_CategoryAliases(t *testing.T) {
	repo := new(mockRepository)
	repo.On("RankByKey", mock.Anything, model.PeriodMonthly, model.CategoryFeaturedSubject, "2024-03", model.TopN).
		Return([]model.RankingEntry{{Category: "Fiction", TotalSales: 3}}, nil).Once()

	svc := newTestService(repo, nil)
	got, err := svc.Rank(context.Background(), model.RankRequest{
		Period:      model.PeriodMonthly,
		Category:    "materia_destacada",
		WindowValue: "2024-03",
	})

	require.NoError(t, err)
	assert.Equal(t, []model.RankingEntry{{Category: "Fiction", TotalSales: 3}}, got)
	repo.AssertExpectations(t)
}

func TestRank_YearlyIgnoresWindowValue(t *testing.T) {
	repo := new(mockRepository)
	want := []model.RankingEntry{{Category: "Author X", TotalSales: 42}}
	repo.On("RankByYear", mock.Anything, model.CategoryAuthor, 2024, model.TopN).
		Return(want, nil).Twice()

	svc := newTestService(repo, nil)

	first, err := svc.Rank(context.Background(), model.RankRequest{
		Period: model.PeriodYearly, Category: model.CategoryAuthor, WindowValue: "1999",
	})
	require.NoError(t, err)

	second, err := svc.Rank(context.Background(), model.RankRequest{
		Period: model.PeriodYearly, Category: model.CategoryAuthor, WindowValue: "anything",
	})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, want, first)
	repo.AssertExpectations(t)
}

func TestRank_MalformedWindowReturnsEmptyWithoutQuery(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	for _, window := range []string{"", "2024-3", "March", "2024-03-01", "'; DROP TABLE sales; --"} {
		got, err := svc.Rank(context.Background(), model.RankRequest{
			Period: model.PeriodMonthly, Category: model.CategoryBook, WindowValue: window,
		})
		require.NoError(t, err, window)
		assert.Equal(t, []model.RankingEntry{}, got, window)
	}
	repo.AssertNotCalled(t, "RankByKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRank_UnknownPeriod(t *testing.T) {
	svc := newTestService(new(mockRepository), nil)

	_, err := svc.Rank(context.Background(), model.RankRequest{Period: "daily", WindowValue: "2024-01"})
	assert.ErrorIs(t, err, model.ErrUnknownPeriod)
}

func TestRank_StoreErrorPropagates(t *testing.T) {
	repo := new(mockRepository)
	storeErr := errors.New("relation \"sales\" does not exist")
	repo.On("RankByKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, storeErr).Once()

	mc := testutil.NewMemoryCache()
	svc := newTestService(repo, mc)
	_, err := svc.Rank(context.Background(), model.RankRequest{
		Period: model.PeriodWeekly, Category: model.CategoryBook, WindowValue: "2024-01",
	})

	assert.ErrorIs(t, err, storeErr)
	assert.Zero(t, mc.Sets, "failures are not cached")
}

func TestRank_ServesRepeatedCallsFromCache(t *testing.T) {
	repo := new(mockRepository)
	want := []model.RankingEntry{{Category: "Pub Y", TotalSales: 10}}
	repo.On("RankByKey", mock.Anything, model.PeriodWeekly, model.CategoryEditorial, "2024-10", model.TopN).
		Return(want, nil).Once()

	mc := testutil.NewMemoryCache()
	svc := newTestService(repo, mc)
	req := model.RankRequest{Period: model.PeriodWeekly, Category: "publisher", WindowValue: "2024-10"}

	first, err := svc.Rank(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Rank(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
	assert.True(t, mc.Has(cache.VersionedKey(0, "ranking", "weekly", "editorial", "2024-10")))
	repo.AssertExpectations(t)
}

// gatedRepository holds RankByKey until release is closed so a cache
// invalidation can land while the query is still in flight.
type gatedRepository struct {
	mockRepository
	started chan struct{}
	release chan struct{}
	calls   int
}

func (g *gatedRepository) RankByKey(ctx context.Context, period model.Period, category model.Category, windowKey string, limit int) ([]model.RankingEntry, error) {
	g.calls++
	if g.calls == 1 {
		close(g.started)
		<-g.release
		return []model.RankingEntry{{Category: "Old", TotalSales: 1}}, nil
	}
	return []model.RankingEntry{{Category: "New", TotalSales: 9}}, nil
}

func TestRank_QueryOverlappingInvalidationIsNotServedAfterIt(t *testing.T) {
	repo := &gatedRepository{started: make(chan struct{}), release: make(chan struct{})}
	mc := testutil.NewMemoryCache()
	svc := NewService(repo, mc, time.Minute, time.Second, WithClock(fixedNow))
	req := model.RankRequest{Period: model.PeriodWeekly, Category: model.CategoryEditorial, WindowValue: "2024-10"}

	done := make(chan []model.RankingEntry)
	go func() {
		entries, err := svc.Rank(context.Background(), req)
		assert.NoError(t, err)
		done <- entries
	}()

	<-repo.started
	require.NoError(t, cache.Invalidate(context.Background(), mc))
	close(repo.release)
	assert.Equal(t, []model.RankingEntry{{Category: "Old", TotalSales: 1}}, <-done)

	got, err := svc.Rank(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []model.RankingEntry{{Category: "New", TotalSales: 9}}, got)
	assert.Equal(t, 2, repo.calls)
}

func TestRank_CacheFailureFallsThroughToStore(t *testing.T) {
	repo := new(mockRepository)
	want := []model.RankingEntry{{Category: "Title A", ISBN13: "1", Title: "Title A", TotalSales: 1}}
	repo.On("RankByKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(want, nil).Once()

	mc := testutil.NewMemoryCache()
	mc.Err = errors.New("redis: connection refused")

	got, err := newTestService(repo, mc).Rank(context.Background(), model.RankRequest{
		Period: model.PeriodMonthly, Category: model.CategoryBook, WindowValue: "2024-03",
	})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Zero(t, mc.Sets, "nothing is written while the generation is unreadable")
}

func TestRank_NilResultBecomesEmptySlice(t *testing.T) {
	repo := new(mockRepository)
	repo.On("RankByKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	got, err := newTestService(repo, nil).Rank(context.Background(), model.RankRequest{
		Period: model.PeriodMonthly, Category: model.CategoryBook, WindowValue: "2030-01",
	})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestListAvailableWeeksAndMonths(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListWeeks", mock.Anything).Return([]string{"2024-09", "2024-11"}, nil).Once()
	repo.On("ListMonths", mock.Anything).Return([]string{"2024-03"}, nil).Once()

	mc := testutil.NewMemoryCache()
	svc := newTestService(repo, mc)

	weeks, err := svc.ListAvailableWeeks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.WeekEntry{{Week: "2024-09"}, {Week: "2024-11"}}, weeks)

	months, err := svc.ListAvailableMonths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.MonthEntry{{Month: "2024-03"}}, months)

	// second round comes from the cache
	again, err := svc.ListAvailableMonths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, months, again)
	repo.AssertExpectations(t)
}

func TestListAvailableMonths_EmptyLedger(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListMonths", mock.Anything).Return([]string{}, nil).Once()

	months, err := newTestService(repo, nil).ListAvailableMonths(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, months)
	assert.Empty(t, months)
}

func TestRank_AppliesQueryTimeout(t *testing.T) {
	repo := new(mockRepository)
	repo.On("RankByKey", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]model.RankingEntry{}, nil).Once()

	_, err := newTestService(repo, nil).Rank(context.Background(), model.RankRequest{
		Period: model.PeriodWeekly, Category: model.CategoryBook, WindowValue: "2024-01",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
