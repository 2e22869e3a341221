package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstore-ranking/internal/domains/book/model"
	"bookstore-ranking/internal/testutil"
	"bookstore-ranking/pkg/cache"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) InsertBook(ctx context.Context, book *model.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockRepository) UpsertBook(ctx context.Context, book *model.Book) (bool, error) {
	args := m.Called(ctx, book)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ListBooksWithTotals(ctx context.Context) ([]model.BookWithSales, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]model.BookWithSales)
	return books, args.Error(1)
}

var listing = []model.BookWithSales{
	{
		Book: model.Book{
			ISBN13:          "9780000000001",
			Title:           "Title A",
			Author:          "Author X",
			Publisher:       "Pub Y",
			FeaturedSubject: "Fiction",
		},
		TotalSales: 8,
	},
	{
		Book:       model.Book{ISBN13: "9780000000002", Title: "Unsold"},
		TotalSales: 0,
	},
}

func TestListBooksWithTotals_CachesListing(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListBooksWithTotals", mock.Anything).Return(listing, nil).Once()

	svc := NewService(repo, testutil.NewMemoryCache(), time.Minute, time.Second)

	first, err := svc.ListBooksWithTotals(context.Background())
	require.NoError(t, err)
	second, err := svc.ListBooksWithTotals(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(listing, first); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached listing differs (-first +second):\n%s", diff)
	}
	repo.AssertExpectations(t)
}

func TestListBooksWithTotals_ListingStartedBeforeIngestionIsNotReused(t *testing.T) {
	stale := []model.BookWithSales{{Book: model.Book{ISBN13: "9780000000001"}, TotalSales: 1}}
	fresh := []model.BookWithSales{{Book: model.Book{ISBN13: "9780000000001"}, TotalSales: 9}}
	started, release := make(chan struct{}), make(chan struct{})

	repo := new(mockRepository)
	repo.On("ListBooksWithTotals", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(stale, nil).Once()
	repo.On("ListBooksWithTotals", mock.Anything).Return(fresh, nil).Once()

	mc := testutil.NewMemoryCache()
	svc := NewService(repo, mc, time.Minute, time.Second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := svc.ListBooksWithTotals(context.Background())
		assert.NoError(t, err)
	}()

	<-started
	require.NoError(t, cache.Invalidate(context.Background(), mc))
	close(release)
	<-done

	got, err := svc.ListBooksWithTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	repo.AssertExpectations(t)
}

func TestListBooksWithTotals_Error(t *testing.T) {
	repo := new(mockRepository)
	storeErr := errors.New("boom")
	repo.On("ListBooksWithTotals", mock.Anything).Return(nil, storeErr)

	_, err := NewService(repo, nil, time.Minute, time.Second).ListBooksWithTotals(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestExportBooksToExcel(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListBooksWithTotals", mock.Anything).Return(listing, nil)

	f, err := NewService(repo, nil, time.Minute, time.Second).ExportBooksToExcel(context.Background())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ISBN13", "Title", "Author", "Publisher", "Featured Subject", "Total Sales"}, rows[0])
	assert.Equal(t, []string{"9780000000001", "Title A", "Author X", "Pub Y", "Fiction", "8"}, rows[1])
	assert.Equal(t, "0", rows[2][5])
}
