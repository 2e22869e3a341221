package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"bookstore-ranking/internal/domains/book/model"
	"bookstore-ranking/internal/domains/book/repository"
	"bookstore-ranking/pkg/cache"
)

const exportSheetName = "Books"

type BookService struct {
	repo         repository.RepositoryInterface
	cache        cache.Cache
	cacheTTL     time.Duration
	queryTimeout time.Duration
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, c cache.Cache, cacheTTL, queryTimeout time.Duration) ServiceInterface {
	if c == nil {
		c = cache.NewNoop()
	}
	return &BookService{
		repo:         repo,
		cache:        c,
		cacheTTL:     cacheTTL,
		queryTimeout: queryTimeout,
	}
}

func (s *BookService) ListBooksWithTotals(ctx context.Context) ([]model.BookWithSales, error) {
	// Read the generation before the store so a listing computed from rows older
	// than the last ingestion batch is cached under a retired key.
	gen, err := cache.Generation(ctx, s.cache)
	cacheOK := err == nil
	if err != nil {
		log.Warn().Err(err).Msg("Cache generation unavailable, bypassing cache")
	}
	cacheKey := cache.VersionedKey(gen, "books")

	if cacheOK {
		var cached []model.BookWithSales
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Cache GET failed, querying store")
		}
		if found {
			return cached, nil
		}
	}

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	books, err := s.repo.ListBooksWithTotals(ctx)
	if err != nil {
		return nil, err
	}

	if cacheOK {
		if err := s.cache.Set(ctx, cacheKey, books, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Cache SET failed")
		}
	}

	return books, nil
}

// ExportBooksToExcel renders the listing as a single-sheet workbook.
func (s *BookService) ExportBooksToExcel(ctx context.Context) (*excelize.File, error) {
	books, err := s.ListBooksWithTotals(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildBooksExcelFile(books []model.BookWithSales) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	headers := []string{"ISBN13", "Title", "Author", "Publisher", "Featured Subject", "Total Sales"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(exportSheetName, "A1", "F1", headerStyle)
	}

	for i, b := range books {
		rowNum := i + 2
		values := []interface{}{b.ISBN13, b.Title, b.Author, b.Publisher, b.FeaturedSubject, b.TotalSales}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
