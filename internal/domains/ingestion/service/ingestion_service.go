package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookModel "bookstore-ranking/internal/domains/book/model"
	bookRepo "bookstore-ranking/internal/domains/book/repository"
	"bookstore-ranking/internal/domains/ingestion/model"
	saleModel "bookstore-ranking/internal/domains/sale/model"
	saleRepo "bookstore-ranking/internal/domains/sale/repository"
	"bookstore-ranking/internal/shared/utils"
	"bookstore-ranking/pkg/cache"
)

type Options struct {
	Encoding    string // utf-8 (default) or windows-1252
	OnDuplicate string // skip (default) or update
}

type IngestionService struct {
	books bookRepo.RepositoryInterface
	sales saleRepo.RepositoryInterface
	cache cache.Cache
	opts  Options
	now   func() time.Time
}

func NewService(
	books bookRepo.RepositoryInterface,
	sales saleRepo.RepositoryInterface,
	c cache.Cache,
	opts Options,
) ServiceInterface {
	if c == nil {
		c = cache.NewNoop()
	}
	return &IngestionService{
		books: books,
		sales: sales,
		cache: c,
		opts:  opts,
		now:   time.Now,
	}
}

// rowFunc handles one data row and reports a row-level rejection reason via err.
// inserted=false with a nil error means an existing row was updated.
type rowFunc func(ctx context.Context, rec record) (inserted bool, err error)

var catalogColumns = []string{model.ColISBN13}
var salesColumns = []string{model.ColISBN13, model.ColDate, model.ColQuantity}

func (s *IngestionService) IngestCatalog(ctx context.Context, r io.Reader, source string) (*model.BatchResult, error) {
	return s.run(ctx, model.KindCatalog, r, source, catalogColumns, s.catalogRow)
}

func (s *IngestionService) IngestSales(ctx context.Context, r io.Reader, source string) (*model.BatchResult, error) {
	return s.run(ctx, model.KindSales, r, source, salesColumns, s.salesRow)
}

func (s *IngestionService) run(
	ctx context.Context,
	kind model.Kind,
	r io.Reader,
	source string,
	required []string,
	handle rowFunc,
) (*model.BatchResult, error) {
	result := &model.BatchResult{
		BatchID:   uuid.New().String(),
		Kind:      kind,
		Source:    source,
		StartedAt: s.now(),
	}
	logger := log.With().Str("batch_id", result.BatchID).Str("kind", string(kind)).Logger()

	err := s.consume(ctx, result, r, required, handle)
	result.FinishedAt = s.now()

	// Rows already committed stay visible even when the stream failed.
	if result.Inserted+result.Updated > 0 {
		if cacheErr := cache.Invalidate(ctx, s.cache); cacheErr != nil {
			logger.Warn().Err(cacheErr).Msg("[IngestionService] cache invalidation failed")
		}
	}

	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}
	event.
		Str("source", source).
		Int("total_rows", result.TotalRows).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("rejected", result.Rejected).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("[IngestionService] batch finished")

	return result, err
}

func (s *IngestionService) consume(
	ctx context.Context,
	result *model.BatchResult,
	r io.Reader,
	required []string,
	handle rowFunc,
) error {
	decoded, err := utils.NewDecodingReader(r, s.opts.Encoding)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrUnreadableInput, err)
	}

	reader, err := newRecordReader(decoded)
	if err != nil {
		return err
	}
	for _, col := range required {
		if !reader.hasColumn(col) {
			return fmt.Errorf("%w: header has no %q column", model.ErrUnreadableInput, col)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := reader.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, model.ErrMalformedRecord) {
			result.TotalRows++
			s.reject(result, rec, err)
			continue
		}
		if err != nil {
			return err
		}

		result.TotalRows++
		inserted, err := handle(ctx, rec)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.reject(result, rec, err)
		case inserted:
			result.Inserted++
		default:
			result.Updated++
		}
	}
}

func (s *IngestionService) reject(result *model.BatchResult, rec record, err error) {
	result.Reject(rec.line, err.Error())
	log.Warn().
		Err(err).
		Str("batch_id", result.BatchID).
		Int("line", rec.line).
		Str("record", rec.raw()).
		Msg("[IngestionService] row rejected")
}

func (s *IngestionService) catalogRow(ctx context.Context, rec record) (bool, error) {
	book := &bookModel.Book{
		ISBN13:          rec.get(model.ColISBN13),
		Title:           rec.get(model.ColTitle),
		Author:          rec.get(model.ColAuthor),
		Publisher:       rec.get(model.ColPublisher),
		FeaturedSubject: rec.get(model.ColFeaturedSubject),
	}

	inserted := true
	var err error
	if s.opts.OnDuplicate == model.OnDuplicateUpdate {
		inserted, err = s.books.UpsertBook(ctx, book)
	} else {
		err = s.books.InsertBook(ctx, book)
	}
	if err != nil {
		return false, err
	}

	log.Info().
		Str("isbn13", book.ISBN13).
		Int("line", rec.line).
		Bool("inserted", inserted).
		Msg("[IngestionService] book stored")
	return inserted, nil
}

func (s *IngestionService) salesRow(ctx context.Context, rec record) (bool, error) {
	date, err := saleModel.NormalizeSaleDate(rec.get(model.ColDate))
	if err != nil {
		return false, err
	}
	quantity, err := saleModel.ParseQuantity(rec.get(model.ColQuantity))
	if err != nil {
		return false, err
	}

	sale := &saleModel.SaleEvent{
		ISBN13:   rec.get(model.ColISBN13),
		Date:     date,
		Quantity: quantity,
	}
	if err := s.sales.InsertSale(ctx, sale); err != nil {
		return false, err
	}

	log.Info().
		Str("isbn13", sale.ISBN13).
		Int("line", rec.line).
		Int64("sale_id", sale.ID).
		Msg("[IngestionService] sale stored")
	return true, nil
}
