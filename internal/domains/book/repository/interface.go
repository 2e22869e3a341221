package repository

import (
	"context"

	"bookstore-ranking/internal/domains/book/model"
)

// RepositoryInterface is the Catalog Store.
type RepositoryInterface interface {
	// InsertBook fails with model.ErrDuplicateISBN when isbn13 is taken.
	InsertBook(ctx context.Context, book *model.Book) error
	// UpsertBook overwrites the descriptive fields of an existing isbn13 and
	// reports whether the row was new.
	UpsertBook(ctx context.Context, book *model.Book) (inserted bool, err error)
	// ListBooksWithTotals returns every book with its unwindowed sales sum.
	ListBooksWithTotals(ctx context.Context) ([]model.BookWithSales, error)
}
