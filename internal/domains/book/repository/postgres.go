package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"bookstore-ranking/internal/domains/book/model"
	"bookstore-ranking/pkg/database"
)

const uniqueViolation = "23505"

const (
	insertBookSQL = `
		INSERT INTO books (isbn13, title, author, publisher, featured_subject)
		VALUES ($1, $2, $3, $4, $5)`

	upsertBookSQL = `
		INSERT INTO books (isbn13, title, author, publisher, featured_subject)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (isbn13) DO UPDATE SET
			title            = EXCLUDED.title,
			author           = EXCLUDED.author,
			publisher        = EXCLUDED.publisher,
			featured_subject = EXCLUDED.featured_subject
		RETURNING (xmax = 0) AS inserted`

	// Books are grouped by primary key, so the other book columns can be
	// selected without aggregating them.
	listBooksWithTotalsSQL = `
		SELECT
			b.isbn13,
			b.title,
			b.author,
			b.publisher,
			b.featured_subject,
			COALESCE(SUM(s.quantity), 0)::BIGINT AS total_sales
		FROM books b
		LEFT JOIN sales s ON s.isbn13 = b.isbn13
		GROUP BY b.isbn13
		ORDER BY b.isbn13`
)

type postgresRepository struct {
	db database.Querier
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) InsertBook(ctx context.Context, book *model.Book) error {
	_, err := r.db.Exec(ctx, insertBookSQL, bookArgs(book)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", model.ErrDuplicateISBN, book.ISBN13)
		}
		return fmt.Errorf("insert book %s: %w", book.ISBN13, err)
	}
	return nil
}

// UpsertBook reports inserted=false when an existing row was overwritten.
// xmax is zero only for a freshly inserted tuple.
func (r *postgresRepository) UpsertBook(ctx context.Context, book *model.Book) (bool, error) {
	var inserted bool
	if err := r.db.QueryRow(ctx, upsertBookSQL, bookArgs(book)...).Scan(&inserted); err != nil {
		return false, fmt.Errorf("upsert book %s: %w", book.ISBN13, err)
	}
	return inserted, nil
}

func (r *postgresRepository) ListBooksWithTotals(ctx context.Context) ([]model.BookWithSales, error) {
	rows, err := r.db.Query(ctx, listBooksWithTotalsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrListBooks, err)
	}
	defer rows.Close()

	books := make([]model.BookWithSales, 0)
	for rows.Next() {
		var b model.BookWithSales
		if err := rows.Scan(
			&b.ISBN13,
			&b.Title,
			&b.Author,
			&b.Publisher,
			&b.FeaturedSubject,
			&b.TotalSales,
		); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", model.ErrListBooks, err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %w", model.ErrListBooks, err)
	}

	return books, nil
}

func bookArgs(b *model.Book) []any {
	return []any{b.ISBN13, b.Title, b.Author, b.Publisher, b.FeaturedSubject}
}
