package repository

import (
	"context"

	"bookstore-ranking/internal/domains/ranking/model"
)

// RepositoryInterface is the read side over books and sales. It never writes.
type RepositoryInterface interface {
	// RankByKey ranks within the week or month whose key equals windowKey.
	RankByKey(ctx context.Context, period model.Period, category model.Category, windowKey string, limit int) ([]model.RankingEntry, error)
	// RankByYear ranks within a calendar year.
	RankByYear(ctx context.Context, category model.Category, year int, limit int) ([]model.RankingEntry, error)
	ListWeeks(ctx context.Context) ([]string, error)
	ListMonths(ctx context.Context) ([]string, error)
}
