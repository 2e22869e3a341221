package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"bookstore-ranking/internal/domains/ranking/model"
	"bookstore-ranking/pkg/database"
)

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) RankByKey(ctx context.Context, period model.Period, category model.Category, windowKey string, limit int) ([]model.RankingEntry, error) {
	if period != model.PeriodWeekly && period != model.PeriodMonthly {
		return nil, fmt.Errorf("%w: %q has no window key", model.ErrUnknownPeriod, period)
	}
	return r.rank(ctx, period, category, windowKey, limit)
}

func (r *postgresRepository) RankByYear(ctx context.Context, category model.Category, year int, limit int) ([]model.RankingEntry, error) {
	return r.rank(ctx, model.PeriodYearly, category, year, limit)
}

func (r *postgresRepository) rank(ctx context.Context, period model.Period, category model.Category, window any, limit int) ([]model.RankingEntry, error) {
	query, err := buildRankQuery(period, category)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("period", string(period)).
		Str("category", string(category)).
		Interface("window", window).
		Msg("[RankingRepository] executing ranking query")

	rows, err := r.db.Query(ctx, query, window, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrRankingQuery, err)
	}
	defer rows.Close()

	entries := make([]model.RankingEntry, 0, limit)
	for rows.Next() {
		var e model.RankingEntry
		if err := rows.Scan(&e.Category, &e.ISBN13, &e.Title, &e.TotalSales); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", model.ErrRankingQuery, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrRankingQuery, err)
	}

	return entries, nil
}

func (r *postgresRepository) ListWeeks(ctx context.Context) ([]string, error) {
	return r.listKeys(ctx, buildWindowListQuery(weekKeyExpr, "week"))
}

func (r *postgresRepository) ListMonths(ctx context.Context) ([]string, error) {
	return r.listKeys(ctx, buildWindowListQuery(monthKeyExpr, "month"))
}

func (r *postgresRepository) listKeys(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrWindowQuery, err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrWindowQuery, err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}
