package service

import (
	"context"

	"bookstore-ranking/internal/domains/ranking/model"
)

// ServiceInterface groups the Ranking Engine and the Window Catalog.
type ServiceInterface interface {
	Rank(ctx context.Context, req model.RankRequest) ([]model.RankingEntry, error)
	ListAvailableWeeks(ctx context.Context) ([]model.WeekEntry, error)
	ListAvailableMonths(ctx context.Context) ([]model.MonthEntry, error)
}
