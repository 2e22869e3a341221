package repository

import (
	"context"

	"bookstore-ranking/internal/domains/sale/model"
)

// RepositoryInterface is the append-only Sales Ledger.
type RepositoryInterface interface {
	// InsertSale appends one event and sets sale.ID.
	InsertSale(ctx context.Context, sale *model.SaleEvent) error
}
