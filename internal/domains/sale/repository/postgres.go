package repository

import (
	"context"
	"fmt"

	"bookstore-ranking/internal/domains/sale/model"
	"bookstore-ranking/pkg/database"
)

const insertSaleSQL = `
	INSERT INTO sales (isbn13, sale_date, quantity)
	VALUES ($1, $2::date, $3)
	RETURNING id`

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

// InsertSale runs as its own statement, so every row commits independently.
func (r *postgresRepository) InsertSale(ctx context.Context, sale *model.SaleEvent) error {
	err := r.db.QueryRow(ctx, insertSaleSQL, sale.ISBN13, sale.Date, sale.Quantity).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert sale %s %s: %w", sale.ISBN13, sale.Date, err)
	}
	return nil
}
