package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"bookstore-ranking/internal/domains/book/model"
)

// ServiceInterface backs the book browser.
type ServiceInterface interface {
	ListBooksWithTotals(ctx context.Context) ([]model.BookWithSales, error)
	ExportBooksToExcel(ctx context.Context) (*excelize.File, error)
}
