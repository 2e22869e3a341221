package service

import (
	"context"
	"io"

	"bookstore-ranking/internal/domains/ingestion/model"
)

// ServiceInterface is the Ingestion Pipeline. Both entry points consume r to
// the end. Row-level problems are counted in the result; a non-nil error means
// the stream itself failed and the result describes the rows handled so far.
type ServiceInterface interface {
	IngestCatalog(ctx context.Context, r io.Reader, source string) (*model.BatchResult, error)
	IngestSales(ctx context.Context, r io.Reader, source string) (*model.BatchResult, error)
}
