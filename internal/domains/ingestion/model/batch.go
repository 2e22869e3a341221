package model

import (
	"fmt"
	"time"
)

// Kind names the record type of an uploaded file.
type Kind string

const (
	KindCatalog Kind = "catalog"
	KindSales   Kind = "sales"
)

// Column names of the semicolon separated input files.
const (
	ColISBN13          = "isbn13"
	ColTitle           = "titulo"
	ColAuthor          = "autor"
	ColPublisher       = "editorial"
	ColFeaturedSubject = "texto_bic_materia_destacada"
	ColDate            = "fecha"
	ColQuantity        = "ventas"
)

// Policies for a catalog row whose isbn13 is already stored.
const (
	OnDuplicateSkip   = "skip"
	OnDuplicateUpdate = "update"
)

// Separator between fields of every input file.
const Separator = ';'

// MaxReportedErrors bounds BatchResult.Errors; Rejected still counts every row.
const MaxReportedErrors = 50

// RowError describes one rejected data row. Line is the 1-based line in the file.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// BatchResult summarises one ingested file.
type BatchResult struct {
	BatchID    string     `json:"batch_id"`
	Kind       Kind       `json:"kind"`
	Source     string     `json:"source"`
	TotalRows  int        `json:"total_rows"`
	Inserted   int        `json:"inserted"`
	Updated    int        `json:"updated"`
	Rejected   int        `json:"rejected"`
	Errors     []RowError `json:"errors,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

func (r *BatchResult) Reject(line int, reason string) {
	r.Rejected++
	if len(r.Errors) < MaxReportedErrors {
		r.Errors = append(r.Errors, RowError{Line: line, Reason: reason})
	}
}

// Summary is the plain-text confirmation returned to uploaders.
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("%s file %q processed: %d rows read, %d inserted, %d updated, %d rejected (batch %s)",
		r.Kind, r.Source, r.TotalRows, r.Inserted, r.Updated, r.Rejected, r.BatchID)
}
