package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchResult_RejectCapsReportedErrors(t *testing.T) {
	r := &BatchResult{}
	for i := 0; i < MaxReportedErrors+5; i++ {
		r.Reject(i+2, "bad")
	}

	assert.Equal(t, MaxReportedErrors+5, r.Rejected)
	assert.Len(t, r.Errors, MaxReportedErrors)
	assert.Equal(t, RowError{Line: 2, Reason: "bad"}, r.Errors[0])
}

func TestBatchResult_Summary(t *testing.T) {
	r := &BatchResult{
		BatchID:   "b-1",
		Kind:      KindSales,
		Source:    "ventas.csv",
		TotalRows: 3,
		Inserted:  2,
		Rejected:  1,
	}

	assert.Equal(t,
		`sales file "ventas.csv" processed: 3 rows read, 2 inserted, 0 updated, 1 rejected (batch b-1)`,
		r.Summary())
}
