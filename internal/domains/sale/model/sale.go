package model

// SaleEvent is a Sales Ledger row. ID is assigned by the store and only
// guarantees row uniqueness; Date is always canonical YYYY-MM-DD.
type SaleEvent struct {
	ID       int64  `json:"id"`
	ISBN13   string `json:"isbn13"`
	Date     string `json:"fecha"`
	Quantity int32  `json:"ventas"`
}
