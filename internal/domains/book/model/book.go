package model

// Book is a Catalog Store row, keyed by isbn13.
// JSON names match the columns of the catalog file so the book browser can
// render uploads and listings with the same field names.
type Book struct {
	ISBN13          string `json:"isbn13"`
	Title           string `json:"titulo"`
	Author          string `json:"autor"`
	Publisher       string `json:"editorial"`
	FeaturedSubject string `json:"texto_bic_materia_destacada"`
}

// BookWithSales is one row of the book listing: the Book plus its all-time
// sales total. TotalSales is 0, never absent, for books without sales.
type BookWithSales struct {
	Book
	TotalSales int64 `json:"total_sales"`
}
