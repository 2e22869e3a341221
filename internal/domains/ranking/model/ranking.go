package model

// RankRequest is one call to the Ranking Engine. WindowValue is the week or
// month key; it is ignored for PeriodYearly, which always means the current year.
type RankRequest struct {
	Period      Period
	Category    Category
	WindowValue string
}

// RankingEntry is one group of a ranking. For CategoryBook, Category holds the
// title and ISBN13/Title identify the book; other categories leave them empty.
type RankingEntry struct {
	Category   string `json:"category"`
	ISBN13     string `json:"isbn13,omitempty"`
	Title      string `json:"titulo,omitempty"`
	TotalSales int64  `json:"total_sales"`
}

type WeekEntry struct {
	Week string `json:"week"`
}

type MonthEntry struct {
	Month string `json:"month"`
}
