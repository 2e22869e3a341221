package repository

import (
	"fmt"

	"bookstore-ranking/internal/domains/ranking/model"
)

// The grouping column and the window predicate come from these closed sets;
// caller supplied text only ever reaches the query as a bind parameter.

// Formats shared by the ranking predicates and the window catalog, so every
// listed window is a valid ranking input.
const (
	weekKeyExpr  = `to_char(s.sale_date, 'IYYY-IW')`
	monthKeyExpr = `to_char(s.sale_date, 'YYYY-MM')`
)

type grouping struct {
	// selectKeys yields (category, isbn13, title) for every row.
	selectKeys string
	groupBy    string
	// tieBreak orders groups with equal totals.
	tieBreak string
}

var groupings = map[model.Category]grouping{
	model.CategoryAuthor: {
		selectKeys: `b.author AS category, '' AS isbn13, '' AS title`,
		groupBy:    `b.author`,
		tieBreak:   `b.author`,
	},
	model.CategoryEditorial: {
		selectKeys: `b.publisher AS category, '' AS isbn13, '' AS title`,
		groupBy:    `b.publisher`,
		tieBreak:   `b.publisher`,
	},
	model.CategoryFeaturedSubject: {
		selectKeys: `b.featured_subject AS category, '' AS isbn13, '' AS title`,
		groupBy:    `b.featured_subject`,
		tieBreak:   `b.featured_subject`,
	},
	model.CategoryBook: {
		selectKeys: `b.title AS category, b.isbn13, b.title`,
		groupBy:    `b.isbn13, b.title`,
		tieBreak:   `b.title, b.isbn13`,
	},
}

func groupingFor(category model.Category) grouping {
	if g, ok := groupings[category]; ok {
		return g
	}
	return groupings[model.CategoryBook]
}

// windowPredicate returns the WHERE clause for period; it takes one bind parameter ($1).
func windowPredicate(period model.Period) (string, error) {
	switch period {
	case model.PeriodWeekly:
		return weekKeyExpr + ` = $1`, nil
	case model.PeriodMonthly:
		return monthKeyExpr + ` = $1`, nil
	case model.PeriodYearly:
		// range form keeps idx_sales_sale_date usable
		return `s.sale_date >= make_date($1::int, 1, 1) AND s.sale_date < make_date($1::int + 1, 1, 1)`, nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrUnknownPeriod, period)
	}
}

// buildRankQuery assembles the ranking statement. $1 is the window value, $2 the limit.
func buildRankQuery(period model.Period, category model.Category) (string, error) {
	where, err := windowPredicate(period)
	if err != nil {
		return "", err
	}
	g := groupingFor(category)

	return fmt.Sprintf(`
		SELECT %s, SUM(s.quantity)::BIGINT AS total_sales
		FROM sales s
		JOIN books b ON b.isbn13 = s.isbn13
		WHERE %s
		GROUP BY %s
		ORDER BY total_sales DESC, %s
		LIMIT $2`, g.selectKeys, where, g.groupBy, g.tieBreak), nil
}

func buildWindowListQuery(keyExpr, alias string) string {
	return fmt.Sprintf(`
		SELECT DISTINCT %s AS %s
		FROM sales s
		ORDER BY %s`, keyExpr, alias, alias)
}
