package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekKey(t *testing.T) {
	tests := map[string]string{
		"2024-02-12": "2024-07",
		"2024-01-01": "2024-01",
		"2024-12-30": "2025-01", // ISO year rolls over
		"2021-01-03": "2020-53",
		"2024-03-15": "2024-11",
	}
	for in, want := range tests {
		assert.Equal(t, want, WeekKey(date(in)), in)
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-03", MonthKey(date("2024-03-01")))
	assert.Equal(t, "1999-12", MonthKey(date("1999-12-31")))
}

func TestIsWindowKey(t *testing.T) {
	assert.True(t, IsWindowKey("2024-07"))
	assert.True(t, IsWindowKey("2024-12"))
	assert.False(t, IsWindowKey(""))
	assert.False(t, IsWindowKey("2024-7"))
	assert.False(t, IsWindowKey("2024-07-01"))
	assert.False(t, IsWindowKey("'; DROP TABLE sales; --"))
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"weekly", "monthly", "yearly", " Weekly "} {
		_, err := ParsePeriod(s)
		require.NoError(t, err, s)
	}

	_, err := ParsePeriod("daily")
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryAuthor, ParseCategory("author"))
	assert.Equal(t, CategoryEditorial, ParseCategory("editorial"))
	assert.Equal(t, CategoryFeaturedSubject, ParseCategory("featured_subject"))
	assert.Equal(t, CategoryFeaturedSubject, ParseCategory("materia_destacada"))
	assert.Equal(t, CategoryBook, ParseCategory("book"))
}

func TestParseCategory_UnknownFallsBackToBook(t *testing.T) {
	for _, s := range []string{"", "unknown-category", "books.titulo; DROP TABLE books"} {
		assert.Equal(t, CategoryBook, ParseCategory(s), s)
	}
}
