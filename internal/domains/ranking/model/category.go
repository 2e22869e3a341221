package model

import "strings"

// Category is the grouping dimension of a ranking.
type Category string

const (
	CategoryAuthor          Category = "author"
	CategoryEditorial       Category = "editorial"
	CategoryFeaturedSubject Category = "featured_subject"
	CategoryBook            Category = "book"
)

var categoryAliases = map[string]Category{
	"author":            CategoryAuthor,
	"autor":             CategoryAuthor,
	"editorial":         CategoryEditorial,
	"publisher":         CategoryEditorial,
	"featured_subject":  CategoryFeaturedSubject,
	"materia_destacada": CategoryFeaturedSubject,
	"book":              CategoryBook,
}

// ParseCategory never fails: unknown input ranks per title.
func ParseCategory(s string) Category {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c
	}
	return CategoryBook
}
