package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// SourceDateLayout is the DD-MM-YYYY layout of the sales file.
	SourceDateLayout = "02-01-2006"
	// CanonicalDateLayout is how dates are stored: YYYY-MM-DD.
	CanonicalDateLayout = "2006-01-02"
)

var sourceDatePattern = regexp.MustCompile(`^[0-9]{2}-[0-9]{2}-[0-9]{4}$`)

// NormalizeSaleDate turns "15-03-2024" into "2024-03-15".
// Anything that is not exactly DD-MM-YYYY, or is not a real calendar date
// (31-13-2024, 30-02-2024), returns ErrInvalidSaleDate.
func NormalizeSaleDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !sourceDatePattern.MatchString(raw) {
		return "", fmt.Errorf("%w: %q is not DD-MM-YYYY", ErrInvalidSaleDate, raw)
	}

	t, err := time.Parse(SourceDateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidSaleDate, raw, err)
	}
	// year 0000 parses but PostgreSQL has no year zero
	if t.Year() < 1 {
		return "", fmt.Errorf("%w: %q: year out of range", ErrInvalidSaleDate, raw)
	}

	canonical := t.Format(CanonicalDateLayout)
	if err := validation.Validate(canonical, validation.Date(CanonicalDateLayout)); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidSaleDate, raw, err)
	}

	return canonical, nil
}
