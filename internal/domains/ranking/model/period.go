package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Period selects the date window a ranking is computed over.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// TopN caps every ranking.
const TopN = 10

// windowKeyPattern is the shape of both week keys (2024-07) and month keys (2024-03).
var windowKeyPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}$`)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// WeekKey is the ISO year and ISO week of t, zero padded: 2024-07.
// Around New Year the ISO year can differ from the calendar year
// (2024-12-30 is week 2025-01).
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-%02d", year, week)
}

// MonthKey is the calendar year and month of t: 2024-03.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// IsWindowKey reports whether s has the shape WeekKey and MonthKey produce.
// Anything else can never match a stored sale.
func IsWindowKey(s string) bool {
	return windowKeyPattern.MatchString(s)
}
