package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseQuantity accepts a non-negative base-10 integer that fits the INTEGER
// column. Empty, fractional, negative or non-numeric values are rejected
// instead of being coerced, so a bad row never becomes a silent zero.
func ParseQuantity(raw string) (int32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidQuantity)
	}

	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidQuantity, raw)
	}

	return int32(n), nil
}
