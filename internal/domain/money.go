package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary value received over the wire into an
// exact decimal. Monetary values cross the API boundary as strings so
// they never pass through a binary float.
//
// Parsing is strict: an empty or unparsable value returns
// ErrInvalidInput instead of silently becoming zero, so data corruption
// cannot masquerade as a legitimate zero balance.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", ErrInvalidInput, s)
	}
	return d, nil
}

// ParseAmountOrZero is the explicit opt-in lenient variant of
// ParseAmount: an empty value is treated as zero. An unparsable
// non-empty value still fails.
func ParseAmountOrZero(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(s)
}

// ParseOptionalAmount parses a nullable monetary field. A nil or empty
// value yields nil; anything else must parse exactly.
func ParseOptionalAmount(s *string) (*decimal.Decimal, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := ParseAmount(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
