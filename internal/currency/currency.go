// Package currency wraps go-money for the small set of currency
// concerns this service has: validating a user's preferred currency
// code and formatting decimal totals for display. No conversion between
// currencies happens anywhere.
package currency

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Supported is the set of currencies a user may select in preferences.
var Supported = []string{
	"AUD", "USD", "EUR", "GBP", "NZD", "CAD", "JPY", "SGD", "HKD", "CHF",
}

// IsSupported reports whether code is a selectable preference currency.
func IsSupported(code string) bool {
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}

// Validate checks that code is both a real ISO 4217 currency and one of
// the supported set.
func Validate(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	if !IsSupported(code) {
		return fmt.Errorf("currency %s is not supported", code)
	}
	return nil
}

// Format renders an exact decimal amount in the locale conventions of
// the given currency (symbol, grouping, fraction digits). The amount is
// rounded to the currency's minor unit for display only; stored values
// keep full precision.
func Format(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.String()
	}
	exp := int32(cur.Fraction)
	minor := amount.Shift(exp).Round(0).IntPart()
	return money.New(minor, code).Display()
}
