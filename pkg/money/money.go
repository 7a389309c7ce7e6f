// Package money wraps shopspring/decimal with the rounding and ratio rules the
// invoicing rollups rely on. All amounts are treated as two-decimal currency.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Zero is the additive identity for rollups.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// FromFloat converts a float amount, rounding to two decimal places.
func FromFloat(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(2)
}

// FromString parses a decimal amount, rounding to two decimal places.
func FromString(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return d.Round(2), nil
}

// Round normalizes an amount to two decimal places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum adds amounts without rounding intermediate results.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MulInt multiplies an amount by an integer quantity.
func MulInt(amount decimal.Decimal, qty int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(qty)))
}

// Ratio returns part/whole*100 rounded to two decimals, or zero when the
// denominator is not positive.
func Ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// IsPositive reports whether the amount is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// IsNegative reports whether the amount is strictly less than zero.
func IsNegative(d decimal.Decimal) bool {
	return d.LessThan(decimal.Zero)
}

// Format renders an amount with a currency symbol, e.g. "Rs. 1250.50".
func Format(symbol string, d decimal.Decimal) string {
	if symbol == "" {
		return d.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", symbol, d.StringFixed(2))
}
