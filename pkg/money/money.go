// Package money provides cent-precision helpers used wherever engine
// totals must reconcile exactly.
package money

import (
	"github.com/shopspring/decimal"
)

// Cent is the smallest amount the engine distinguishes. Comparisons
// against totals use this as the reconciliation tolerance.
var Cent = decimal.New(1, -2)

// RoundCents rounds an amount to two decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat builds a decimal amount from a float64.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// WithinCent reports whether two amounts agree to within one cent.
func WithinCent(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Cent)
}

// AtMostCent reports whether an amount is at or below one cent. Categories
// and liabilities at this level are treated as exhausted.
func AtMostCent(d decimal.Decimal) bool {
	return d.LessThanOrEqual(Cent)
}

// ClampZero returns the amount floored at zero.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Format renders an amount as a dollar string with two decimal places.
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
