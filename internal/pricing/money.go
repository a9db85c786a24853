package pricing

import (
	"github.com/shopspring/decimal"
)

// Currency is the single currency every amount is expressed in
const Currency = "TND"

// Placeholder stands in for a label that cannot be resolved
const Placeholder = "—"

// FormatMoney renders an amount with two fraction digits and the currency
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + Currency
}

// FormatAmount renders an amount with two fraction digits
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// safeDiv divides a by b, yielding 0 when b is not positive
func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if !b.IsPositive() {
		return decimal.Zero
	}
	return a.Div(b)
}
