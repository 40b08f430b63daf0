package kernel

import (
	"github.com/shopspring/decimal"
)

// CentPlaces is the number of decimal places kept for monetary amounts.
const CentPlaces = 2

// DefaultTaxRate is the tax applied to order subtotals when no rate is configured.
// The backend owns the authoritative computation; this mirrors it for previews.
var DefaultTaxRate = decimal.RequireFromString("0.10")

// RoundCents rounds an amount to whole cents, half away from zero.
//
// Example:
//
//	kernel.RoundCents(decimal.RequireFromString("2.598")) // 2.60
//	kernel.RoundCents(decimal.RequireFromString("0.125")) // 0.13
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CentPlaces)
}

// ApplyRate returns amount * rate rounded to cents.
func ApplyRate(amount, rate decimal.Decimal) decimal.Decimal {
	return RoundCents(amount.Mul(rate))
}
