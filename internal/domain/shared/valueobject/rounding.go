package valueobject

import (
	"github.com/shopspring/decimal"
)

// PaymentTolerance is the rounding slack used when comparing paid amounts
// against totals (absorbs two-decimal rounding drift).
var PaymentTolerance = decimal.NewFromFloat(0.01)

// Round2 rounds a raw decimal to the two-decimal-place policy used for all
// persisted quantities and amounts.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
