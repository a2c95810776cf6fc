package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCommissionPercent is applied when a provider's rate is absent or
// unparseable. A bad commission config must never block a cash payment.
const DefaultCommissionPercent = "30"

var hundred = decimal.NewFromInt(100)

// ParseAmount coerces a raw money field to a non-negative decimal. Empty,
// unparseable, or negative input becomes 0 so a formatting glitch records a
// conservative zero instead of failing the transaction.
func ParseAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ResolveRate parses a raw per-provider commission percent, falling back to
// the configured default and finally to DefaultCommissionPercent.
func ResolveRate(raw, fallback string) decimal.Decimal {
	if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil && !d.IsNegative() {
		return d
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(fallback)); err == nil && !d.IsNegative() {
		return d
	}
	d, _ := decimal.NewFromString(DefaultCommissionPercent)
	return d
}

// ComputeCommission returns billAmount * ratePercent / 100.
func ComputeCommission(billAmount, ratePercent decimal.Decimal) decimal.Decimal {
	if billAmount.IsNegative() {
		billAmount = decimal.Zero
	}
	return billAmount.Mul(ratePercent).Div(hundred)
}
