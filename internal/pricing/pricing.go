// Package pricing computes cart totals.
//
// Totals are derived on every read from the cart contents and the applied
// promo code; nothing is cached.
package pricing

import (
	"fmt"

	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/promo"
	"github.com/shopspring/decimal"
)

// Rounding selects how the discounted total is rounded.
type Rounding string

const (
	// RoundNone keeps exact fractional totals, e.g. 908.6.
	RoundNone Rounding = "none"

	// RoundMinorUnit rounds half away from zero to two decimal places.
	RoundMinorUnit Rounding = "minor_unit"

	// RoundWhole rounds half away from zero to a whole amount.
	RoundWhole Rounding = "whole"
)

var hundred = decimal.NewFromInt(100)

// ParseRounding maps a configuration value to a Rounding policy.
// An empty string selects RoundNone.
func ParseRounding(s string) (Rounding, error) {
	switch Rounding(s) {
	case "", RoundNone:
		return RoundNone, nil
	case RoundMinorUnit, RoundWhole:
		return Rounding(s), nil
	default:
		return RoundNone, fmt.Errorf("unknown rounding policy %q", s)
	}
}

// Apply rounds d according to the policy.
func (r Rounding) Apply(d decimal.Decimal) decimal.Decimal {
	switch r {
	case RoundMinorUnit:
		return d.Round(2)
	case RoundWhole:
		return d.Round(0)
	default:
		return d
	}
}

// Subtotal sums entry prices.
func Subtotal(entries []domain.CartEntry) int64 {
	var sum int64
	for _, e := range entries {
		sum += e.Price
	}
	return sum
}

// Discounted returns subtotal - subtotal*percent/100 under the policy.
func Discounted(subtotal int64, percent int, policy Rounding) decimal.Decimal {
	sub := decimal.NewFromInt(subtotal)
	discount := sub.Mul(decimal.NewFromInt(int64(percent))).Div(hundred)
	return policy.Apply(sub.Sub(discount))
}

// ComputeTotals derives subtotal, discount percent and total for a cart.
// applied is a normalized registry key or empty when no promo is applied.
// An empty cart reports no discount even with a promo applied.
func ComputeTotals(entries []domain.CartEntry, applied string, registry *promo.Registry, policy Rounding) domain.Totals {
	subtotal := Subtotal(entries)
	percent := 0
	if subtotal > 0 {
		percent = registry.DiscountPercent(applied)
	}

	return domain.Totals{
		Subtotal:        subtotal,
		DiscountPercent: percent,
		Total:           Discounted(subtotal, percent, policy),
	}
}
