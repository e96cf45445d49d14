package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Policy holds the pricing constants. Defaults match the storefront's
// published terms: 10% coupon discount, 8% tax, $15 shipping below $200.
type Policy struct {
	DiscountRate          decimal.Decimal
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShipping          decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		DiscountRate:          decimal.RequireFromString("0.10"),
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.NewFromInt(200),
		FlatShipping:          decimal.NewFromInt(15),
	}
}

// Calculator derives totals from a cart on every call. It keeps no state
// besides its policy.
type Calculator struct {
	policy Policy
}

func New(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

func (c *Calculator) Policy() Policy {
	return c.policy
}

// Compute returns the pricing breakdown of cart. Discount and tax are both
// taken from the undiscounted subtotal and summed, never composed.
func (c *Calculator) Compute(cart domain.Cart) domain.Totals {
	subtotal := cart.Subtotal()

	discount := decimal.Zero
	if cart.Coupon != nil {
		discount = subtotal.Mul(c.policy.DiscountRate)
	}
	tax := subtotal.Mul(c.policy.TaxRate)

	freeShipping := subtotal.GreaterThanOrEqual(c.policy.FreeShippingThreshold)
	shipping := c.policy.FlatShipping
	if freeShipping {
		shipping = decimal.Zero
	}

	remaining := c.policy.FreeShippingThreshold.Sub(subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return domain.Totals{
		Subtotal:              subtotal,
		Discount:              discount,
		Tax:                   tax,
		Shipping:              shipping,
		Total:                 subtotal.Sub(discount).Add(tax).Add(shipping),
		ItemCount:             cart.ItemCount(),
		HasFreeShipping:       freeShipping,
		AmountForFreeShipping: remaining,
	}
}

// ToCents converts an amount in currency units to integer minor units,
// rounding half away from zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
