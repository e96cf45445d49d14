package domain

import "github.com/shopspring/decimal"

// Cart is the persisted shape of a shopping cart. Items keep insertion order
// and hold at most one line per product id.
type Cart struct {
	Items  []CartItem `json:"items"`
	Coupon *string    `json:"coupon"`
}

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price × quantity for a single line.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone returns a deep copy of c. A cart with no items clones to an empty,
// non-nil item slice so it always serializes as [].
func (c Cart) Clone() Cart {
	out := Cart{Items: make([]CartItem, 0, len(c.Items))}
	for _, item := range c.Items {
		out.Items = append(out.Items, CartItem{Product: item.Product.Clone(), Quantity: item.Quantity})
	}
	if c.Coupon != nil {
		code := *c.Coupon
		out.Coupon = &code
	}
	return out
}

// ItemCount is the sum of quantities, the number shown in the cart badge.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the undiscounted sum of all line totals.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Totals is the pricing breakdown derived from a cart. It is never stored.
type Totals struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Discount              decimal.Decimal `json:"discount"`
	Tax                   decimal.Decimal `json:"tax"`
	Shipping              decimal.Decimal `json:"shipping"`
	Total                 decimal.Decimal `json:"total"`
	ItemCount             int             `json:"itemCount"`
	HasFreeShipping       bool            `json:"hasFreeShipping"`
	AmountForFreeShipping decimal.Decimal `json:"amountForFreeShipping"`
}

// CouponResult reports the outcome of applying a coupon code. An invalid code
// is an expected outcome, not an error.
type CouponResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
