package cartstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

// BaseKey is the record key used when a single cart is stored without a
// session qualifier.
const BaseKey = "cart-storage"

// Repository persists the serialized cart under a string key. Load returns
// domain.ErrNotFound when nothing has been stored for key.
type Repository interface {
	Load(ctx context.Context, key string) (domain.Cart, error)
	Save(ctx context.Context, key string, cart domain.Cart) error
	Ping(ctx context.Context) error
}

// ErrCorrupt marks a stored record that could not be decoded.
var ErrCorrupt = errors.New("corrupt cart record")

// Key returns the record key for a session.
func Key(sessionID string) string {
	if sessionID == "" {
		return BaseKey
	}
	return BaseKey + ":" + sessionID
}

// Encode renders the persisted layout:
// {"items":[{"product":{...},"quantity":n}],"coupon":null|"CODE"}.
func Encode(cart domain.Cart) ([]byte, error) {
	out := cart.Clone()
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return data, nil
}

// Decode parses a persisted record. Item order, quantities and the coupon
// are reproduced exactly.
func Decode(data []byte) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}
