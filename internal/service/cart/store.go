package cart

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/coupon"
	"storefront/internal/domain"
	"storefront/internal/pricing"
)

const (
	msgCouponApplied = "Coupon applied successfully!"
	msgCouponInvalid = "Invalid coupon code"
)

type stateRepo interface {
	Load(ctx context.Context, key string) (domain.Cart, error)
	Save(ctx context.Context, key string, cart domain.Cart) error
}

// Store owns one cart. Every mutation runs under the lock and is written
// through to the state repository before the lock is released, so the
// persisted record always follows mutation order.
type Store struct {
	mu      sync.RWMutex
	key     string
	cart    domain.Cart
	repo    stateRepo
	coupons *coupon.Registry
	calc    *pricing.Calculator
	logger  *zap.SugaredLogger

	// checkingOut is set between BeginCheckout and its matching
	// CompleteCheckout or AbortCheckout.
	checkingOut bool
}

// NewStore wraps an already loaded cart. A nil logger discards output.
func NewStore(key string, initial domain.Cart, repo stateRepo, coupons *coupon.Registry, calc *pricing.Calculator, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		key:     key,
		cart:    initial.Clone(),
		repo:    repo,
		coupons: coupons,
		calc:    calc,
		logger:  logger,
	}
}

func (s *Store) Key() string {
	return s.key
}

// AddItem merges quantity into the line for product.ID or appends a new line
// holding a snapshot of product.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		if s.cart.Items[i].Quantity > math.MaxInt-quantity {
			return domain.ErrInvalidQuantity
		}
		s.cart.Items[i].Quantity += quantity
	} else {
		s.cart.Items = append(s.cart.Items, domain.CartItem{Product: product.Clone(), Quantity: quantity})
	}
	return s.persist(ctx, "add_item")
}

// RemoveItem drops the line for productID. Removing an absent id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, productID)
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, productID)
	}
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.cart.Items[i].Quantity = quantity
	return s.persist(ctx, "set_quantity")
}

// Clear empties items and coupon in a single write.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.Cart{Items: []domain.CartItem{}}
	return s.persist(ctx, "clear")
}

// ApplyCoupon stores the normalized code when the registry knows it. An
// unknown code leaves the cart as it was; only a failed write is an error.
func (s *Store) ApplyCoupon(ctx context.Context, code string) (domain.CouponResult, error) {
	normalized, err := s.coupons.Lookup(code)
	if err != nil {
		s.logger.Debugw("cart store: coupon rejected", "key", s.key, "code", code)
		return domain.CouponResult{Success: false, Message: msgCouponInvalid}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Coupon = &normalized
	return domain.CouponResult{Success: true, Message: msgCouponApplied}, s.persist(ctx, "apply_coupon")
}

func (s *Store) RemoveCoupon(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Coupon = nil
	return s.persist(ctx, "remove_coupon")
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.ItemCount()
}

// Subtotal is the raw sum of price × quantity, before discount and tax.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Subtotal()
}

// Snapshot returns a deep copy of the current cart.
func (s *Store) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

func (s *Store) Totals() domain.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calc.Compute(s.cart)
}

// View returns the cart and its totals from the same state.
func (s *Store) View() (domain.Cart, domain.Totals) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone(), s.calc.Compute(s.cart)
}

// BeginCheckout reserves the cart for one checkout and returns the state to
// charge. Mutations stay allowed while the reservation is held; a second
// reservation fails with domain.ErrCheckoutInProgress.
func (s *Store) BeginCheckout() (domain.Cart, domain.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkingOut {
		return domain.Cart{}, domain.Totals{}, domain.ErrCheckoutInProgress
	}
	s.checkingOut = true
	return s.cart.Clone(), s.calc.Compute(s.cart), nil
}

// AbortCheckout releases the reservation and leaves the cart untouched.
func (s *Store) AbortCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkingOut = false
}

// CompleteCheckout releases the reservation and removes what was paid for.
// An unchanged cart is cleared together with its coupon. When the cart moved
// on during payment only the paid quantities are taken out and the coupon
// stays as it is.
func (s *Store) CompleteCheckout(ctx context.Context, paid domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkingOut = false

	if sameCart(s.cart, paid) {
		s.cart = domain.Cart{Items: []domain.CartItem{}}
		return s.persist(ctx, "checkout")
	}

	ordered := make(map[string]int, len(paid.Items))
	for _, item := range paid.Items {
		ordered[item.Product.ID] = item.Quantity
	}
	kept := make([]domain.CartItem, 0, len(s.cart.Items))
	for _, item := range s.cart.Items {
		item.Quantity -= ordered[item.Product.ID]
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	s.cart.Items = kept
	s.logger.Infow("cart store: cart changed during checkout, kept unpaid lines", "key", s.key, "items", len(kept))
	return s.persist(ctx, "checkout")
}

func sameCart(a, b domain.Cart) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i].Product.ID != b.Items[i].Product.ID || a.Items[i].Quantity != b.Items[i].Quantity {
			return false
		}
	}
	switch {
	case a.Coupon == nil || b.Coupon == nil:
		return a.Coupon == nil && b.Coupon == nil
	default:
		return *a.Coupon == *b.Coupon
	}
}

func (s *Store) removeLocked(ctx context.Context, productID string) error {
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.cart.Items = append(s.cart.Items[:i:i], s.cart.Items[i+1:]...)
	return s.persist(ctx, "remove_item")
}

func (s *Store) indexOf(productID string) int {
	for i, item := range s.cart.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// persist writes the whole cart. The in-memory state is kept on failure.
func (s *Store) persist(ctx context.Context, op string) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, s.key, s.cart); err != nil {
		s.logger.Warnw("cart store: state not persisted", "key", s.key, "op", op, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	return nil
}
