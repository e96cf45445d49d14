package cart

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/internal/coupon"
	"storefront/internal/domain"
	"storefront/internal/pricing"
)

type stubStateRepo struct {
	mu       sync.Mutex
	records  map[string]domain.Cart
	saves    int
	saveErr  error
	loadErr  error
	lastKey  string
	lastCart domain.Cart
}

func newStubStateRepo() *stubStateRepo {
	return &stubStateRepo{records: make(map[string]domain.Cart)}
}

func (s *stubStateRepo) Load(_ context.Context, key string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return domain.Cart{}, s.loadErr
	}
	cart, ok := s.records[key]
	if !ok {
		return domain.Cart{}, domain.ErrNotFound
	}
	return cart.Clone(), nil
}

func (s *stubStateRepo) Save(_ context.Context, key string, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.lastKey = key
	s.lastCart = cart.Clone()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[key] = cart.Clone()
	return nil
}

func (s *stubStateRepo) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func product(id, price string) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price)}
}

func newTestStore(repo stateRepo) *Store {
	return NewStore("cart-storage", domain.Cart{}, repo, coupon.Default(), pricing.New(pricing.DefaultPolicy()), nil)
}

func TestStoreAddItemMergesLines(t *testing.T) {
	repo := newStubStateRepo()
	st := newTestStore(repo)
	ctx := context.Background()

	if err := st.AddItem(ctx, product("p1", "100"), 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := st.AddItem(ctx, product("p2", "20"), 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := st.AddItem(ctx, product("p1", "100"), 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	cart := st.Snapshot()
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
	if cart.Items[0].Product.ID != "p1" || cart.Items[0].Quantity != 3 {
		t.Fatalf("unexpected first line %+v", cart.Items[0])
	}
	if cart.Items[1].Product.ID != "p2" || cart.Items[1].Quantity != 3 {
		t.Fatalf("unexpected second line %+v", cart.Items[1])
	}
	if st.ItemCount() != 6 {
		t.Fatalf("expected item count 6, got %d", st.ItemCount())
	}
	if !st.Subtotal().Equal(decimal.NewFromInt(360)) {
		t.Fatalf("expected subtotal 360, got %s", st.Subtotal())
	}
	if repo.saveCount() != 3 || repo.lastKey != "cart-storage" {
		t.Fatalf("expected 3 writes to cart-storage, got %d to %q", repo.saveCount(), repo.lastKey)
	}
	if len(repo.lastCart.Items) != 2 || repo.lastCart.Items[0].Quantity != 3 {
		t.Fatalf("persisted cart lags memory: %+v", repo.lastCart)
	}
}

func TestStoreAddItemKeepsFirstSnapshot(t *testing.T) {
	st := newTestStore(newStubStateRepo())
	ctx := context.Background()
	_ = st.AddItem(ctx, product("p1", "100"), 1)
	_ = st.AddItem(ctx, product("p1", "80"), 1)

	cart := st.Snapshot()
	if !cart.Items[0].Product.Price.Equal(decimal.NewFromInt(100)) || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected line %+v", cart.Items[0])
	}
}

func TestStoreAddItemRejectsNonPositiveQuantity(t *testing.T) {
	repo := newStubStateRepo()
	st := newTestStore(repo)
	ctx := context.Background()
	_ = st.AddItem(ctx, product("p1", "10"), 2)

	for _, qty := range []int{0, -1} {
		if err := st.AddItem(ctx, product("p1", "10"), qty); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if st.ItemCount() != 2 || repo.saveCount() != 1 {
		t.Fatalf("rejected add changed state: count=%d saves=%d", st.ItemCount(), repo.saveCount())
	}
}

func TestStoreAddItemRejectsQuantityOverflow(t *testing.T) {
	st := newTestStore(nil)
	ctx := context.Background()
	if err := st.AddItem(ctx, product("p1", "1"), math.MaxInt); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := st.AddItem(ctx, product("p1", "1"), 1); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity on overflow, got %v", err)
	}
	if got := st.Snapshot().Items[0].Quantity; got != math.MaxInt {
		t.Fatalf("quantity changed on rejected add: %d", got)
	}
}

func TestStoreRemoveItem(t *testing.T) {
	repo := newStubStateRepo()
	st := newTestStore(repo)
	ctx := context.Background()
	_ = st.AddItem(ctx, product("a", "1"), 1)
	_ = st.AddItem(ctx, product("b", "2"), 1)
	_ = st.AddItem(ctx, product("c", "3"), 1)

	if err := st.RemoveItem(ctx, "b"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	cart := st.Snapshot()
	if len(cart.Items) != 2 || cart.Items[0].Product.ID != "a" || cart.Items[1].Product.ID != "c" {
		t.Fatalf("unexpected items %+v", cart.Items)
	}

	saves := repo.saveCount()
	if err := st.RemoveItem(ctx, "missing"); err != nil {
		t.Fatalf("RemoveItem missing: %v", err)
	}
	if repo.saveCount() != saves {
		t.Fatalf("no-op remove should not write")
	}
}

func TestStoreSetQuantity(t *testing.T) {
	st := newTestStore(newStubStateRepo())
	ctx := context.Background()
	_ = st.AddItem(ctx, product("a", "5"), 1)
	_ = st.AddItem(ctx, product("b", "5"), 1)

	if err := st.SetQuantity(ctx, "a", 4); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := st.SetQuantity(ctx, "missing", 4); err != nil {
		t.Fatalf("SetQuantity missing: %v", err)
	}
	if st.ItemCount() != 5 {
		t.Fatalf("expected 5, got %d", st.ItemCount())
	}

	if err := st.SetQuantity(ctx, "b", 0); err != nil {
		t.Fatalf("SetQuantity zero: %v", err)
	}
	if err := st.SetQuantity(ctx, "a", -3); err != nil {
		t.Fatalf("SetQuantity negative: %v", err)
	}
	if cart := st.Snapshot(); len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
}

func TestStoreCouponLifecycle(t *testing.T) {
	repo := newStubStateRepo()
	st := newTestStore(repo)
	ctx := context.Background()

	res, err := st.ApplyCoupon(ctx, "luxe10")
	if err != nil {
		t.Fatalf("ApplyCoupon: %v", err)
	}
	if !res.Success || res.Message != "Coupon applied successfully!" {
		t.Fatalf("unexpected result %+v", res)
	}
	if c := st.Snapshot().Coupon; c == nil || *c != "LUXE10" {
		t.Fatalf("expected LUXE10, got %v", c)
	}

	saves := repo.saveCount()
	res, err = st.ApplyCoupon(ctx, "BADCODE")
	if err != nil {
		t.Fatalf("ApplyCoupon invalid: %v", err)
	}
	if res.Success || res.Message != "Invalid coupon code" {
		t.Fatalf("unexpected result %+v", res)
	}
	if c := st.Snapshot().Coupon; c == nil || *c != "LUXE10" {
		t.Fatalf("invalid code replaced coupon: %v", c)
	}
	if repo.saveCount() != saves {
		t.Fatalf("rejected coupon should not write")
	}

	if _, err := st.ApplyCoupon(ctx, "Summer15"); err != nil {
		t.Fatalf("ApplyCoupon: %v", err)
	}
	if c := st.Snapshot().Coupon; c == nil || *c != "SUMMER15" {
		t.Fatalf("expected replacement SUMMER15, got %v", c)
	}

	if err := st.RemoveCoupon(ctx); err != nil {
		t.Fatalf("RemoveCoupon: %v", err)
	}
	if err := st.RemoveCoupon(ctx); err != nil {
		t.Fatalf("RemoveCoupon twice: %v", err)
	}
	if st.Snapshot().Coupon != nil {
		t.Fatalf("expected coupon cleared")
	}
}

func TestStoreClear(t *testing.T) {
	repo := newStubStateRepo()
	st := newTestStore(repo)
	ctx := context.Background()
	_ = st.AddItem(ctx, product("a", "5"), 2)
	_, _ = st.ApplyCoupon(ctx, "WELCOME20")

	saves := repo.saveCount()
	if err := st.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if repo.saveCount() != saves+1 {
		t.Fatalf("clear should write once")
	}
	cart := st.Snapshot()
	if len(cart.Items) != 0 || cart.Coupon != nil || cart.Items == nil {
		t.Fatalf("unexpected cart after clear %+v", cart)
	}
	if len(repo.lastCart.Items) != 0 || repo.lastCart.Coupon != nil {
		t.Fatalf("persisted cart not cleared %+v", repo.lastCart)
	}
}

func TestStoreTotalsFollowMutations(t *testing.T) {
	st := newTestStore(newStubStateRepo())
	ctx := context.Background()
	_ = st.AddItem(ctx, product("p1", "100"), 2)

	totals := st.Totals()
	if !totals.Total.Equal(decimal.NewFromInt(216)) || !totals.HasFreeShipping {
		t.Fatalf("unexpected totals %+v", totals)
	}

	_ = st.SetQuantity(ctx, "p1", 1)
	_, _ = st.ApplyCoupon(ctx, "LUXE10")
	cart, totals := st.View()
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("unexpected cart %+v", cart)
	}
	// 100 - 10 + 8 + 15
	if !totals.Total.Equal(decimal.NewFromInt(113)) || totals.ItemCount != 1 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	st := newTestStore(nil)
	ctx := context.Background()
	_ = st.AddItem(ctx, product("a", "5"), 1)

	snap := st.Snapshot()
	snap.Items[0].Quantity = 50
	snap.Items = append(snap.Items, domain.CartItem{Product: product("x", "1"), Quantity: 1})
	if st.ItemCount() != 1 {
		t.Fatalf("snapshot mutation leaked into store")
	}
}

func TestStorePersistFailureKeepsMutation(t *testing.T) {
	repo := newStubStateRepo()
	repo.saveErr = errors.New("quota exceeded")
	st := newTestStore(repo)
	ctx := context.Background()

	err := st.AddItem(ctx, product("a", "5"), 2)
	if !errors.Is(err, domain.ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	if st.ItemCount() != 2 {
		t.Fatalf("mutation should stay applied, got count %d", st.ItemCount())
	}

	res, err := st.ApplyCoupon(ctx, "LUXE10")
	if !errors.Is(err, domain.ErrPersist) || !res.Success {
		t.Fatalf("expected applied coupon with persist error, got %+v %v", res, err)
	}

	repo.saveErr = nil
	if err := st.AddItem(ctx, product("b", "1"), 1); err != nil {
		t.Fatalf("AddItem after recovery: %v", err)
	}
	if len(repo.records["cart-storage"].Items) != 2 {
		t.Fatalf("expected full cart persisted after recovery")
	}
}

func TestStoreConcurrentAdds(t *testing.T) {
	repo := newStubStateRepo()
	st := newTestStore(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.AddItem(ctx, product("a", "1"), 1)
		}()
	}
	wg.Wait()

	if st.ItemCount() != 50 {
		t.Fatalf("expected 50, got %d", st.ItemCount())
	}
	if repo.records["cart-storage"].Items[0].Quantity != 50 {
		t.Fatalf("last write is not the latest state")
	}
}

func TestStoreCheckoutReservation(t *testing.T) {
	st := newTestStore(nil)
	if err := st.AddItem(context.Background(), product("p1", "10"), 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	cart, totals, err := st.BeginCheckout()
	if err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}
	if len(cart.Items) != 1 || !totals.Subtotal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected reserved cart %+v totals %+v", cart, totals)
	}
	if _, _, err := st.BeginCheckout(); !errors.Is(err, domain.ErrCheckoutInProgress) {
		t.Fatalf("expected ErrCheckoutInProgress, got %v", err)
	}

	st.AbortCheckout()
	if st.ItemCount() != 1 {
		t.Fatalf("abort must leave the cart untouched")
	}
	if _, _, err := st.BeginCheckout(); err != nil {
		t.Fatalf("BeginCheckout after abort: %v", err)
	}
}

func TestStoreCompleteCheckoutUnchangedCart(t *testing.T) {
	repo := newStubStateRepo()
	st := newTestStore(repo)
	ctx := context.Background()
	if err := st.AddItem(ctx, product("p1", "60"), 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := st.ApplyCoupon(ctx, "summer15"); err != nil {
		t.Fatalf("ApplyCoupon: %v", err)
	}

	paid, _, err := st.BeginCheckout()
	if err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}
	if err := st.CompleteCheckout(ctx, paid); err != nil {
		t.Fatalf("CompleteCheckout: %v", err)
	}
	if got := st.Snapshot(); len(got.Items) != 0 || got.Coupon != nil {
		t.Fatalf("expected empty cart without coupon, got %+v", got)
	}
	if len(repo.lastCart.Items) != 0 || repo.lastCart.Coupon != nil {
		t.Fatalf("cleared cart not persisted, got %+v", repo.lastCart)
	}
	if _, _, err := st.BeginCheckout(); err != nil {
		t.Fatalf("reservation not released: %v", err)
	}
}

func TestStoreCompleteCheckoutKeepsUnpaidLines(t *testing.T) {
	repo := newStubStateRepo()
	st := newTestStore(repo)
	ctx := context.Background()
	if err := st.AddItem(ctx, product("p1", "60"), 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := st.AddItem(ctx, product("p2", "5"), 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := st.ApplyCoupon(ctx, "summer15"); err != nil {
		t.Fatalf("ApplyCoupon: %v", err)
	}

	paid, _, err := st.BeginCheckout()
	if err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}
	if err := st.AddItem(ctx, product("p1", "60"), 1); err != nil {
		t.Fatalf("AddItem during checkout: %v", err)
	}
	if err := st.AddItem(ctx, product("p3", "7"), 4); err != nil {
		t.Fatalf("AddItem during checkout: %v", err)
	}

	if err := st.CompleteCheckout(ctx, paid); err != nil {
		t.Fatalf("CompleteCheckout: %v", err)
	}
	got := st.Snapshot()
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 unpaid lines, got %+v", got.Items)
	}
	if got.Items[0].Product.ID != "p1" || got.Items[0].Quantity != 1 {
		t.Fatalf("expected 1 unpaid p1, got %+v", got.Items[0])
	}
	if got.Items[1].Product.ID != "p3" || got.Items[1].Quantity != 4 {
		t.Fatalf("expected 4 unpaid p3, got %+v", got.Items[1])
	}
	if got.Coupon == nil || *got.Coupon != "SUMMER15" {
		t.Fatalf("coupon must be kept when the cart changed, got %v", got.Coupon)
	}
	if len(repo.lastCart.Items) != 2 {
		t.Fatalf("remaining lines not persisted, got %+v", repo.lastCart)
	}
}
