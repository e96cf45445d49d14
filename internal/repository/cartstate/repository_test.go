package cartstate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

func sampleCart() domain.Cart {
	code := "LUXE10"
	compare := decimal.RequireFromString("249")
	return domain.Cart{
		Items: []domain.CartItem{
			{Product: domain.Product{ID: "3", Name: "Silk Blouse", Slug: "silk-blouse", Price: decimal.RequireFromString("189.5"), ComparePrice: &compare, Images: []string{"a.jpg"}}, Quantity: 2},
			{Product: domain.Product{ID: "1", Name: "Cashmere Coat", Slug: "cashmere-coat", Price: decimal.RequireFromString("79")}, Quantity: 1},
		},
		Coupon: &code,
	}
}

func assertSameCart(t *testing.T, want, got domain.Cart) {
	t.Helper()
	if len(want.Items) != len(got.Items) {
		t.Fatalf("expected %d items, got %d", len(want.Items), len(got.Items))
	}
	for i := range want.Items {
		w, g := want.Items[i], got.Items[i]
		if w.Product.ID != g.Product.ID || w.Quantity != g.Quantity || !w.Product.Price.Equal(g.Product.Price) {
			t.Fatalf("item %d: expected %s x%d @%s, got %s x%d @%s", i, w.Product.ID, w.Quantity, w.Product.Price, g.Product.ID, g.Quantity, g.Product.Price)
		}
	}
	switch {
	case want.Coupon == nil && got.Coupon != nil:
		t.Fatalf("expected no coupon, got %q", *got.Coupon)
	case want.Coupon != nil && (got.Coupon == nil || *got.Coupon != *want.Coupon):
		t.Fatalf("expected coupon %q, got %v", *want.Coupon, got.Coupon)
	}
}

// exerciseRepository runs the behavior every driver must share.
func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if _, err := repo.Load(ctx, Key("missing")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cart := sampleCart()
	if err := repo.Save(ctx, Key("s1"), cart); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx, Key("s1"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameCart(t, cart, got)
	if got.Items[0].Product.ComparePrice == nil || !got.Items[0].Product.ComparePrice.Equal(decimal.RequireFromString("249")) {
		t.Fatalf("product snapshot not preserved: %+v", got.Items[0].Product)
	}

	empty := domain.Cart{}
	if err := repo.Save(ctx, Key("s1"), empty); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	got, err = repo.Load(ctx, Key("s1"))
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if len(got.Items) != 0 || got.Coupon != nil {
		t.Fatalf("expected empty cart, got %+v", got)
	}
	if got.Items == nil {
		t.Fatalf("expected non-nil items")
	}
}

func TestKey(t *testing.T) {
	if Key("") != "cart-storage" {
		t.Fatalf("unexpected base key %q", Key(""))
	}
	if Key("abc") != "cart-storage:abc" {
		t.Fatalf("unexpected session key %q", Key("abc"))
	}
}

func TestEncodeLayout(t *testing.T) {
	data, err := Encode(domain.Cart{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != `{"items":[],"coupon":null}` {
		t.Fatalf("unexpected layout %s", data)
	}

	data, err = Encode(sampleCart())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"coupon":"LUXE10"`, `"quantity":2`, `"id":"3"`, `"price":"189.5"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected %s in %s", want, s)
		}
	}
	if strings.Index(s, `"id":"3"`) > strings.Index(s, `"id":"1"`) {
		t.Fatalf("item order not preserved: %s", s)
	}
}

func TestDecodeAcceptsNumericPrices(t *testing.T) {
	cart, err := Decode([]byte(`{"items":[{"product":{"id":"9","price":12.5},"quantity":3}],"coupon":"SUMMER15"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !cart.Items[0].Product.Price.Equal(decimal.RequireFromString("12.5")) || cart.Items[0].Quantity != 3 {
		t.Fatalf("unexpected cart %+v", cart)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte(`{"items":`)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemory())
}

func TestMemoryIsolatesCallers(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	cart := sampleCart()
	if err := repo.Save(ctx, BaseKey, cart); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cart.Items[0].Quantity = 99
	got, err := repo.Load(ctx, BaseKey)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Items[0].Quantity != 2 {
		t.Fatalf("stored cart shares memory with caller")
	}
	if _, ok := repo.Raw(BaseKey); !ok {
		t.Fatalf("expected raw record")
	}
}
