package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

const shelfSize = 4

// Sort orders accepted by Sort.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortPopular   = "popular"
)

// Filter narrows a product listing. Zero values mean "no constraint".
type Filter struct {
	Categories  []string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
	Query       string
}

func ByCategory(products []domain.Product, category string) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns up to four bestsellers in catalog order.
func Featured(products []domain.Product) []domain.Product {
	return take(products, func(p domain.Product) bool { return p.IsBestseller }, shelfSize)
}

// NewArrivals returns up to four products flagged as new.
func NewArrivals(products []domain.Product) []domain.Product {
	return take(products, func(p domain.Product) bool { return p.IsNew }, shelfSize)
}

// Search matches query case-insensitively against name, description and
// category.
func Search(products []domain.Product, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	return take(products, func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	}, -1)
}

// Related returns up to four other products from the same category.
func Related(products []domain.Product, productID, category string) []domain.Product {
	return take(products, func(p domain.Product) bool {
		return p.Category == category && p.ID != productID
	}, shelfSize)
}

// Apply filters products by f, keeping catalog order.
func Apply(products []domain.Product, f Filter) []domain.Product {
	wanted := make(map[string]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		if c = strings.TrimSpace(c); c != "" {
			wanted[c] = struct{}{}
		}
	}
	out := products
	if f.Query != "" {
		out = Search(out, f.Query)
	}
	return take(out, func(p domain.Product) bool {
		if len(wanted) > 0 {
			if _, ok := wanted[p.Category]; !ok {
				return false
			}
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			return false
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			return false
		}
		if f.InStockOnly && !p.InStock {
			return false
		}
		return true
	}, -1)
}

// Sort orders products in place. Ties keep their catalog order; unknown
// orders fall back to newest.
func Sort(products []domain.Product, order string) {
	switch order {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price.LessThan(products[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price.GreaterThan(products[j].Price) })
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool { return products[i].IsBestseller && !products[j].IsBestseller })
	default:
		sort.SliceStable(products, func(i, j int) bool { return products[i].IsNew && !products[j].IsNew })
	}
}

// ValidSort reports whether order is one of the supported sort orders.
func ValidSort(order string) bool {
	switch order {
	case SortNewest, SortPriceLow, SortPriceHigh, SortPopular:
		return true
	}
	return false
}

func take(products []domain.Product, keep func(domain.Product) bool, limit int) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if limit >= 0 && len(out) == limit {
			break
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
