package seed

import (
	"context"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

type productWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type categoryWriter interface {
	Upsert(ctx context.Context, c domain.Category, position int) (*domain.Category, error)
}

// Apply writes the built-in catalog through the given repositories. It is
// idempotent: every write is an upsert keyed by id.
func Apply(ctx context.Context, products productWriter, categories categoryWriter, src *catalog.Static) (int, error) {
	cats, err := src.Categories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}
	for i, c := range cats {
		if _, err := categories.Upsert(ctx, c, i); err != nil {
			return 0, fmt.Errorf("upsert category %s: %w", c.ID, err)
		}
	}

	list, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	for i, p := range list {
		if _, err := products.Upsert(ctx, p); err != nil {
			return i, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return len(list), nil
}
