package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

const selectColumns = `
SELECT id, slug, name, description, price::text, compare_price::text, category,
       in_stock, is_new, is_bestseller, attributes
FROM products
`

// attributes holds the presentation fields kept in the jsonb column.
type attributes struct {
	Images   []string       `json:"images,omitempty"`
	Colors   []domain.Color `json:"colors,omitempty"`
	Sizes    []string       `json:"sizes,omitempty"`
	Features []string       `json:"features,omitempty"`
	SEO      domain.SEO     `json:"seo"`
}

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.SugaredLogger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.SugaredLogger) Repository {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, selectColumns+`ORDER BY created_at, id`)
	if err != nil {
		r.logger.Errorw("product repo: list failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Errorw("product repo: list rows failed", "error", err)
		return nil, err
	}
	r.logger.Debugw("product repo: list", "count", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getOne(ctx, "id", selectColumns+`WHERE id = $1`, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.getOne(ctx, "slug", selectColumns+`WHERE slug = $1`, slug)
}

func (r *postgresRepo) getOne(ctx context.Context, field, q, value string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, q, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debugw("product repo: not found", field, value)
			return nil, domain.ErrNotFound
		}
		r.logger.Errorw("product repo: get failed", field, value, "error", err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, slug, name, description, price, compare_price, category, in_stock, is_new, is_bestseller, attributes)
VALUES ($1, $2, $3, $4, $5::numeric, NULLIF($6, '')::numeric, $7, $8, $9, $10, $11::jsonb)
ON CONFLICT (id) DO UPDATE SET
    slug = EXCLUDED.slug,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    compare_price = EXCLUDED.compare_price,
    category = EXCLUDED.category,
    in_stock = EXCLUDED.in_stock,
    is_new = EXCLUDED.is_new,
    is_bestseller = EXCLUDED.is_bestseller,
    attributes = EXCLUDED.attributes
`
	if product.ID == "" || product.Slug == "" {
		return nil, fmt.Errorf("product repo: id and slug are required")
	}
	if product.Price.IsNegative() {
		return nil, fmt.Errorf("product repo: negative price for id=%s", product.ID)
	}
	attrs, err := json.Marshal(attributes{
		Images:   product.Images,
		Colors:   product.Colors,
		Sizes:    product.Sizes,
		Features: product.Features,
		SEO:      product.SEO,
	})
	if err != nil {
		return nil, fmt.Errorf("encode attributes: %w", err)
	}
	compare := ""
	if product.ComparePrice != nil {
		compare = product.ComparePrice.String()
	}

	_, err = r.pool.Exec(ctx, q,
		product.ID,
		product.Slug,
		product.Name,
		product.Description,
		product.Price.String(),
		compare,
		product.Category,
		product.InStock,
		product.IsNew,
		product.IsBestseller,
		string(attrs),
	)
	if err != nil {
		r.logger.Errorw("product repo: upsert failed", "id", product.ID, "slug", product.Slug, "error", err)
		return nil, err
	}
	r.logger.Debugw("product repo: upserted", "id", product.ID, "slug", product.Slug)
	out := product.Clone()
	return &out, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p       domain.Product
		price   string
		compare *string
		raw     []byte
	)
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &price, &compare, &p.Category, &p.InStock, &p.IsNew, &p.IsBestseller, &raw); err != nil {
		return nil, err
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price for id=%s: %w", p.ID, err)
	}
	if compare != nil {
		cp, err := decimal.NewFromString(*compare)
		if err != nil {
			return nil, fmt.Errorf("parse compare price for id=%s: %w", p.ID, err)
		}
		p.ComparePrice = &cp
	}
	var attrs attributes
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &attrs); err != nil {
			return nil, fmt.Errorf("decode attributes for id=%s: %w", p.ID, err)
		}
	}
	p.Images = attrs.Images
	p.Colors = attrs.Colors
	p.Sizes = attrs.Sizes
	p.Features = attrs.Features
	p.SEO = attrs.SEO
	return &p, nil
}
