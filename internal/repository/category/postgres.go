package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id, name, description, image
FROM categories
ORDER BY position ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert inserts or updates a category by id. Empty description or image
// keep the stored value.
func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category, position int) (*domain.Category, error) {
	const q = `
INSERT INTO categories (id, name, description, image, position)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = COALESCE(NULLIF(EXCLUDED.description, ''), categories.description),
    image = COALESCE(NULLIF(EXCLUDED.image, ''), categories.image),
    position = EXCLUDED.position
RETURNING description, image
`
	if strings.TrimSpace(c.ID) == "" {
		return nil, fmt.Errorf("category id required")
	}
	out := domain.Category{ID: c.ID, Name: c.Name}
	if err := r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Description, c.Image, position).Scan(&out.Description, &out.Image); err != nil {
		return nil, err
	}
	return &out, nil
}
