package cartstate

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

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

func (r *postgresRepo) Load(ctx context.Context, key string) (domain.Cart, error) {
	const q = `
SELECT value::text
FROM cart_storage
WHERE key = $1
`
	var raw string
	if err := r.pool.QueryRow(ctx, q, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, domain.ErrNotFound
		}
		r.logger.Warnw("cartstate repo: load failed", "key", key, "error", err)
		return domain.Cart{}, err
	}
	return Decode([]byte(raw))
}

func (r *postgresRepo) Save(ctx context.Context, key string, cart domain.Cart) error {
	const q = `
INSERT INTO cart_storage (key, value, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (key) DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	data, err := Encode(cart)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, q, key, string(data)); err != nil {
		r.logger.Warnw("cartstate repo: save failed", "key", key, "error", err)
		return err
	}
	r.logger.Debugw("cartstate repo: saved", "key", key, "items", len(cart.Items))
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
