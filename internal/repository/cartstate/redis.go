package cartstate

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewRedis stores each cart as a plain string value. A zero ttl keeps
// records until they are overwritten.
func NewRedis(client *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) Repository {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &redisRepo{client: client, ttl: ttl, logger: logger}
}

func (r *redisRepo) Load(ctx context.Context, key string) (domain.Cart, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{}, domain.ErrNotFound
		}
		r.logger.Warnw("cartstate redis: load failed", "key", key, "error", err)
		return domain.Cart{}, err
	}
	return Decode(data)
}

func (r *redisRepo) Save(ctx context.Context, key string, cart domain.Cart) error {
	data, err := Encode(cart)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warnw("cartstate redis: save failed", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *redisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
