package messaging

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultOrderTopic carries OrderPlaced events.
const DefaultOrderTopic = "orders.placed"

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// OrderPlaced is announced once payment for an order succeeded.
type OrderPlaced struct {
	OrderID     string          `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	ItemCount   int             `json:"itemCount"`
	Coupon      *string         `json:"coupon,omitempty"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// LogPublisher writes events to the logger instead of a broker. It is used
// when no brokers are configured.
type LogPublisher struct {
	logger *zap.SugaredLogger
}

func NewLogPublisher(logger *zap.SugaredLogger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishEvent(_ context.Context, topic string, key string, event any) error {
	p.logger.Infow("event published", "topic", topic, "key", key, "event", event)
	return nil
}
