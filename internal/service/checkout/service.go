package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/messaging"
	"storefront/internal/payments"
	"storefront/internal/pricing"
)

// CartStore is the part of a cart store checkout needs. BeginCheckout must
// be followed by exactly one AbortCheckout or CompleteCheckout.
type CartStore interface {
	BeginCheckout() (domain.Cart, domain.Totals, error)
	AbortCheckout()
	CompleteCheckout(ctx context.Context, paid domain.Cart) error
}

type charger interface {
	Charge(ctx context.Context, method string, req payments.ChargeRequest) (payments.ChargeResult, error)
}

// Request is the checkout form.
type Request struct {
	Customer domain.CustomerInfo    `json:"customer"`
	Shipping domain.ShippingAddress `json:"shipping"`
	Payment  domain.PaymentMethod   `json:"payment"`
}

type Config struct {
	Currency   string
	OrderTopic string
}

type Service struct {
	validate  *validator.Validate
	payments  charger
	publisher messaging.Publisher
	numbers   *OrderNumberGenerator
	cfg       Config
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func New(gateway charger, publisher messaging.Publisher, numbers *OrderNumberGenerator, cfg Config, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if publisher == nil {
		publisher = messaging.NewLogPublisher(logger)
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.OrderTopic == "" {
		cfg.OrderTopic = messaging.DefaultOrderTopic
	}
	return &Service{
		validate:  newValidator(),
		payments:  gateway,
		publisher: publisher,
		numbers:   numbers,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Validate normalizes req in place and checks the customer, shipping and
// payment blocks.
func (s *Service) Validate(req *Request) error {
	normalize(req)
	if err := s.validate.Struct(req); err != nil {
		return translate(err)
	}
	return nil
}

// PlaceOrder reserves the cart held by store, charges it and removes the
// paid lines once payment succeeds. A second checkout of the same store
// while payment is pending fails with domain.ErrCheckoutInProgress. A failed
// payment leaves the cart untouched. A failure to persist the cleared cart
// is returned wrapping domain.ErrPersist together with the placed order.
func (s *Service) PlaceOrder(ctx context.Context, store CartStore, req Request) (*domain.Order, error) {
	if err := s.Validate(&req); err != nil {
		return nil, err
	}

	cart, totals, err := store.BeginCheckout()
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		store.AbortCheckout()
		return nil, domain.ErrEmptyCart
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:              uuid.NewString(),
		Items:           cart.Items,
		Customer:        req.Customer,
		ShippingAddress: req.Shipping,
		Payment:         req.Payment,
		Coupon:          cart.Coupon,
		Totals:          totals,
		Currency:        s.cfg.Currency,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
	}
	order.Number = s.numbers.Generate(order.ID, now)

	res, err := s.payments.Charge(ctx, req.Payment.Type, payments.ChargeRequest{
		OrderID:       order.ID,
		OrderNumber:   order.Number,
		AmountCents:   pricing.ToCents(totals.Total),
		Currency:      order.Currency,
		CustomerName:  strings.TrimSpace(req.Customer.FirstName + " " + req.Customer.LastName),
		CustomerEmail: req.Customer.Email,
		CardLast4:     req.Payment.CardLast4,
	})
	if err != nil {
		store.AbortCheckout()
		s.logger.Warnw("checkout: payment failed", "order_id", order.ID, "method", req.Payment.Type, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPaymentFailed, err)
	}
	order.Status = domain.OrderStatusProcessing
	s.logger.Infow("checkout: order placed",
		"order_id", order.ID,
		"order_number", order.Number,
		"transaction_id", res.TransactionID,
		"total", totals.Total.String(),
	)

	clearErr := store.CompleteCheckout(ctx, cart)
	if clearErr != nil && !errors.Is(clearErr, domain.ErrPersist) {
		clearErr = fmt.Errorf("%w: %w", domain.ErrPersist, clearErr)
	}

	event := messaging.OrderPlaced{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Total:       totals.Total,
		Currency:    order.Currency,
		ItemCount:   totals.ItemCount,
		Coupon:      order.Coupon,
		PlacedAt:    now,
	}
	if err := s.publisher.PublishEvent(ctx, s.cfg.OrderTopic, order.ID, event); err != nil {
		s.logger.Errorw("checkout: publish order event failed", "order_id", order.ID, "error", err)
	}

	return order, clearErr
}

func normalize(req *Request) {
	c := &req.Customer
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)

	a := &req.Shipping
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	if strings.TrimSpace(a.FirstName) == "" {
		a.FirstName = c.FirstName
	}
	if strings.TrimSpace(a.LastName) == "" {
		a.LastName = c.LastName
	}
	if strings.TrimSpace(a.Phone) == "" {
		a.Phone = c.Phone
	}

	req.Payment.Type = strings.ToLower(strings.TrimSpace(req.Payment.Type))
	req.Payment.CardLast4 = strings.TrimSpace(req.Payment.CardLast4)
}
