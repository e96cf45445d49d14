package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"storefront/internal/coupon"
	"storefront/internal/domain"
	"storefront/internal/pricing"
	"storefront/internal/repository/cartstate"
)

// Service is the session registry: it hands out one live Store per session
// key. Stores are never evicted, so each key has exactly one writer in this
// process.
type Service struct {
	repo    stateRepo
	coupons *coupon.Registry
	calc    *pricing.Calculator
	logger  *zap.SugaredLogger

	mu     sync.RWMutex
	stores map[string]*Store
	group  singleflight.Group
}

func New(repo stateRepo, coupons *coupon.Registry, calc *pricing.Calculator, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if coupons == nil {
		coupons = coupon.Default()
	}
	if calc == nil {
		calc = pricing.New(pricing.DefaultPolicy())
	}
	return &Service{
		repo:    repo,
		coupons: coupons,
		calc:    calc,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// Key returns the storage key of a session.
func (s *Service) Key(sessionID string) string {
	return cartstate.Key(sessionID)
}

// Open returns the live store of sessionID, loading persisted state on first
// access. A missing or unreadable record starts an empty cart; any other
// load failure is returned and nothing is cached.
func (s *Service) Open(ctx context.Context, sessionID string) (*Store, error) {
	key := s.Key(sessionID)
	if st := s.lookup(key); st != nil {
		return st, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if st := s.lookup(key); st != nil {
			return st, nil
		}
		initial, err := s.load(ctx, key)
		if err != nil {
			return nil, err
		}
		st := NewStore(key, initial, s.repo, s.coupons, s.calc, s.logger)
		s.mu.Lock()
		s.stores[key] = st
		s.mu.Unlock()
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

// Sessions reports how many stores are live.
func (s *Service) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stores)
}

func (s *Service) lookup(key string) *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stores[key]
}

func (s *Service) load(ctx context.Context, key string) (domain.Cart, error) {
	empty := domain.Cart{Items: []domain.CartItem{}}
	if s.repo == nil {
		return empty, nil
	}
	cart, err := s.repo.Load(ctx, key)
	switch {
	case err == nil:
		s.logger.Debugw("cart service: restored cart", "key", key, "items", len(cart.Items))
		return s.sanitize(key, cart), nil
	case errors.Is(err, domain.ErrNotFound):
		return empty, nil
	case errors.Is(err, cartstate.ErrCorrupt):
		s.logger.Warnw("cart service: discarding unreadable cart", "key", key, "error", err)
		return empty, nil
	default:
		s.logger.Errorw("cart service: load failed", "key", key, "error", err)
		return domain.Cart{}, err
	}
}

// sanitize drops what a well-formed store could never have written: lines
// without a positive quantity, repeated product ids and unknown coupons.
func (s *Service) sanitize(key string, cart domain.Cart) domain.Cart {
	out := domain.Cart{Items: make([]domain.CartItem, 0, len(cart.Items))}
	seen := make(map[string]struct{}, len(cart.Items))
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			continue
		}
		if _, dup := seen[item.Product.ID]; dup {
			continue
		}
		seen[item.Product.ID] = struct{}{}
		out.Items = append(out.Items, item)
	}
	if cart.Coupon != nil {
		if code, err := s.coupons.Lookup(*cart.Coupon); err == nil {
			out.Coupon = &code
		}
	}
	if len(out.Items) != len(cart.Items) || (cart.Coupon != nil) != (out.Coupon != nil) {
		s.logger.Warnw("cart service: dropped invalid cart entries", "key", key)
	}
	return out
}
