package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// Source is the product lookup surface shared by the built-in catalog and
// the Postgres repository.
type Source interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

type Service struct {
	repo Source
}

func New(repo Source) *Service {
	return &Service{repo: repo}
}

// Query mirrors the storefront's listing controls.
type Query struct {
	Categories  []string
	Search      string
	Sort        string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
}

func (s *Service) List(ctx context.Context, q Query) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := catalog.Apply(all, catalog.Filter{
		Categories:  q.Categories,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		InStockOnly: q.InStockOnly,
		Query:       strings.TrimSpace(q.Search),
	})
	catalog.Sort(out, q.Sort)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Related returns products from the same category as slug.
func (s *Service) Related(ctx context.Context, slug string) ([]domain.Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Related(all, p.ID, p.Category), nil
}

func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Featured(all), nil
}

func (s *Service) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewArrivals(all), nil
}
