package category

import (
	"context"

	"storefront/internal/domain"
)

type source interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type Service struct {
	repo source
}

func New(repo source) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

// Exists reports whether id names a known category.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range list {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}
