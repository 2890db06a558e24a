package application

import (
	"context"
	"slices"

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
)

// Service resolves dog listings and the breed catalog from a single store read.
type Service struct {
	repo ports.Repository
}

// NewService wires the dogs service with its store.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// ListDogs returns the dogs matching every active criterion, in store order.
func (s *Service) ListDogs(ctx context.Context, criteria domain.Criteria) ([]*domain.Dog, error) {
	dogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	result := make([]*domain.Dog, 0, len(dogs))
	for _, dog := range dogs {
		if criteria.Matches(dog) {
			result = append(result, dog)
		}
	}
	return result, nil
}

// ListBreeds returns the distinct breed names present in the store, sorted.
func (s *Service) ListBreeds(ctx context.Context) ([]string, error) {
	dogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	seen := make(map[string]struct{}, len(dogs))
	breeds := make([]string, 0, len(dogs))
	for _, dog := range dogs {
		if dog == nil {
			continue
		}
		if _, ok := seen[dog.Breed]; ok {
			continue
		}
		seen[dog.Breed] = struct{}{}
		breeds = append(breeds, dog.Breed)
	}
	slices.Sort(breeds)
	return breeds, nil
}

// GetDog loads a single dog.
func (s *Service) GetDog(ctx context.Context, id int64) (*domain.Dog, error) {
	dog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return dog, nil
}

var _ ports.Service = (*Service)(nil)
