package ports

import (
	"context"

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
)

// Service defines the dogs use cases exposed to adapters (inbound/driving port).
type Service interface {
	ListDogs(ctx context.Context, criteria domain.Criteria) ([]*domain.Dog, error)
	ListBreeds(ctx context.Context) ([]string, error)
	GetDog(ctx context.Context, id int64) (*domain.Dog, error)
}
