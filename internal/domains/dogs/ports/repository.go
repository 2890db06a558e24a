package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
)

var (
	ErrNotFound    = errors.New("dog not found")
	ErrDuplicateID = errors.New("dog id already exists")
)

// Repository is the read side of the dog store.
type Repository interface {
	// List returns every dog in the store's natural enumeration order.
	List(ctx context.Context) ([]*domain.Dog, error)
	GetByID(ctx context.Context, id int64) (*domain.Dog, error)
}

// Seeder loads dogs into a store at startup or in tests.
type Seeder interface {
	Insert(ctx context.Context, dogs ...*domain.Dog) error
}
