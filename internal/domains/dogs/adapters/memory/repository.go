package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Seeder     = (*Repository)(nil)
)

// Repository is an in-memory dog table that enumerates in insertion order.
type Repository struct {
	mu    sync.RWMutex
	dogs  []*domain.Dog
	index map[int64]int
}

// NewRepository constructs a store holding copies of the given dogs.
// It panics on duplicate ids, which only fixtures can produce.
func NewRepository(dogs ...*domain.Dog) *Repository {
	r := &Repository{index: map[int64]int{}}
	if err := r.Insert(context.Background(), dogs...); err != nil {
		panic(err)
	}
	return r
}

// Insert appends dogs after validating the whole batch.
func (r *Repository) Insert(_ context.Context, dogs ...*domain.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[int64]struct{}, len(dogs))
	for _, dog := range dogs {
		if dog == nil {
			return errors.New("cannot insert nil dog")
		}
		if !dog.Status.Valid() {
			return fmt.Errorf("dog %d: %w", dog.ID, domain.ErrUnknownStatus)
		}
		if _, ok := r.index[dog.ID]; ok {
			return fmt.Errorf("%w: %d", ports.ErrDuplicateID, dog.ID)
		}
		if _, ok := batch[dog.ID]; ok {
			return fmt.Errorf("%w: %d", ports.ErrDuplicateID, dog.ID)
		}
		batch[dog.ID] = struct{}{}
	}
	for _, dog := range dogs {
		r.index[dog.ID] = len(r.dogs)
		r.dogs = append(r.dogs, dog.Clone())
	}
	return nil
}

// List returns copies of all dogs in insertion order.
func (r *Repository) List(_ context.Context) ([]*domain.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Dog, 0, len(r.dogs))
	for _, dog := range r.dogs {
		list = append(list, dog.Clone())
	}
	return list, nil
}

// GetByID fetches a dog if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.dogs[pos].Clone(), nil
}

// Reset drops every dog.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dogs = nil
	r.index = map[int64]int{}
}
