// Package seed loads dog fixtures into a store at startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
)

var ErrMalformedFixture = errors.New("malformed dog fixture")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fixtureDog struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Status string `json:"status"`
}

// Decode parses a JSON array of dogs. Nothing is returned unless every entry is valid.
func Decode(r io.Reader) ([]*domain.Dog, error) {
	var fixtures []fixtureDog
	if err := json.NewDecoder(r).Decode(&fixtures); err != nil {
		return nil, errors.Join(ErrMalformedFixture, err)
	}
	dogs := make([]*domain.Dog, 0, len(fixtures))
	for i, f := range fixtures {
		status, err := domain.ParseStatus(f.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrMalformedFixture, i, err)
		}
		dogs = append(dogs, &domain.Dog{ID: f.ID, Name: f.Name, Breed: f.Breed, Status: status})
	}
	return dogs, nil
}

// Load decodes r and inserts the dogs into seeder.
func Load(ctx context.Context, r io.Reader, seeder ports.Seeder) (int, error) {
	dogs, err := Decode(r)
	if err != nil {
		return 0, err
	}
	if len(dogs) == 0 {
		return 0, nil
	}
	if err := seeder.Insert(ctx, dogs...); err != nil {
		return 0, err
	}
	return len(dogs), nil
}

// LoadFile is Load over the file at path.
func LoadFile(ctx context.Context, path string, seeder ports.Seeder) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(ctx, f, seeder)
}
