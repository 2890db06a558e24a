package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
)

var (
	// ErrStoreUnavailable signals the backing store could not be reached or queried.
	ErrStoreUnavailable = errors.New("dog store unavailable")
	// ErrMalformedCriteria is reserved for stricter request validation.
	ErrMalformedCriteria = errors.New("malformed dog criteria")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrMalformedCriteria) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
