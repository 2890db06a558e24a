package mapper

import (
	"net/url"

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
)

const (
	QueryBreed     = "breed"
	QueryAvailable = "available"
)

// Dog is the HTTP representation of a listed dog.
type Dog struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Status string `json:"status"`
}

// ToCriteria parses listing query parameters. A present breed is taken
// verbatim, even when empty; only available=true enables the status filter.
func ToCriteria(query url.Values) domain.Criteria {
	var criteria domain.Criteria
	if values, ok := query[QueryBreed]; ok && len(values) > 0 {
		criteria = criteria.WithBreed(values[0])
	}
	criteria.AvailableOnly = query.Get(QueryAvailable) == "true"
	return criteria
}

// FromDomain maps a domain dog to its transport shape.
func FromDomain(dog *domain.Dog) Dog {
	if dog == nil {
		return Dog{}
	}
	return Dog{
		ID:     dog.ID,
		Name:   dog.Name,
		Breed:  dog.Breed,
		Status: dog.Status.String(),
	}
}

// FromDomainList maps a listing, always producing a non-nil slice so it encodes as [].
func FromDomainList(dogs []*domain.Dog) []Dog {
	result := make([]Dog, 0, len(dogs))
	for _, dog := range dogs {
		if dog == nil {
			continue
		}
		result = append(result, FromDomain(dog))
	}
	return result
}

// FromBreeds guarantees the breed catalog encodes as an array.
func FromBreeds(breeds []string) []string {
	if breeds == nil {
		return []string{}
	}
	return breeds
}
