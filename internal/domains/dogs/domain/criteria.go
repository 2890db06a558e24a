package domain

// Criteria holds the optional filters of a dog listing request.
// A nil Breed and a false AvailableOnly impose no constraint.
type Criteria struct {
	Breed         *string
	AvailableOnly bool
}

// WithBreed returns a copy of c restricted to an exact breed name.
func (c Criteria) WithBreed(breed string) Criteria {
	c.Breed = &breed
	return c
}

// Active reports whether any filter is set.
func (c Criteria) Active() bool {
	return c.Breed != nil || c.AvailableOnly
}

// Matches reports whether dog satisfies every active filter.
// Breed comparison is exact and case-sensitive.
func (c Criteria) Matches(dog *Dog) bool {
	if dog == nil {
		return false
	}
	if c.Breed != nil && dog.Breed != *c.Breed {
		return false
	}
	if c.AvailableOnly && dog.Status != StatusAvailable {
		return false
	}
	return true
}
