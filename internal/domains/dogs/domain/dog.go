package domain

import (
	"errors"
	"fmt"
)

// Status represents the adoption state of a dog inside the shelter catalog.
type Status uint8

const (
	StatusAvailable Status = iota + 1
	StatusPending
	StatusAdopted
)

// ErrUnknownStatus is returned when a status name does not match a known member.
var ErrUnknownStatus = errors.New("unknown dog status")

// String returns the upper-case wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "AVAILABLE"
	case StatusPending:
		return "PENDING"
	case StatusAdopted:
		return "ADOPTED"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the declared members.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	default:
		return false
	}
}

// ParseStatus maps an upper-case wire name back to its Status.
func ParseStatus(name string) (Status, error) {
	switch name {
	case "AVAILABLE":
		return StatusAvailable, nil
	case "PENDING":
		return StatusPending, nil
	case "ADOPTED":
		return StatusAdopted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
	}
}

// Dog is a shelter animal listed for adoption.
type Dog struct {
	ID     int64
	Name   string
	Breed  string
	Status Status
}

// Clone returns a copy detached from the receiver.
func (d *Dog) Clone() *Dog {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}
