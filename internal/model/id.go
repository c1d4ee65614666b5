package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is the opaque identity of a Record or Detail.
// It is comparable and can be used as a map key.
type ID struct {
	u uuid.UUID
}

// NewID returns a fresh random identifier.
func NewID() ID {
	return ID{u: uuid.New()}
}

// ParseID parses the canonical string form produced by ID.String.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return ID{u: u}, nil
}

// String returns the canonical UUID form of the id.
func (id ID) String() string {
	return id.u.String()
}

// Short returns the first eight characters, for display.
func (id ID) Short() string {
	return id.u.String()[:8]
}

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool {
	return id.u == uuid.Nil
}
