package taskstack

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidMode   = errors.New("invalid task mode")
	ErrEmptyIdentity = errors.New("destination identity is empty")
)

// Destination is one entry of the navigation stack.
// Identity (a route pattern or canonical URL) decides equality;
// ID distinguishes instances that share an identity.
type Destination struct {
	ID       uuid.UUID
	Identity string
	Payload  map[string]any
}

// NewDestination creates a destination with a fresh instance ID.
func NewDestination(identity string, payload map[string]any) Destination {
	return Destination{
		ID:       uuid.New(),
		Identity: identity,
		Payload:  payload,
	}
}

// Is reports whether d and other share an identity.
func (d Destination) Is(other Destination) bool {
	return d.Identity == other.Identity
}
