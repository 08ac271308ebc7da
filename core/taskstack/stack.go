package taskstack

import (
	"fmt"
	"sync"
)

// Stack is a navigation stack that is safe for concurrent use.
// Apply performs read, reconcile and write as one critical section,
// so concurrent navigations never interleave.
type Stack struct {
	mu      sync.Mutex
	entries []Destination
}

// NewStack creates a stack seeded with the given entries, bottom first.
func NewStack(entries ...Destination) *Stack {
	s := &Stack{entries: make([]Destination, 0, len(entries))}
	s.entries = append(s.entries, entries...)
	return s
}

// Apply merges dest into the stack using mode and stores the result.
func (s *Stack) Apply(dest Destination, mode Mode) (Transition, error) {
	if dest.Identity == "" {
		return Transition{}, ErrEmptyIdentity
	}
	if !mode.Valid() {
		return Transition{}, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Reconcile(s.entries, dest, mode)
	s.entries = t.Stack

	// callers get their own copy so later Apply calls cannot race with them
	t.Stack = clone(t.Stack)
	return t, nil
}

// Pop removes and returns the top entry. It returns false on an empty stack.
func (s *Stack) Pop() (Destination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return Destination{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Top returns the top entry without removing it.
func (s *Stack) Top() (Destination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return Destination{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Snapshot returns a copy of the entries, bottom first.
func (s *Stack) Snapshot() []Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.entries)
}

// Identities returns the identity of every entry, bottom first.
func (s *Stack) Identities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.entries))
	for i, d := range s.entries {
		ids[i] = d.Identity
	}
	return ids
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reset removes all entries.
func (s *Stack) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}

func clone(in []Destination) []Destination {
	out := make([]Destination, len(in))
	copy(out, in)
	return out
}
