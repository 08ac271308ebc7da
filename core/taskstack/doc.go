// Package taskstack decides how opening a destination changes an ordered
// navigation stack.
//
// Reconcile is a pure function over a slice of destinations. Stack wraps it
// with a mutex for callers that share one stack between navigations.
//
//	s := taskstack.NewStack()
//	s.Apply(taskstack.NewDestination("app://home", nil), taskstack.Top)
//	s.Apply(taskstack.NewDestination("app://item/:id", payload), taskstack.Top)
//	t, _ := s.Apply(taskstack.NewDestination("app://home", nil), taskstack.Clear)
//	// t.Stack: [home], t.Removed: [item, home]
//
// # Modes
//
// Given the stack a-b-c-a and a new destination b:
//
//	Top        a-b-c-a-b   push unconditionally
//	ReplaceTop a-b-c-b     drop the top, push
//	Single     a-b         drop above the nearest b, keep that b instance
//	Clear      a-b         drop the nearest b and above, push the new b
//
// Single and Clear fall back to Top when the identity is not on the stack.
// Identity equality ignores payloads and instance IDs.
package taskstack
