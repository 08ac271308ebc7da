package taskstack

// Transition describes the result of merging a destination into a stack.
type Transition struct {
	// Mode is the mode that was requested.
	Mode Mode

	// Stack is the new stack, bottom first. It never aliases the input.
	Stack []Destination

	// Top is the destination now on top of Stack.
	Top Destination

	// Removed lists the entries dropped from the old stack, top first.
	Removed []Destination

	// Reused is true when Single kept an existing instance instead of
	// pushing the new one.
	Reused bool
}

// Reconcile merges dest into stack according to mode and returns the
// resulting transition. It is a pure function: stack is not modified and
// the same inputs always produce the same output. Unknown modes behave
// like Top.
func Reconcile(stack []Destination, dest Destination, mode Mode) Transition {
	t := Transition{Mode: mode}

	switch mode {
	case ReplaceTop:
		keep := len(stack)
		if keep > 0 {
			keep--
		}
		t.Stack, t.Removed = truncate(stack, keep)
		t.Stack = append(t.Stack, dest)

	case Single:
		i := nearest(stack, dest)
		if i < 0 {
			t.Stack = push(stack, dest)
			break
		}
		// keep the matched instance, drop everything above it
		t.Stack, t.Removed = truncate(stack, i+1)
		t.Reused = true

	case Clear:
		i := nearest(stack, dest)
		if i < 0 {
			t.Stack = push(stack, dest)
			break
		}
		t.Stack, t.Removed = truncate(stack, i)
		t.Stack = append(t.Stack, dest)

	default:
		t.Stack = push(stack, dest)
	}

	t.Top = t.Stack[len(t.Stack)-1]
	return t
}

// nearest returns the index of the topmost entry sharing dest's identity, or -1.
func nearest(stack []Destination, dest Destination) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Is(dest) {
			return i
		}
	}
	return -1
}

// push copies stack and appends dest.
func push(stack []Destination, dest Destination) []Destination {
	out := make([]Destination, len(stack), len(stack)+1)
	copy(out, stack)
	return append(out, dest)
}

// truncate copies the first n entries and returns the dropped ones top first.
func truncate(stack []Destination, n int) (kept, removed []Destination) {
	kept = make([]Destination, n, n+1)
	copy(kept, stack[:n])

	if dropped := len(stack) - n; dropped > 0 {
		removed = make([]Destination, 0, dropped)
		for i := len(stack) - 1; i >= n; i-- {
			removed = append(removed, stack[i])
		}
	}
	return kept, removed
}
