package taskstack

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode decides how a new destination is merged into the stack.
// The numeric values are part of the URL contract (?task_mode=2).
type Mode uint8

const (
	// Top pushes the destination even if it is already on the stack.
	//	a-b-c-a + b => a-b-c-a-b
	Top Mode = iota
	// ReplaceTop swaps the current top for the destination.
	//	a-b-c + x => a-b-x
	ReplaceTop
	// Single pops everything above the nearest existing instance and keeps it.
	//	a-b-c-a + b => a-b
	Single
	// Clear pops the nearest existing instance and everything above it,
	// then pushes the destination.
	//	a-b-c-a + b => a + b => a-b
	Clear
)

var modeNames = [...]string{
	Top:        "top",
	ReplaceTop: "replace_top",
	Single:     "single",
	Clear:      "clear",
}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m <= Clear
}

// ParseMode accepts the numeric form ("0".."3") or a mode name
// ("top", "replace_top", "replace-top", "single", "clear"), case-insensitive.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > int(Clear) {
			return Top, fmt.Errorf("%w: %d", ErrInvalidMode, n)
		}
		return Mode(n), nil
	}

	name := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	for m, v := range modeNames {
		if v == name {
			return Mode(m), nil
		}
	}
	return Top, fmt.Errorf("%w: '%s'", ErrInvalidMode, s)
}
