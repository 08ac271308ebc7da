package pattern

import "errors"

var (
	// Compile errors
	ErrMalformedPattern = errors.New("malformed route pattern")

	// Generation errors
	ErrArityMismatch = errors.New("parameter count does not match pattern variables")
	ErrEmptyParam    = errors.New("empty value for pattern variable")

	// Address errors
	ErrInvalidAddress = errors.New("invalid address")
)
