package router

import "errors"

var (
	// Registration errors
	ErrNilHandler    = errors.New("nil route handler")
	ErrInvalidScheme = errors.New("invalid app scheme")
)
