package router

import "context"

// Handler is the common shape of action and object handlers seen by
// middleware. Action handlers return nil.
type Handler func(ctx context.Context, p Params) any

// Middleware wraps a handler invocation.
type Middleware func(next Handler) Handler

// chain builds a single handler from a middleware stack and endpoint.
func chain(middlewares []Middleware, endpoint Handler) Handler {
	h := endpoint

	// wrap in reverse so the first middleware runs first
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}
