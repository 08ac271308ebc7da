package router

import (
	"context"

	"github.com/dmitrymomot/linkrouter/core/taskstack"
)

// Presenter realises a navigation transition after the handler has run.
// The router ignores whatever the presenter does with it.
type Presenter interface {
	Present(ctx context.Context, t taskstack.Transition, p Params, stack *taskstack.Stack)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, t taskstack.Transition, p Params, stack *taskstack.Stack)

// Present calls f.
func (f PresenterFunc) Present(ctx context.Context, t taskstack.Transition, p Params, stack *taskstack.Stack) {
	f(ctx, t, p, stack)
}
