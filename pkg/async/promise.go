package async

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Promise is a write-once completion handle. The first Resolve or Reject
// wins; later calls are ignored.
type Promise[T any] struct {
	value T
	err   error
	once  sync.Once
	done  chan struct{}
}

// NewPromise returns an unresolved promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolve completes the promise with v.
func (p *Promise[T]) Resolve(v T) {
	p.TryResolve(v)
}

// TryResolve completes the promise with v and reports whether this call won.
func (p *Promise[T]) TryResolve(v T) bool {
	return p.settle(v, nil)
}

// Reject completes the promise with err.
func (p *Promise[T]) Reject(err error) bool {
	var zero T
	return p.settle(zero, err)
}

func (p *Promise[T]) settle(v T, err error) bool {
	won := false
	p.once.Do(func() {
		p.value, p.err = v, err
		won = true
		close(p.done)
	})
	return won
}

// Callback adapts the promise to an untyped completion callback. Values that
// are not a T reject the promise with ErrUnexpectedType.
func (p *Promise[T]) Callback() func(any) {
	return func(v any) {
		if v == nil {
			var zero T
			p.Resolve(zero)
			return
		}
		tv, ok := v.(T)
		if !ok {
			p.Reject(fmt.Errorf("%w: %T", ErrUnexpectedType, v))
			return
		}
		p.Resolve(tv)
	}
}

// Done is closed once the promise is settled.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the promise is settled.
func (p *Promise[T]) Await() (T, error) {
	<-p.done
	return p.value, p.err
}

// AwaitContext blocks until the promise is settled or ctx is done.
func (p *Promise[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits up to timeout and returns ErrTimeout when it elapses first.
func (p *Promise[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-p.done:
		return p.value, p.err
	case <-t.C:
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the promise is settled, without blocking.
func (p *Promise[T]) IsComplete() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// AwaitAll waits for every promise and returns their values in order.
// It stops at the first rejection or when ctx is done.
func AwaitAll[T any](ctx context.Context, promises ...*Promise[T]) ([]T, error) {
	out := make([]T, len(promises))
	for i, p := range promises {
		v, err := p.AwaitContext(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// AwaitAny returns the index and result of the first promise to settle.
func AwaitAny[T any](ctx context.Context, promises ...*Promise[T]) (int, T, error) {
	var zero T
	if len(promises) == 0 {
		return -1, zero, ErrNoPromises
	}

	first := make(chan int, len(promises))
	stop := make(chan struct{})
	defer close(stop)

	for i, p := range promises {
		go func() {
			select {
			case <-p.done:
				first <- i
			case <-stop:
			}
		}()
	}

	select {
	case i := <-first:
		v, err := promises[i].Await()
		return i, v, err
	case <-ctx.Done():
		return -1, zero, ctx.Err()
	}
}
