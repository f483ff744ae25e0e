// Package future models pending computations: values that are not yet
// available but will settle exactly once, possibly asynchronously.
//
// A Value is created either already settled (Resolved, Rejected), from a
// function running in its own goroutine (Go), or unsettled with an explicit
// settle callback (New). Settlement is one-shot; later attempts are ignored.
package future

import (
	"context"
	"sync"
)

// Pending is the non-generic view of a Value, used for shape checks that
// ask "is this a pending computation" without knowing the element type.
type Pending interface {
	// Done is closed when the value has settled.
	Done() <-chan struct{}

	// Settled reports whether the value is available without blocking.
	Settled() bool
}

// Value is a one-shot container for a result that may not exist yet.
type Value[T any] struct {
	done chan struct{}

	mu      sync.Mutex
	settled bool
	val     T
	err     error
}

// New creates an unsettled Value and the function that settles it.
// The settle function is safe to call from any goroutine; only the first
// call has an effect.
func New[T any]() (*Value[T], func(val T, err error)) {
	v := &Value[T]{done: make(chan struct{})}
	return v, v.settle
}

// Go runs fn in a new goroutine and returns a Value that settles with
// fn's result. Evaluation begins immediately.
func Go[T any](fn func() (T, error)) *Value[T] {
	v := &Value[T]{done: make(chan struct{})}
	go func() {
		val, err := fn()
		v.settle(val, err)
	}()
	return v
}

// Resolved returns a Value already settled with val.
func Resolved[T any](val T) *Value[T] {
	v := &Value[T]{done: make(chan struct{}), settled: true, val: val}
	close(v.done)
	return v
}

// Rejected returns a Value already settled with err.
func Rejected[T any](err error) *Value[T] {
	v := &Value[T]{done: make(chan struct{}), settled: true, err: err}
	close(v.done)
	return v
}

func (v *Value[T]) settle(val T, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.settled {
		return
	}
	v.settled = true
	v.val = val
	v.err = err
	close(v.done)
}

// Await blocks until the value settles or ctx is canceled.
func (v *Value[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-v.done:
		v.mu.Lock()
		defer v.mu.Unlock()
		return v.val, v.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryAwait returns the settled value without blocking. The second return
// reports whether the value had settled.
func (v *Value[T]) TryAwait() (val T, settled bool, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.settled {
		var zero T
		return zero, false, nil
	}
	return v.val, true, v.err
}

// Done is closed when the value has settled.
func (v *Value[T]) Done() <-chan struct{} {
	return v.done
}

// Settled reports whether the value is available without blocking.
func (v *Value[T]) Settled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settled
}
