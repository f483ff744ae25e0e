package result

import (
	"context"

	"github.com/agentstation/matchbox/future"
)

// All reduces a sequence of Results into a single Result: a Success over
// every value when all succeed, otherwise the first Failure encountered.
func All[T, E any](results []Result[T, E]) Result[[]T, E] {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if !r.ok {
			return Failure[[]T, E](r.err)
		}
		values = append(values, r.value)
	}
	return Success[[]T, E](values)
}

// Any reduces a sequence of Results into the first Success encountered,
// or the last Failure when none succeed. An empty sequence yields a Failure
// carrying E's zero value.
func Any[T, E any](results []Result[T, E]) Result[T, E] {
	var last Result[T, E]
	for _, r := range results {
		if r.ok {
			return r
		}
		last = r
	}
	return last
}

// Await blocks until the pending computation settles and captures its
// outcome as a Result.
func Await[T any](ctx context.Context, f *future.Value[T]) Result[T, error] {
	return From(f.Await(ctx))
}

// AwaitMapErr blocks until the pending computation settles, mapping a
// settlement error through mapErr into the Result's failure type.
func AwaitMapErr[T, E any](ctx context.Context, f *future.Value[T], mapErr func(error) E) Result[T, E] {
	v, err := f.Await(ctx)
	if err != nil {
		return Failure[T, E](mapErr(err))
	}
	return Success[T, E](v)
}

// AndThenFuture chains a handler returning a pending Result. On Failure the
// returned computation resolves immediately with the unchanged failure and
// the handler is never invoked.
func AndThenFuture[T, U, E any](r Result[T, E], fn func(T) *future.Value[Result[U, E]]) *future.Value[Result[U, E]] {
	if !r.ok {
		return future.Resolved(Failure[U, E](r.err))
	}
	return fn(r.value)
}

// OrElseFuture chains a recovery handler returning a pending Result. On
// Success the returned computation resolves immediately with the unchanged
// success and the handler is never invoked.
func OrElseFuture[T, E any](r Result[T, E], fn func(E) *future.Value[Result[T, E]]) *future.Value[Result[T, E]] {
	if r.ok {
		return future.Resolved(r)
	}
	return fn(r.err)
}
