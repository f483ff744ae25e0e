// Package result provides a two-variant container representing the outcome
// of an operation that can succeed with a value or fail with an error value.
//
// A Result is immutable once constructed: transformations return a new
// Result rather than mutating in place. Construction never fails; Unwrap and
// Expect are the only operations that can raise, and they panic
// synchronously with a value carrying the original failure.
//
// Go methods cannot introduce type parameters, so transformations that change
// the success or failure type (Map, MapError, AndThen, And, MatchReturn) are
// package-level functions; same-type operations live on the Result itself.
package result

import (
	"fmt"

	"github.com/agentstation/matchbox/option"
)

// Variant identifies which side of the container holds.
type Variant int

const (
	// VariantSuccess marks a Result carrying a success value.
	VariantSuccess Variant = iota

	// VariantFailure marks a Result carrying an error value.
	VariantFailure
)

// String returns the variant name.
func (v Variant) String() string {
	if v == VariantSuccess {
		return "success"
	}
	return "failure"
}

// Container is the non-generic view of a Result, exposing its variant
// discriminant. Shape checks dispatch on this explicit tag instead of
// probing for methods.
type Container interface {
	Variant() Variant
}

// UnwrappedFailure is the panic value raised by Unwrap and Expect on a
// Failure Result. Err holds the original failure value.
type UnwrappedFailure struct {
	// Err is the failure value the container carried.
	Err any

	// Message is the caller-supplied context from Expect, empty for Unwrap.
	Message string
}

// Error implements the error interface.
func (e *UnwrappedFailure) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("result: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("result: unwrap of failure: %v", e.Err)
}

// Result holds either a success value of type T or an error value of type E.
// The zero value is a Failure carrying E's zero value.
type Result[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Success creates a Result carrying value.
func Success[T, E any](value T) Result[T, E] {
	return Result[T, E]{value: value, ok: true}
}

// Failure creates a Result carrying err.
func Failure[T, E any](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// From converts Go's (value, error) return idiom into a Result.
func From[T any](value T, err error) Result[T, error] {
	if err != nil {
		return Failure[T, error](err)
	}
	return Success[T, error](value)
}

// FromFunc runs fn and captures its outcome as a Result.
func FromFunc[T any](fn func() (T, error)) Result[T, error] {
	return From(fn())
}

// OkOr converts an Option into a Result, substituting err for absence.
func OkOr[T, E any](o option.Option[T], err E) Result[T, E] {
	if v, ok := o.Value(); ok {
		return Success[T, E](v)
	}
	return Failure[T, E](err)
}

// Variant returns the container's discriminant.
func (r Result[T, E]) Variant() Variant {
	if r.ok {
		return VariantSuccess
	}
	return VariantFailure
}

// IsSuccess reports whether the Result carries a success value.
func (r Result[T, E]) IsSuccess() bool {
	return r.ok
}

// IsFailure reports whether the Result carries an error value.
func (r Result[T, E]) IsFailure() bool {
	return !r.ok
}

// Unwrap returns the success value, panicking with *UnwrappedFailure
// carrying the error value on Failure.
func (r Result[T, E]) Unwrap() T {
	if !r.ok {
		panic(&UnwrappedFailure{Err: r.err})
	}
	return r.value
}

// Expect returns the success value, panicking with *UnwrappedFailure
// carrying message and the error value on Failure.
func (r Result[T, E]) Expect(message string) T {
	if !r.ok {
		panic(&UnwrappedFailure{Err: r.err, Message: message})
	}
	return r.value
}

// UnwrapOr returns the success value, or def on Failure.
func (r Result[T, E]) UnwrapOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// UnwrapOrElse returns the success value, or the result of fn applied to
// the error value on Failure.
func (r Result[T, E]) UnwrapOrElse(fn func(E) T) T {
	if !r.ok {
		return fn(r.err)
	}
	return r.value
}

// UnwrapFailure returns the error value, panicking on Success.
func (r Result[T, E]) UnwrapFailure() E {
	if r.ok {
		panic(&UnwrappedFailure{Err: r.value, Message: "unwrap failure of success"})
	}
	return r.err
}

// Error returns the error value and whether the Result is a Failure.
func (r Result[T, E]) Error() (E, bool) {
	return r.err, !r.ok
}

// Value returns the success value and whether the Result is a Success.
func (r Result[T, E]) Value() (T, bool) {
	return r.value, r.ok
}

// Or returns r when it is a Success, otherwise other.
func (r Result[T, E]) Or(other Result[T, E]) Result[T, E] {
	if r.ok {
		return r
	}
	return other
}

// OrElse chains a recovery operation on Failure (dual bind); Success passes
// through without invoking fn.
func (r Result[T, E]) OrElse(fn func(E) Result[T, E]) Result[T, E] {
	if r.ok {
		return r
	}
	return fn(r.err)
}

// MapError transforms the error value on Failure; Success passes through.
// For transformations that change the error type, use the package-level
// MapError function.
func (r Result[T, E]) MapError(fn func(E) E) Result[T, E] {
	if r.ok {
		return r
	}
	return Failure[T, E](fn(r.err))
}

// ToOption converts a Success into a Present Option over the value;
// Failure becomes Absent.
func (r Result[T, E]) ToOption() option.Option[T] {
	if !r.ok {
		return option.Absent[T]()
	}
	return option.Present(r.value)
}

// ErrorToOption converts a Failure into a Present Option over the error
// value; Success becomes Absent.
func (r Result[T, E]) ErrorToOption() option.Option[E] {
	if r.ok {
		return option.Absent[E]()
	}
	return option.Present(r.err)
}

// Match invokes exactly one of the handlers based on the variant.
func (r Result[T, E]) Match(onSuccess func(T), onFailure func(E)) {
	if r.ok {
		onSuccess(r.value)
	} else {
		onFailure(r.err)
	}
}

// Map transforms the success value; Failure passes through with the error
// value untouched.
func Map[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if !r.ok {
		return Failure[U, E](r.err)
	}
	return Success[U, E](fn(r.value))
}

// MapError transforms the error value; Success passes through untouched.
func MapError[T, E, F any](r Result[T, E], fn func(E) F) Result[T, F] {
	if r.ok {
		return Success[T, F](r.value)
	}
	return Failure[T, F](fn(r.err))
}

// AndThen chains an operation that itself may fail (monadic bind); Failure
// passes through without invoking fn. This is the primary short-circuiting
// composition primitive.
func AndThen[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if !r.ok {
		return Failure[U, E](r.err)
	}
	return fn(r.value)
}

// And returns other when r is a Success, otherwise r's Failure.
func And[T, U, E any](r Result[T, E], other Result[U, E]) Result[U, E] {
	if !r.ok {
		return Failure[U, E](r.err)
	}
	return other
}

// MatchReturn invokes exactly one of the handlers and returns its result.
func MatchReturn[T, E, U any](r Result[T, E], onSuccess func(T) U, onFailure func(E) U) U {
	if r.ok {
		return onSuccess(r.value)
	}
	return onFailure(r.err)
}
