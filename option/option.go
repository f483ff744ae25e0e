// Package option provides a two-variant container representing the presence
// or absence of a value.
//
// An Option is immutable once constructed: transformations return a new
// Option rather than mutating in place. All operations are total except
// Unwrap and Expect, which panic on an Absent container.
//
// Go methods cannot introduce type parameters, so transformations that change
// the element type (Map, AndThen, Match) are package-level functions; the
// same-type operations live on the Option itself.
package option

import "fmt"

// Variant identifies which side of the container holds.
type Variant int

const (
	// VariantPresent marks an Option carrying a value.
	VariantPresent Variant = iota

	// VariantAbsent marks an empty Option.
	VariantAbsent
)

// String returns the variant name.
func (v Variant) String() string {
	if v == VariantPresent {
		return "present"
	}
	return "absent"
}

// Container is the non-generic view of an Option, exposing its variant
// discriminant. Shape checks dispatch on this explicit tag instead of
// probing for methods.
type Container interface {
	Variant() Variant
}

// UnwrappedAbsent is the panic value raised by Unwrap and Expect on an
// Absent Option.
type UnwrappedAbsent struct {
	// Message is the caller-supplied context from Expect, empty for Unwrap.
	Message string
}

// Error implements the error interface.
func (e *UnwrappedAbsent) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("option: %s", e.Message)
	}
	return "option: unwrap of absent value"
}

// Option holds either a value (Present) or nothing (Absent).
// The zero value is Absent.
type Option[T any] struct {
	value   T
	present bool
}

// Present creates an Option carrying value.
func Present[T any](value T) Option[T] {
	return Option[T]{value: value, present: true}
}

// Absent creates an empty Option.
func Absent[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr converts a possibly nil pointer into an Option over the pointee.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return Absent[T]()
	}
	return Present(*p)
}

// Variant returns the container's discriminant.
func (o Option[T]) Variant() Variant {
	if o.present {
		return VariantPresent
	}
	return VariantAbsent
}

// IsPresent reports whether the Option carries a value.
func (o Option[T]) IsPresent() bool {
	return o.present
}

// IsAbsent reports whether the Option is empty.
func (o Option[T]) IsAbsent() bool {
	return !o.present
}

// Unwrap returns the value, panicking with *UnwrappedAbsent when empty.
func (o Option[T]) Unwrap() T {
	if !o.present {
		panic(&UnwrappedAbsent{})
	}
	return o.value
}

// Expect returns the value, panicking with *UnwrappedAbsent carrying
// message when empty.
func (o Option[T]) Expect(message string) T {
	if !o.present {
		panic(&UnwrappedAbsent{Message: message})
	}
	return o.value
}

// UnwrapOr returns the value, or def when empty.
func (o Option[T]) UnwrapOr(def T) T {
	if !o.present {
		return def
	}
	return o.value
}

// UnwrapOrElse returns the value, or the result of fn when empty.
func (o Option[T]) UnwrapOrElse(fn func() T) T {
	if !o.present {
		return fn()
	}
	return o.value
}

// Or returns o when present, otherwise other.
func (o Option[T]) Or(other Option[T]) Option[T] {
	if o.present {
		return o
	}
	return other
}

// OrElse returns o when present, otherwise the Option produced by fn.
func (o Option[T]) OrElse(fn func() Option[T]) Option[T] {
	if o.present {
		return o
	}
	return fn()
}

// Filter returns o when present and the predicate holds, otherwise Absent.
func (o Option[T]) Filter(pred func(T) bool) Option[T] {
	if !o.present || !pred(o.value) {
		return Absent[T]()
	}
	return o
}

// Value returns the value and whether it is present.
func (o Option[T]) Value() (T, bool) {
	return o.value, o.present
}

// Match invokes exactly one of the handlers based on the variant.
func (o Option[T]) Match(onPresent func(T), onAbsent func()) {
	if o.present {
		onPresent(o.value)
	} else {
		onAbsent()
	}
}

// Map transforms the value when present; Absent passes through.
func Map[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.present {
		return Absent[U]()
	}
	return Present(fn(o.value))
}

// MapOr applies fn to the value when present, otherwise returns def.
// Unlike Map it collapses the container into a plain value.
func MapOr[T, U any](o Option[T], def U, fn func(T) U) U {
	if !o.present {
		return def
	}
	return fn(o.value)
}

// MapOrElse applies fn to the value when present, otherwise the result of
// defFn. Both paths collapse the container into a plain value.
func MapOrElse[T, U any](o Option[T], defFn func() U, fn func(T) U) U {
	if !o.present {
		return defFn()
	}
	return fn(o.value)
}

// AndThen chains an operation that itself may come up empty (monadic bind).
// Absent passes through without invoking fn.
func AndThen[T, U any](o Option[T], fn func(T) Option[U]) Option[U] {
	if !o.present {
		return Absent[U]()
	}
	return fn(o.value)
}

// MatchReturn invokes exactly one of the handlers and returns its result.
func MatchReturn[T, U any](o Option[T], onPresent func(T) U, onAbsent func() U) U {
	if o.present {
		return onPresent(o.value)
	}
	return onAbsent()
}
