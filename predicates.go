package matchbox

import (
	"context"
	"reflect"
	"regexp"
	"time"

	"github.com/agentstation/matchbox/future"
	"github.com/agentstation/matchbox/option"
	"github.com/agentstation/matchbox/result"
)

// TypeCheck is a named type-guard consulted by predicates through the
// registry passed to them.
type TypeCheck func(v any) bool

// Predicates is the registry of named type-guards available to a dispatch.
// Callers extend or override it by name via WithPredicates.
type Predicates map[string]TypeCheck

// Check runs the named type-guard against v. Unknown names report false.
func (p Predicates) Check(name string, v any) bool {
	check, ok := p[name]
	if !ok {
		return false
	}
	return check(v)
}

// Names returns the registered type-guard names.
func (p Predicates) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	return names
}

// BuiltinPredicates returns a fresh copy of the built-in registry.
func BuiltinPredicates() Predicates {
	return Predicates{
		"string":  IsString,
		"number":  IsNumber,
		"bool":    IsBool,
		"func":    IsFunc,
		"array":   IsArray,
		"map":     IsMap,
		"date":    IsDate,
		"regexp":  IsRegexp,
		"future":  IsPending,
		"nil":     IsNil,
		"truthy":  IsTruthy,
		"falsy":   IsFalsy,
		"empty":   IsEmpty,
		"success": IsSuccess,
		"failure": IsFailure,
		"present": IsPresent,
		"absent":  IsAbsent,
	}
}

// TypeIs lifts a named type-guard into a clause predicate. The name resolves
// against the dispatch's registry, so WithPredicates overrides apply.
func TypeIs(name string) Predicate {
	return func(_ context.Context, subject any, preds Predicates) (bool, error) {
		return preds.Check(name, subject), nil
	}
}

// Satisfies lifts a bare type-guard into a clause predicate.
func Satisfies(check TypeCheck) Predicate {
	return func(_ context.Context, subject any, _ Predicates) (bool, error) {
		return check(subject), nil
	}
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsNumber reports whether v has a numeric kind.
func IsNumber(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// IsBool reports whether v is a bool.
func IsBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// IsFunc reports whether v is a function.
func IsFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// IsArray reports whether v is a slice or array.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// IsMap reports whether v is a map.
func IsMap(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
}

// IsDate reports whether v is a time.Time or *time.Time.
func IsDate(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time:
		return true
	default:
		return false
	}
}

// IsRegexp reports whether v is a compiled regular expression.
func IsRegexp(v any) bool {
	_, ok := v.(*regexp.Regexp)
	return ok
}

// IsPending reports whether v is a pending computation.
func IsPending(v any) bool {
	_, ok := v.(future.Pending)
	return ok
}

// IsNil reports whether v is nil, including typed nils behind pointer,
// map, slice, channel, function, and interface values.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsFalsy reports whether v is nil, false, zero, or the empty string.
func IsFalsy(v any) bool {
	if IsNil(v) {
		return true
	}
	switch val := v.(type) {
	case bool:
		return !val
	case string:
		return val == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	default:
		return false
	}
}

// IsTruthy reports the negation of IsFalsy.
func IsTruthy(v any) bool {
	return !IsFalsy(v)
}

// IsEmpty reports whether v is nil, an empty string, or a zero-length
// collection.
func IsEmpty(v any) bool {
	if IsNil(v) {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() == 0
	default:
		return false
	}
}

// IsSuccess reports whether v is a Result carrying a success value.
// The check dispatches on the container's explicit variant discriminant.
func IsSuccess(v any) bool {
	c, ok := v.(result.Container)
	return ok && c.Variant() == result.VariantSuccess
}

// IsFailure reports whether v is a Result carrying an error value.
func IsFailure(v any) bool {
	c, ok := v.(result.Container)
	return ok && c.Variant() == result.VariantFailure
}

// IsPresent reports whether v is an Option carrying a value.
func IsPresent(v any) bool {
	c, ok := v.(option.Container)
	return ok && c.Variant() == option.VariantPresent
}

// IsAbsent reports whether v is an empty Option.
func IsAbsent(v any) bool {
	c, ok := v.(option.Container)
	return ok && c.Variant() == option.VariantAbsent
}
