// Package script provides sandboxed Lua predicates and handlers for the
// matching engine.
//
// A script exposes a `match(subject)` function returning a boolean and may
// expose a `handle(subject)` function producing the outcome for a committed
// clause. Scripts run in a restricted environment: no file, process, or
// environment access.
package script

import (
	"context"
	"fmt"

	"github.com/Shopify/go-lua"
)

// EvalMatch executes a script's match function against the subject and
// returns its boolean verdict. A script without a match function is an
// error.
func EvalMatch(ctx context.Context, source string, subject any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l := newState(source, subject)
	if err := lua.DoString(l, source); err != nil {
		return false, fmt.Errorf("script error: %w", err)
	}

	l.Global("match")
	if l.TypeOf(-1) != lua.TypeFunction {
		l.Pop(1)
		return false, fmt.Errorf("script has no match function")
	}

	pushValue(l, subject)
	if err := l.ProtectedCall(1, 1, 0); err != nil {
		return false, fmt.Errorf("match error: %w", err)
	}

	verdict := l.ToBoolean(-1)
	l.Pop(1)
	return verdict, nil
}

// EvalHandle executes a script's handle function against the subject and
// returns its result. When the script defines no handle function the
// subject passes through unchanged.
func EvalHandle(ctx context.Context, source string, subject any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := newState(source, subject)
	if err := lua.DoString(l, source); err != nil {
		return nil, fmt.Errorf("script error: %w", err)
	}

	l.Global("handle")
	if l.TypeOf(-1) != lua.TypeFunction {
		l.Pop(1)
		return subject, nil
	}

	pushValue(l, subject)
	if err := l.ProtectedCall(1, 1, 0); err != nil {
		return nil, fmt.Errorf("handle error: %w", err)
	}

	out := pullValue(l, -1)
	l.Pop(1)
	return out, nil
}

// Validate loads a script without dispatching it and checks that the
// required match function is defined.
func Validate(source string) error {
	l := lua.NewState()
	setupSandbox(l)

	if err := lua.LoadString(l, source); err != nil {
		return fmt.Errorf("script validation failed: %w", err)
	}
	l.Pop(1)

	if err := lua.DoString(l, source); err != nil {
		return fmt.Errorf("script execution failed: %w", err)
	}

	l.Global("match")
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeFunction {
		return fmt.Errorf("required function 'match' not found")
	}
	return nil
}

func newState(source string, subject any) *lua.State {
	l := lua.NewState()
	setupSandbox(l)

	pushValue(l, subject)
	l.SetGlobal("subject")
	return l
}
