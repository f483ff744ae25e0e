/*
Package matchbox provides a runtime pattern-matching engine that dispatches
arbitrary values over predicate clauses, including predicates that resolve
asynchronously.

Key features:
  - Fluent clause registration with one-shot commitment
  - Synchronous and deferred (pending-computation) predicates
  - Named type-guard registry with caller overrides
  - Functional options for configuration
  - Result and Option containers for explicit success and presence states

Basic usage:

	// Dispatch a value over ordered clauses
	out, err := matchbox.New(ctx, 42).
		When(matchbox.TypeIs("string"), func(ctx context.Context, s any) (any, error) {
			return "text: " + s.(string), nil
		}).
		When(matchbox.TypeIs("number"), func(ctx context.Context, s any) (any, error) {
			return s.(int) * 2, nil
		}).
		OrElse("no match") // out == 84

Deferred predicates:

	// Clauses backed by pending computations race to settle; the first
	// truthy settlement commits the matcher.
	out, err := matchbox.New(ctx, payload).
		WhenDeferred(checkRemote, handleRemote).
		WhenDeferred(checkCache, handleCache).
		Default(handleMiss)

Algebraic containers:

	r := result.Success[int, string](2)
	doubled := result.Map(r, func(v int) int { return v * 2 })

	o := option.Present("hello")
	length := option.Map(o, func(s string) int { return len(s) })

YAML rulesets:

	loader := yaml.NewLoader()
	builtin.RegisterAll(loader, false)
	verdict, err := loader.RunFile(ctx, "ruleset.yaml", subject)
*/
package matchbox
