// Package middleware provides predicate and handler wrappers for
// cross-cutting concerns like logging, timing, retries, and timeouts.
package middleware

import "github.com/agentstation/matchbox"

// PredicateMiddleware modifies predicate behavior.
type PredicateMiddleware func(matchbox.Predicate) matchbox.Predicate

// HandlerMiddleware modifies handler behavior.
type HandlerMiddleware func(matchbox.Handler) matchbox.Handler

// ChainPredicate combines multiple predicate middlewares into one.
// Middlewares are applied in reverse order (like function composition).
func ChainPredicate(middlewares ...PredicateMiddleware) PredicateMiddleware {
	return func(pred matchbox.Predicate) matchbox.Predicate {
		for i := len(middlewares) - 1; i >= 0; i-- {
			pred = middlewares[i](pred)
		}
		return pred
	}
}

// ChainHandler combines multiple handler middlewares into one.
func ChainHandler(middlewares ...HandlerMiddleware) HandlerMiddleware {
	return func(handler matchbox.Handler) matchbox.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// ApplyPredicate applies middleware to a predicate.
func ApplyPredicate(pred matchbox.Predicate, middlewares ...PredicateMiddleware) matchbox.Predicate {
	for _, mw := range middlewares {
		pred = mw(pred)
	}
	return pred
}

// ApplyHandler applies middleware to a handler.
func ApplyHandler(handler matchbox.Handler, middlewares ...HandlerMiddleware) matchbox.Handler {
	for _, mw := range middlewares {
		handler = mw(handler)
	}
	return handler
}
