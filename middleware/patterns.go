package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/matchbox"
)

// RetryHandler adds retry logic with linear backoff to a handler.
func RetryHandler(maxAttempts int, backoff time.Duration) HandlerMiddleware {
	return func(handler matchbox.Handler) matchbox.Handler {
		return func(ctx context.Context, subject any) (any, error) {
			var lastErr error
			for attempt := 0; attempt < maxAttempts; attempt++ {
				if attempt > 0 {
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					case <-time.After(backoff * time.Duration(attempt)):
					}
				}

				outcome, err := handler(ctx, subject)
				if err == nil {
					return outcome, nil
				}
				lastErr = err
			}
			return nil, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
		}
	}
}

// TimeoutPredicate bounds predicate evaluation time.
func TimeoutPredicate(duration time.Duration) PredicateMiddleware {
	return func(pred matchbox.Predicate) matchbox.Predicate {
		return func(ctx context.Context, subject any, preds matchbox.Predicates) (bool, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, duration)
			defer cancel()

			done := make(chan struct{})
			var matched bool
			var err error

			go func() {
				matched, err = pred(timeoutCtx, subject, preds)
				close(done)
			}()

			select {
			case <-done:
				return matched, err
			case <-timeoutCtx.Done():
				return false, fmt.Errorf("predicate timed out after %v", duration)
			}
		}
	}
}

// TimeoutHandler bounds handler dispatch time.
func TimeoutHandler(duration time.Duration) HandlerMiddleware {
	return func(handler matchbox.Handler) matchbox.Handler {
		return func(ctx context.Context, subject any) (any, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, duration)
			defer cancel()

			done := make(chan struct{})
			var outcome any
			var err error

			go func() {
				outcome, err = handler(timeoutCtx, subject)
				close(done)
			}()

			select {
			case <-done:
				return outcome, err
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("handler timed out after %v", duration)
			}
		}
	}
}

// RecoverPredicate converts predicate panics into errors so one clause
// cannot take down a parallel dispatch.
func RecoverPredicate() PredicateMiddleware {
	return func(pred matchbox.Predicate) matchbox.Predicate {
		return func(ctx context.Context, subject any, preds matchbox.Predicates) (matched bool, err error) {
			defer func() {
				if r := recover(); r != nil {
					matched = false
					err = fmt.Errorf("predicate panicked: %v", r)
				}
			}()
			return pred(ctx, subject, preds)
		}
	}
}
