package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/matchbox"
)

// LoggingPredicate adds structured logging to predicate evaluation.
func LoggingPredicate(name string, logger matchbox.Logger) PredicateMiddleware {
	return func(pred matchbox.Predicate) matchbox.Predicate {
		return func(ctx context.Context, subject any, preds matchbox.Predicates) (bool, error) {
			logger.Debug(ctx, "predicate starting", "clause", name, "subject_type", fmt.Sprintf("%T", subject))
			start := time.Now()

			matched, err := pred(ctx, subject, preds)

			if err != nil {
				logger.Error(ctx, "predicate failed",
					"clause", name,
					"duration", time.Since(start),
					"error", err)
			} else {
				logger.Debug(ctx, "predicate completed",
					"clause", name,
					"duration", time.Since(start),
					"matched", matched)
			}

			return matched, err
		}
	}
}

// LoggingHandler adds structured logging to handler dispatch.
func LoggingHandler(name string, logger matchbox.Logger) HandlerMiddleware {
	return func(handler matchbox.Handler) matchbox.Handler {
		return func(ctx context.Context, subject any) (any, error) {
			logger.Info(ctx, "handler starting", "clause", name)
			start := time.Now()

			outcome, err := handler(ctx, subject)

			if err != nil {
				logger.Error(ctx, "handler failed",
					"clause", name,
					"duration", time.Since(start),
					"error", err)
			} else {
				logger.Info(ctx, "handler completed",
					"clause", name,
					"duration", time.Since(start),
					"outcome_type", fmt.Sprintf("%T", outcome))
			}

			return outcome, err
		}
	}
}
