package middleware_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agentstation/matchbox"
	"github.com/agentstation/matchbox/middleware"
)

func truePred(context.Context, any, matchbox.Predicates) (bool, error) {
	return true, nil
}

func echoHandler(_ context.Context, subject any) (any, error) {
	return subject, nil
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(_ context.Context, msg string, _ ...any) {
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Info(_ context.Context, msg string, _ ...any) {
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Error(_ context.Context, msg string, _ ...any) {
	l.messages = append(l.messages, msg)
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) middleware.PredicateMiddleware {
		return func(pred matchbox.Predicate) matchbox.Predicate {
			return func(ctx context.Context, subject any, preds matchbox.Predicates) (bool, error) {
				order = append(order, name)
				return pred(ctx, subject, preds)
			}
		}
	}

	pred := middleware.ChainPredicate(tag("outer"), tag("inner"))(truePred)
	if _, err := pred(context.Background(), 1, nil); err != nil {
		t.Fatalf("predicate error = %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("invocation order = %v, want [outer inner]", order)
	}
}

func TestApplyHandler(t *testing.T) {
	double := func(handler matchbox.Handler) matchbox.Handler {
		return func(ctx context.Context, subject any) (any, error) {
			out, err := handler(ctx, subject)
			if err != nil {
				return nil, err
			}
			return out.(int) * 2, nil
		}
	}

	h := middleware.ApplyHandler(echoHandler, double, double)
	out, err := h(context.Background(), 10)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if out != 40 {
		t.Errorf("handler = %v, want 40", out)
	}
}

func TestLoggingPredicate(t *testing.T) {
	logger := &recordingLogger{}

	pred := middleware.ApplyPredicate(truePred, middleware.LoggingPredicate("clause-a", logger))
	if _, err := pred(context.Background(), 1, nil); err != nil {
		t.Fatalf("predicate error = %v", err)
	}
	if len(logger.messages) != 2 {
		t.Errorf("logged %d messages, want 2", len(logger.messages))
	}
}

func TestLoggingHandlerError(t *testing.T) {
	logger := &recordingLogger{}
	wantErr := errors.New("boom")

	h := middleware.ApplyHandler(func(context.Context, any) (any, error) {
		return nil, wantErr
	}, middleware.LoggingHandler("clause-a", logger))

	if _, err := h(context.Background(), 1); !errors.Is(err, wantErr) {
		t.Fatalf("handler error = %v, want %v", err, wantErr)
	}
	if len(logger.messages) != 2 || logger.messages[1] != "handler failed" {
		t.Errorf("messages = %v, want failure logged", logger.messages)
	}
}

func TestTimingStats(t *testing.T) {
	stats := middleware.NewTimingStats()

	pred := middleware.ApplyPredicate(truePred, middleware.TimingPredicate("clause-a", stats))
	for i := 0; i < 3; i++ {
		if _, err := pred(context.Background(), 1, nil); err != nil {
			t.Fatalf("predicate error = %v", err)
		}
	}

	cs, ok := stats.Stats("clause-a")
	if !ok {
		t.Fatal("Stats() found no entry")
	}
	if cs.Count != 3 {
		t.Errorf("Count = %d, want 3", cs.Count)
	}

	if _, ok := stats.Stats("unknown"); ok {
		t.Error("Stats() found entry for unrecorded clause")
	}
}

func TestRetryHandler(t *testing.T) {
	attempts := 0
	flaky := func(context.Context, any) (any, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient")
		}
		return "ok", nil
	}

	h := middleware.ApplyHandler(flaky, middleware.RetryHandler(5, time.Millisecond))
	out, err := h(context.Background(), 1)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if out != "ok" || attempts != 3 {
		t.Errorf("handler = (%v, %d attempts), want (ok, 3)", out, attempts)
	}
}

func TestRetryHandlerExhausted(t *testing.T) {
	h := middleware.ApplyHandler(func(context.Context, any) (any, error) {
		return nil, errors.New("always")
	}, middleware.RetryHandler(2, time.Millisecond))

	if _, err := h(context.Background(), 1); err == nil {
		t.Error("handler succeeded after exhausting retries")
	}
}

func TestTimeoutHandler(t *testing.T) {
	slow := func(ctx context.Context, _ any) (any, error) {
		select {
		case <-time.After(time.Second):
			return "done", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	h := middleware.ApplyHandler(slow, middleware.TimeoutHandler(10*time.Millisecond))
	if _, err := h(context.Background(), 1); err == nil {
		t.Error("handler did not time out")
	}
}

func TestRecoverPredicate(t *testing.T) {
	panicking := func(context.Context, any, matchbox.Predicates) (bool, error) {
		panic("unexpected subject shape")
	}

	pred := middleware.ApplyPredicate(panicking, middleware.RecoverPredicate())
	matched, err := pred(context.Background(), 1, nil)
	if err == nil {
		t.Fatal("panic was not converted to an error")
	}
	if matched {
		t.Error("panicking predicate reported a match")
	}
}
