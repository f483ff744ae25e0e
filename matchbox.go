package matchbox

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/matchbox/future"
)

// Common errors.
var (
	// ErrNilClause is returned when a clause is registered with a nil
	// predicate or handler.
	ErrNilClause = errors.New("matchbox: nil predicate or handler")
)

// Predicate decides whether a clause matches the subject. It runs
// synchronously at registration time; registration order determines the
// winner among clauses whose predicates are all synchronous.
type Predicate func(ctx context.Context, subject any, preds Predicates) (bool, error)

// DeferredPredicate decides whether a clause matches by way of a pending
// computation. In parallel mode every deferred predicate is initiated
// immediately at registration and raced against the others; settlement
// order, not registration order, picks the winner.
type DeferredPredicate func(ctx context.Context, subject any, preds Predicates) *future.Value[bool]

// Handler produces the outcome for a committed clause. It is invoked with
// the subject exactly once, only after its clause's predicate is confirmed
// true.
type Handler func(ctx context.Context, subject any) (any, error)

// Logger provides structured logging.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}

// Matcher dispatches a single subject over registered clauses. It is not
// reusable across subjects: create a new Matcher per dispatch.
//
// State machine: UNCOMMITTED -> COMMITTED, exactly once, never back. The
// committed flag is written by at most one clause (first-writer-wins under
// the mutex); losing predicates run to completion and have their results
// discarded.
type Matcher struct {
	ctx     context.Context
	subject any
	opts    matcherOptions

	// group tracks every in-flight deferred predicate so the terminal
	// operations can wait on explicit task completion before deciding
	// no-match, instead of assuming a settlement deadline.
	group *errgroup.Group
	gctx  context.Context

	mu        sync.Mutex
	committed bool
	outcome   any
	failure   error
	deferred  bool
}

// New creates a Matcher for subject. The context is fixed for the life of
// the dispatch and passed to every predicate and handler.
func New(ctx context.Context, subject any, opts ...Option) *Matcher {
	options := getDefaults()
	for _, opt := range opts {
		opt(&options)
	}

	preds := BuiltinPredicates()
	for name, check := range options.overrides {
		preds[name] = check
	}
	options.predicates = preds

	g, gctx := errgroup.WithContext(ctx)
	return &Matcher{
		ctx:     ctx,
		subject: subject,
		opts:    options,
		group:   g,
		gctx:    gctx,
	}
}

// Subject returns the value under test.
func (m *Matcher) Subject() any {
	return m.subject
}

// When registers a clause with a synchronous predicate. The predicate is
// evaluated inline during registration; if it reports true and the Matcher
// is not yet committed, the clause commits immediately and its handler runs
// before When returns.
//
// A predicate error aborts the dispatch: no later clause is evaluated and
// the error surfaces from Default or OrElse.
func (m *Matcher) When(pred Predicate, handler Handler) *Matcher {
	if pred == nil || handler == nil {
		m.abort(ErrNilClause)
		return m
	}
	if m.skip() {
		return m
	}

	ok, err := pred(m.ctx, m.subject, m.opts.predicates)
	if err != nil {
		m.abort(err)
		return m
	}
	if ok {
		m.commit(handler)
	}
	return m
}

// WhenDeferred registers a clause whose predicate resolves via a pending
// computation.
//
// In parallel mode (the default) evaluation is initiated immediately and
// raced against all other deferred clauses; whichever settles true first
// commits the Matcher. Callers needing a deterministic winner must ensure at
// most one deferred predicate can be true.
//
// In sequential mode the clause settles fully, handler included, before
// WhenDeferred returns, so registration order stays deterministic.
func (m *Matcher) WhenDeferred(pred DeferredPredicate, handler Handler) *Matcher {
	if pred == nil || handler == nil {
		m.abort(ErrNilClause)
		return m
	}
	if m.skip() {
		return m
	}

	if m.opts.execution == Sequential {
		ok, err := pred(m.ctx, m.subject, m.opts.predicates).Await(m.ctx)
		if err != nil {
			m.abort(err)
			return m
		}
		if ok {
			m.commit(handler)
		}
		return m
	}

	m.mu.Lock()
	m.deferred = true
	m.mu.Unlock()

	f := pred(m.ctx, m.subject, m.opts.predicates)
	m.group.Go(func() error {
		ok, err := f.Await(m.gctx)
		if err != nil {
			return err
		}
		if ok {
			m.commit(handler)
		}
		return nil
	})
	return m
}

// Default resolves the dispatch. If a clause has committed, its outcome is
// returned; otherwise handler(subject) becomes the outcome and the Matcher
// transitions to COMMITTED, so the decision is terminal.
//
// When deferred clauses are outstanding, Default waits for every one of
// them to settle before deciding there was no match. A purely synchronous
// dispatch decides without waiting on anything.
func (m *Matcher) Default(handler Handler) (any, error) {
	if handler == nil {
		return nil, ErrNilClause
	}

	m.mu.Lock()
	deferred := m.deferred
	m.mu.Unlock()

	if deferred {
		if err := m.group.Wait(); err != nil {
			m.abort(err)
		}
	}

	m.mu.Lock()
	if m.failure != nil {
		err := m.failure
		m.mu.Unlock()
		return nil, err
	}
	if m.committed {
		out := m.outcome
		m.mu.Unlock()
		m.log("matcher resolved", "committed", true)
		return out, nil
	}
	m.mu.Unlock()

	m.commit(handler)
	m.log("matcher resolved", "committed", false)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	return m.outcome, nil
}

// OrElse resolves the dispatch like Default, substituting a literal value
// instead of invoking a handler when uncommitted.
func (m *Matcher) OrElse(fallback any) (any, error) {
	return m.Default(func(context.Context, any) (any, error) {
		return fallback, nil
	})
}

// DefaultFuture is Default exposed as a pending computation, for callers
// composing the decision into further asynchronous work.
func (m *Matcher) DefaultFuture(handler Handler) *future.Value[any] {
	return future.Go(func() (any, error) {
		return m.Default(handler)
	})
}

// OrElseFuture is OrElse exposed as a pending computation.
func (m *Matcher) OrElseFuture(fallback any) *future.Value[any] {
	return future.Go(func() (any, error) {
		return m.OrElse(fallback)
	})
}

// skip reports whether clause registration should be recorded as a no-op.
func (m *Matcher) skip() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed || m.failure != nil
}

// commit transitions the Matcher to COMMITTED and runs the handler. Only
// the first caller wins; everyone else returns without side effects.
func (m *Matcher) commit(handler Handler) {
	m.mu.Lock()
	if m.committed || m.failure != nil {
		m.mu.Unlock()
		return
	}
	m.committed = true
	m.mu.Unlock()

	m.log("clause committed")

	out, err := handler(m.ctx, m.subject)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failure = err
		return
	}
	m.outcome = out
}

// abort records the first dispatch error. Once a clause has committed the
// dispatch has concluded, so later errors from losing predicates are
// discarded.
func (m *Matcher) abort(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.committed || m.failure != nil {
		return
	}
	m.failure = err
}

func (m *Matcher) log(msg string, keysAndValues ...any) {
	if m.opts.logger != nil {
		m.opts.logger.Debug(m.ctx, msg, keysAndValues...)
	}
}
