package yaml

import (
	"context"
	"fmt"

	"github.com/agentstation/matchbox"
	"github.com/agentstation/matchbox/future"
)

// PredicateBuilder compiles a clause definition into a predicate.
type PredicateBuilder func(def *ClauseDefinition) (matchbox.Predicate, error)

// HandlerBuilder compiles a handler definition into a handler.
type HandlerBuilder func(def *HandlerDefinition) (matchbox.Handler, error)

// Loader compiles ruleset definitions into live dispatches against the
// registered predicate and handler types.
type Loader struct {
	parser     *Parser
	predicates map[string]PredicateBuilder
	handlers   map[string]HandlerBuilder
}

// NewLoader creates a new ruleset loader.
func NewLoader() *Loader {
	return &Loader{
		parser:     NewParser(),
		predicates: make(map[string]PredicateBuilder),
		handlers:   make(map[string]HandlerBuilder),
	}
}

// RegisterPredicateType registers a builder for a predicate type.
func (l *Loader) RegisterPredicateType(predicateType string, builder PredicateBuilder) {
	l.predicates[predicateType] = builder
}

// RegisterHandlerType registers a builder for a handler form ("path" or
// "script"; literal verdicts are handled natively).
func (l *Loader) RegisterHandlerType(handlerType string, builder HandlerBuilder) {
	l.handlers[handlerType] = builder
}

// RunFile parses, validates, and dispatches a ruleset file against subject.
func (l *Loader) RunFile(ctx context.Context, filename string, subject any, opts ...matchbox.Option) (any, error) {
	def, err := l.parser.ParseFile(filename)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}
	return l.Run(ctx, def, subject, opts...)
}

// RunString parses, validates, and dispatches a ruleset from a YAML string.
func (l *Loader) RunString(ctx context.Context, yamlStr string, subject any, opts ...matchbox.Option) (any, error) {
	def, err := l.parser.ParseString(yamlStr)
	if err != nil {
		return nil, fmt.Errorf("parse string: %w", err)
	}
	return l.Run(ctx, def, subject, opts...)
}

// Run dispatches a parsed definition against subject: clauses register in
// order on a fresh Matcher and the definition's default verdict resolves an
// unmatched dispatch.
func (l *Loader) Run(ctx context.Context, def *RulesetDefinition, subject any, opts ...matchbox.Option) (any, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset: %w", err)
	}

	if def.Execution != "" {
		opts = append(opts, matchbox.WithExecution(matchbox.ParseExecutionMode(def.Execution)))
	}

	m := matchbox.New(ctx, subject, opts...)

	for i := range def.Clauses {
		clause := &def.Clauses[i]

		builder, ok := l.predicates[clause.Predicate]
		if !ok {
			return nil, fmt.Errorf("unknown predicate type %q in clause %s", clause.Predicate, clause.Name)
		}

		pred, err := builder(clause)
		if err != nil {
			return nil, fmt.Errorf("build clause %s: %w", clause.Name, err)
		}

		handler, err := l.buildHandler(&clause.Handler)
		if err != nil {
			return nil, fmt.Errorf("build clause %s handler: %w", clause.Name, err)
		}

		if clause.Deferred {
			m.WhenDeferred(deferPredicate(pred), handler)
		} else {
			m.When(pred, handler)
		}
	}

	var fallback any
	if def.Default != nil {
		fallback = def.Default.Verdict
	}
	return m.OrElse(fallback)
}

// buildHandler resolves the handler form for a clause. An empty definition
// passes the subject through unchanged.
func (l *Loader) buildHandler(def *HandlerDefinition) (matchbox.Handler, error) {
	switch {
	case def.Path != "":
		builder, ok := l.handlers["path"]
		if !ok {
			return nil, fmt.Errorf("no handler registered for form %q", "path")
		}
		return builder(def)
	case def.Script != "":
		builder, ok := l.handlers["script"]
		if !ok {
			return nil, fmt.Errorf("no handler registered for form %q", "script")
		}
		return builder(def)
	case def.Verdict != nil:
		verdict := def.Verdict
		return func(context.Context, any) (any, error) {
			return verdict, nil
		}, nil
	default:
		return func(_ context.Context, subject any) (any, error) {
			return subject, nil
		}, nil
	}
}

// deferPredicate lifts a synchronous predicate into a pending computation
// so a YAML clause marked deferred joins the parallel settlement race.
func deferPredicate(pred matchbox.Predicate) matchbox.DeferredPredicate {
	return func(ctx context.Context, subject any, preds matchbox.Predicates) *future.Value[bool] {
		return future.Go(func() (bool, error) {
			return pred(ctx, subject, preds)
		})
	}
}
