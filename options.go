package matchbox

// ExecutionMode selects how deferred clause predicates are scheduled.
type ExecutionMode int

const (
	// Parallel initiates every deferred predicate immediately at
	// registration and races their settlements. This is the default:
	// throughput at the cost of result determinism when two or more
	// deferred predicates can both be true.
	Parallel ExecutionMode = iota

	// Sequential settles each clause fully, handler included, before the
	// next clause registers. Deterministic by registration order.
	Sequential
)

// String returns the mode name.
func (m ExecutionMode) String() string {
	if m == Sequential {
		return "sequential"
	}
	return "parallel"
}

// ParseExecutionMode converts a mode name into an ExecutionMode.
// Unrecognized names fall back to Parallel.
func ParseExecutionMode(s string) ExecutionMode {
	if s == "sequential" {
		return Sequential
	}
	return Parallel
}

// matcherOptions holds configuration for a Matcher.
type matcherOptions struct {
	execution  ExecutionMode
	overrides  map[string]TypeCheck
	predicates Predicates
	logger     Logger
}

// Option configures a Matcher.
type Option func(*matcherOptions)

// WithExecution selects the execution mode.
func WithExecution(mode ExecutionMode) Option {
	return func(o *matcherOptions) {
		o.execution = mode
	}
}

// WithPredicates merges a supplemental mapping over the built-in predicate
// registry. On a name collision the caller's check wins.
func WithPredicates(checks map[string]TypeCheck) Option {
	return func(o *matcherOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]TypeCheck, len(checks))
		}
		for name, check := range checks {
			o.overrides[name] = check
		}
	}
}

// WithLogger adds debug logging to the dispatch.
func WithLogger(logger Logger) Option {
	return func(o *matcherOptions) {
		o.logger = logger
	}
}
