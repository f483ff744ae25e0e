package matchbox

import "sync"

// globalDefaults holds the default configuration for all matchers.
var globalDefaults = &matcherDefaults{
	execution: Parallel,
}

// matcherDefaults contains default configuration applied to new matchers.
type matcherDefaults struct {
	mu sync.RWMutex

	execution ExecutionMode
	overrides map[string]TypeCheck
	logger    Logger
}

// SetDefaults configures process-wide defaults for all matchers created
// afterwards. Options passed to New override these per matcher.
func SetDefaults(opts ...Option) {
	globalDefaults.mu.Lock()
	defer globalDefaults.mu.Unlock()

	tempOpts := matcherOptions{
		execution: globalDefaults.execution,
		overrides: cloneChecks(globalDefaults.overrides),
		logger:    globalDefaults.logger,
	}

	for _, opt := range opts {
		opt(&tempOpts)
	}

	globalDefaults.execution = tempOpts.execution
	globalDefaults.overrides = tempOpts.overrides
	globalDefaults.logger = tempOpts.logger
}

// ResetDefaults restores the initial defaults.
func ResetDefaults() {
	globalDefaults.mu.Lock()
	defer globalDefaults.mu.Unlock()

	globalDefaults.execution = Parallel
	globalDefaults.overrides = nil
	globalDefaults.logger = nil
}

// getDefaults returns a copy of the current global defaults.
func getDefaults() matcherOptions {
	globalDefaults.mu.RLock()
	defer globalDefaults.mu.RUnlock()

	return matcherOptions{
		execution: globalDefaults.execution,
		overrides: cloneChecks(globalDefaults.overrides),
		logger:    globalDefaults.logger,
	}
}

func cloneChecks(checks map[string]TypeCheck) map[string]TypeCheck {
	if checks == nil {
		return nil
	}
	out := make(map[string]TypeCheck, len(checks))
	for name, check := range checks {
		out[name] = check
	}
	return out
}
