// Package yaml provides YAML-based ruleset definitions for matchbox.
//
// A ruleset declares an ordered list of clauses, each naming a registered
// predicate type with its configuration and a handler producing the clause's
// outcome, plus an optional default verdict for when no clause matches.
package yaml

import (
	"fmt"
)

// RulesetDefinition represents a complete ruleset defined in YAML.
type RulesetDefinition struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Version     string             `yaml:"version,omitempty"`
	Execution   string             `yaml:"execution,omitempty"`
	Metadata    map[string]any     `yaml:"metadata,omitempty"`
	Clauses     []ClauseDefinition `yaml:"clauses"`
	Default     *VerdictDefinition `yaml:"default,omitempty"`
}

// ClauseDefinition represents one (predicate, handler) clause in YAML.
type ClauseDefinition struct {
	Name        string            `yaml:"name"`
	Predicate   string            `yaml:"predicate"`
	Description string            `yaml:"description,omitempty"`
	Config      map[string]any    `yaml:"config,omitempty"`
	Deferred    bool              `yaml:"deferred,omitempty"`
	Handler     HandlerDefinition `yaml:"handler,omitempty"`
}

// HandlerDefinition represents a clause's handler. Exactly one field
// should be set; an empty handler passes the subject through unchanged.
type HandlerDefinition struct {
	// Verdict is a literal outcome value.
	Verdict any `yaml:"verdict,omitempty"`

	// Path extracts the outcome from the subject with a JSONPath
	// expression.
	Path string `yaml:"path,omitempty"`

	// Script produces the outcome from a Lua handle function.
	Script string `yaml:"script,omitempty"`
}

// VerdictDefinition represents the fallback outcome for an unmatched
// dispatch.
type VerdictDefinition struct {
	Verdict any `yaml:"verdict"`
}

// Validate checks if the ruleset definition is valid.
func (rd *RulesetDefinition) Validate() error {
	if rd.Name == "" {
		return fmt.Errorf("ruleset name is required")
	}
	if len(rd.Clauses) == 0 {
		return fmt.Errorf("at least one clause is required")
	}

	switch rd.Execution {
	case "", "parallel", "sequential":
	default:
		return fmt.Errorf("execution must be parallel or sequential, got %q", rd.Execution)
	}

	seen := make(map[string]bool)
	for i, clause := range rd.Clauses {
		if err := clause.Validate(); err != nil {
			return fmt.Errorf("clause %d: %w", i, err)
		}
		if seen[clause.Name] {
			return fmt.Errorf("duplicate clause name %q", clause.Name)
		}
		seen[clause.Name] = true
	}

	return nil
}

// Validate checks if the clause definition is valid.
func (cd *ClauseDefinition) Validate() error {
	if cd.Name == "" {
		return fmt.Errorf("clause name is required")
	}
	if cd.Predicate == "" {
		return fmt.Errorf("clause predicate is required for clause %s", cd.Name)
	}
	return cd.Handler.Validate()
}

// Validate checks that at most one handler form is set.
func (hd *HandlerDefinition) Validate() error {
	forms := 0
	if hd.Verdict != nil {
		forms++
	}
	if hd.Path != "" {
		forms++
	}
	if hd.Script != "" {
		forms++
	}
	if forms > 1 {
		return fmt.Errorf("handler must set at most one of verdict, path, script")
	}
	return nil
}
