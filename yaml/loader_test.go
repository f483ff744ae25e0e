package yaml_test

import (
	"context"
	"errors"
	"testing"

	"github.com/agentstation/matchbox"
	"github.com/agentstation/matchbox/yaml"
)

// newTestLoader registers a minimal "check" predicate type that consults the
// dispatch's type-guard registry.
func newTestLoader() *yaml.Loader {
	loader := yaml.NewLoader()
	loader.RegisterPredicateType("check", func(def *yaml.ClauseDefinition) (matchbox.Predicate, error) {
		name, ok := def.Config["name"].(string)
		if !ok {
			return nil, errors.New("name is required")
		}
		return matchbox.TypeIs(name), nil
	})
	return loader
}

const loaderRuleset = `
name: classify
clauses:
  - name: strings
    predicate: check
    config:
      name: string
    handler:
      verdict: text
  - name: numbers
    predicate: check
    config:
      name: number
    handler:
      verdict: numeric
default:
  verdict: unknown
`

func TestLoaderRunString(t *testing.T) {
	tests := []struct {
		name    string
		subject any
		want    any
	}{
		{"number routes to numeric", 42, "numeric"},
		{"string routes to text", "hi", "text"},
		{"unmatched falls to default", true, "unknown"},
	}

	loader := newTestLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loader.RunString(context.Background(), loaderRuleset, tt.subject)
			if err != nil {
				t.Fatalf("RunString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RunString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoaderDeferredClause(t *testing.T) {
	ruleset := `
name: deferred
clauses:
  - name: numbers
    predicate: check
    deferred: true
    config:
      name: number
    handler:
      verdict: numeric
default:
  verdict: unknown
`
	got, err := newTestLoader().RunString(context.Background(), ruleset, 7)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	if got != "numeric" {
		t.Errorf("RunString() = %v, want numeric", got)
	}
}

func TestLoaderSubjectPassthroughHandler(t *testing.T) {
	ruleset := `
name: passthrough
clauses:
  - name: numbers
    predicate: check
    config:
      name: number
`
	got, err := newTestLoader().RunString(context.Background(), ruleset, 7)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	if got != 7 {
		t.Errorf("RunString() = %v, want subject 7", got)
	}
}

func TestLoaderNoDefaultResolvesNil(t *testing.T) {
	ruleset := `
name: no-default
clauses:
  - name: strings
    predicate: check
    config:
      name: string
    handler:
      verdict: text
`
	got, err := newTestLoader().RunString(context.Background(), ruleset, 42)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	if got != nil {
		t.Errorf("RunString() = %v, want nil", got)
	}
}

func TestLoaderUnknownPredicateType(t *testing.T) {
	ruleset := `
name: bad
clauses:
  - name: c
    predicate: nonexistent
`
	if _, err := newTestLoader().RunString(context.Background(), ruleset, 1); err == nil {
		t.Error("RunString() accepted unknown predicate type")
	}
}

func TestLoaderInvalidRuleset(t *testing.T) {
	ruleset := `
name: ""
clauses:
  - name: c
    predicate: check
`
	if _, err := newTestLoader().RunString(context.Background(), ruleset, 1); err == nil {
		t.Error("RunString() accepted ruleset without a name")
	}
}

func TestLoaderSequentialExecution(t *testing.T) {
	ruleset := `
name: seq
execution: sequential
clauses:
  - name: numbers
    predicate: check
    deferred: true
    config:
      name: number
    handler:
      verdict: first
  - name: truthy
    predicate: check
    deferred: true
    config:
      name: truthy
    handler:
      verdict: second
default:
  verdict: none
`
	// Both clauses match; sequential mode guarantees registration order wins.
	got, err := newTestLoader().RunString(context.Background(), ruleset, 42)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	if got != "first" {
		t.Errorf("RunString() = %v, want first", got)
	}
}

func TestLoaderMissingHandlerRegistration(t *testing.T) {
	ruleset := `
name: path-handler
clauses:
  - name: c
    predicate: check
    config:
      name: map
    handler:
      path: $.value
`
	// No "path" handler builder registered on this loader.
	if _, err := newTestLoader().RunString(context.Background(), ruleset, map[string]any{"value": 1}); err == nil {
		t.Error("RunString() accepted unregistered handler form")
	}
}
