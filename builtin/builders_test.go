package builtin_test

import (
	"context"
	"testing"

	"github.com/agentstation/matchbox/builtin"
	"github.com/agentstation/matchbox/yaml"
)

func newLoader() *yaml.Loader {
	loader := yaml.NewLoader()
	builtin.RegisterAll(loader, false)
	return loader
}

func run(t *testing.T, ruleset string, subject any) any {
	t.Helper()
	got, err := newLoader().RunString(context.Background(), ruleset, subject)
	if err != nil {
		t.Fatalf("RunString() error = %v", err)
	}
	return got
}

func TestTypePredicate(t *testing.T) {
	ruleset := `
name: by-type
clauses:
  - name: strings
    predicate: type
    config:
      check: string
    handler:
      verdict: text
  - name: numbers
    predicate: type
    config:
      check: number
    handler:
      verdict: numeric
default:
  verdict: unknown
`
	tests := []struct {
		name    string
		subject any
		want    any
	}{
		{"string subject", "hi", "text"},
		{"number subject", 42, "numeric"},
		{"unmatched subject", true, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, ruleset, tt.subject); got != tt.want {
				t.Errorf("verdict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypePredicateMissingCheck(t *testing.T) {
	ruleset := `
name: bad
clauses:
  - name: c
    predicate: type
    config: {}
`
	if _, err := newLoader().RunString(context.Background(), ruleset, 1); err == nil {
		t.Error("RunString() accepted type clause without check")
	}
}

func TestEqualsPredicate(t *testing.T) {
	ruleset := `
name: by-value
clauses:
  - name: answer
    predicate: equals
    config:
      value: 42
    handler:
      verdict: answer
default:
  verdict: other
`
	// Numeric coercion: the YAML 42 and the Go int 42 compare equal even if
	// decoded as different integer widths.
	if got := run(t, ruleset, 42); got != "answer" {
		t.Errorf("verdict = %v, want answer", got)
	}
	if got := run(t, ruleset, 41); got != "other" {
		t.Errorf("verdict = %v, want other", got)
	}

	strings := `
name: by-string
clauses:
  - name: ping
    predicate: equals
    config:
      value: ping
    handler:
      verdict: pong
default:
  verdict: other
`
	if got := run(t, strings, "ping"); got != "pong" {
		t.Errorf("verdict = %v, want pong", got)
	}
}

func TestComparePredicate(t *testing.T) {
	ruleset := `
name: thresholds
clauses:
  - name: high
    predicate: compare
    config:
      op: gt
      value: 100
    handler:
      verdict: high
  - name: low
    predicate: compare
    config:
      op: le
      value: 10
    handler:
      verdict: low
default:
  verdict: mid
`
	tests := []struct {
		name    string
		subject any
		want    any
	}{
		{"above upper bound", 150, "high"},
		{"below lower bound", 3, "low"},
		{"between bounds", 50, "mid"},
		{"float subject", 7.5, "low"},
		{"non-numeric subject", "x", "mid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, ruleset, tt.subject); got != tt.want {
				t.Errorf("verdict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComparePredicateBadOp(t *testing.T) {
	ruleset := `
name: bad
clauses:
  - name: c
    predicate: compare
    config:
      op: between
      value: 1
`
	if _, err := newLoader().RunString(context.Background(), ruleset, 1); err == nil {
		t.Error("RunString() accepted unknown comparison op")
	}
}

func TestRegexPredicate(t *testing.T) {
	ruleset := `
name: identifiers
clauses:
  - name: order-ids
    predicate: regex
    config:
      pattern: "^order-[0-9]+$"
    handler:
      verdict: order
default:
  verdict: other
`
	if got := run(t, ruleset, "order-42"); got != "order" {
		t.Errorf("verdict = %v, want order", got)
	}
	if got := run(t, ruleset, "invoice-42"); got != "other" {
		t.Errorf("verdict = %v, want other", got)
	}
	// Non-string subjects never match.
	if got := run(t, ruleset, 42); got != "other" {
		t.Errorf("verdict = %v, want other", got)
	}
}

func TestRegexPredicateInvalidPattern(t *testing.T) {
	ruleset := `
name: bad
clauses:
  - name: c
    predicate: regex
    config:
      pattern: "["
`
	if _, err := newLoader().RunString(context.Background(), ruleset, "x"); err == nil {
		t.Error("RunString() accepted invalid pattern")
	}
}

func TestJSONPathPredicate(t *testing.T) {
	ruleset := `
name: events
clauses:
  - name: errors
    predicate: jsonpath
    config:
      path: "$.status"
      equals: error
    handler:
      verdict: alert
  - name: has-user
    predicate: jsonpath
    config:
      path: "$.user.id"
    handler:
      verdict: known
default:
  verdict: ignore
`
	alert := map[string]any{"status": "error"}
	if got := run(t, ruleset, alert); got != "alert" {
		t.Errorf("verdict = %v, want alert", got)
	}

	known := map[string]any{"user": map[string]any{"id": 7}}
	if got := run(t, ruleset, known); got != "known" {
		t.Errorf("verdict = %v, want known", got)
	}

	if got := run(t, ruleset, map[string]any{"other": 1}); got != "ignore" {
		t.Errorf("verdict = %v, want ignore", got)
	}
}

func TestScriptPredicate(t *testing.T) {
	ruleset := `
name: scripted
clauses:
  - name: big-numbers
    predicate: script
    config:
      source: "function match(s) return type(s) == 'number' and s > 10 end"
    handler:
      verdict: big
default:
  verdict: small
`
	if got := run(t, ruleset, 42); got != "big" {
		t.Errorf("verdict = %v, want big", got)
	}
	if got := run(t, ruleset, 3); got != "small" {
		t.Errorf("verdict = %v, want small", got)
	}
}

func TestScriptPredicateRequiresMatch(t *testing.T) {
	ruleset := `
name: bad
clauses:
  - name: c
    predicate: script
    config:
      source: "function other() return true end"
`
	if _, err := newLoader().RunString(context.Background(), ruleset, 1); err == nil {
		t.Error("RunString() accepted script without match function")
	}
}

func TestPathHandler(t *testing.T) {
	ruleset := `
name: extract
clauses:
  - name: orders
    predicate: jsonpath
    config:
      path: "$.order"
    handler:
      path: "$.order.total"
default:
  verdict: none
`
	subject := map[string]any{"order": map[string]any{"total": 99.5}}
	if got := run(t, ruleset, subject); got != 99.5 {
		t.Errorf("verdict = %v, want 99.5", got)
	}
}

func TestPathHandlerNoResults(t *testing.T) {
	ruleset := `
name: extract
clauses:
  - name: always
    predicate: type
    config:
      check: map
    handler:
      path: "$.missing"
`
	if got := run(t, ruleset, map[string]any{"present": 1}); got != nil {
		t.Errorf("verdict = %v, want nil", got)
	}
}

func TestScriptHandler(t *testing.T) {
	ruleset := `
name: scripted-handler
clauses:
  - name: numbers
    predicate: type
    config:
      check: number
    handler:
      script: "function match(s) return true end function handle(s) return s * 2 end"
default:
  verdict: none
`
	got := run(t, ruleset, 21)
	// Lua numbers round-trip as float64.
	if got != 42.0 {
		t.Errorf("verdict = %v, want 42", got)
	}
}

func TestRegistryMetadata(t *testing.T) {
	registry := builtin.RegisterAll(yaml.NewLoader(), false)

	for _, want := range []string{"type", "equals", "compare", "regex", "jsonpath", "script"} {
		builder, ok := registry.Get(want)
		if !ok {
			t.Errorf("Get(%q) not found", want)
			continue
		}
		meta := builder.Metadata()
		if meta.Type != want {
			t.Errorf("Metadata().Type = %q, want %q", meta.Type, want)
		}
		if meta.Description == "" {
			t.Errorf("Metadata().Description empty for %q", want)
		}
	}

	if len(registry.All()) != 6 {
		t.Errorf("All() = %d builders, want 6", len(registry.All()))
	}
}
