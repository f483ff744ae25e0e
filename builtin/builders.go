package builtin

import (
	"context"
	"fmt"
	"log"
	"os"
	"reflect"
	"regexp"

	"github.com/ohler55/ojg/jp"

	"github.com/agentstation/matchbox"
	"github.com/agentstation/matchbox/script"
	"github.com/agentstation/matchbox/yaml"
)

// TypePredicateBuilder builds predicates that consult the matcher's named
// type-guard registry, so caller overrides from WithPredicates apply.
type TypePredicateBuilder struct {
	Verbose bool
}

// Metadata returns the predicate metadata.
func (b *TypePredicateBuilder) Metadata() PredicateMetadata {
	return PredicateMetadata{
		Type:        "type",
		Category:    "core",
		Description: "Matches when a named type-guard from the registry holds for the subject",
		ConfigSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"check": map[string]any{
					"type":        "string",
					"description": "Registry name of the type-guard (string, number, success, absent, ...)",
				},
			},
			"required": []string{"check"},
		},
		Examples: []Example{
			{
				Name:        "Match numbers",
				Description: "Commit when the subject is numeric",
				Config:      map[string]any{"check": "number"},
				Subject:     42,
				Matches:     true,
			},
			{
				Name:        "Match failure containers",
				Description: "Commit when the subject is a failed Result",
				Config:      map[string]any{"check": "failure"},
			},
		},
		Since: "1.0.0",
	}
}

// Build creates a type predicate from a definition.
func (b *TypePredicateBuilder) Build(def *yaml.ClauseDefinition) (matchbox.Predicate, error) {
	check, ok := def.Config["check"].(string)
	if !ok || check == "" {
		return nil, fmt.Errorf("check is required")
	}

	return func(_ context.Context, subject any, preds matchbox.Predicates) (bool, error) {
		matched := preds.Check(check, subject)
		if b.Verbose {
			log.Printf("[%s] type check %q: %v", def.Name, check, matched)
		}
		return matched, nil
	}, nil
}

// EqualsPredicateBuilder builds literal equality predicates.
type EqualsPredicateBuilder struct {
	Verbose bool
}

// Metadata returns the predicate metadata.
func (b *EqualsPredicateBuilder) Metadata() PredicateMetadata {
	return PredicateMetadata{
		Type:        "equals",
		Category:    "core",
		Description: "Matches when the subject equals a literal value",
		ConfigSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{
					"description": "Value to compare against",
				},
			},
			"required": []string{"value"},
		},
		Examples: []Example{
			{
				Name:    "Match a string",
				Config:  map[string]any{"value": "ping"},
				Subject: "ping",
				Matches: true,
			},
		},
		Since: "1.0.0",
	}
}

// Build creates an equals predicate from a definition.
func (b *EqualsPredicateBuilder) Build(def *yaml.ClauseDefinition) (matchbox.Predicate, error) {
	value, ok := def.Config["value"]
	if !ok {
		return nil, fmt.Errorf("value is required")
	}

	return func(_ context.Context, subject any, _ matchbox.Predicates) (bool, error) {
		matched := looseEqual(subject, value)
		if b.Verbose {
			log.Printf("[%s] equals %v: %v", def.Name, value, matched)
		}
		return matched, nil
	}, nil
}

// ComparePredicateBuilder builds numeric comparison predicates.
type ComparePredicateBuilder struct {
	Verbose bool
}

// Metadata returns the predicate metadata.
func (b *ComparePredicateBuilder) Metadata() PredicateMetadata {
	return PredicateMetadata{
		Type:        "compare",
		Category:    "core",
		Description: "Matches when a numeric subject satisfies a comparison",
		ConfigSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"op": map[string]any{
					"type": "string",
					"enum": []string{"lt", "le", "gt", "ge", "eq", "ne"},
				},
				"value": map[string]any{
					"type": "number",
				},
			},
			"required": []string{"op", "value"},
		},
		Examples: []Example{
			{
				Name:    "Greater than",
				Config:  map[string]any{"op": "gt", "value": 10},
				Subject: 42,
				Matches: true,
			},
		},
		Since: "1.0.0",
	}
}

// Build creates a compare predicate from a definition.
func (b *ComparePredicateBuilder) Build(def *yaml.ClauseDefinition) (matchbox.Predicate, error) {
	op, ok := def.Config["op"].(string)
	if !ok {
		return nil, fmt.Errorf("op is required")
	}
	threshold, ok := toFloat(def.Config["value"])
	if !ok {
		return nil, fmt.Errorf("value must be numeric")
	}

	return func(_ context.Context, subject any, _ matchbox.Predicates) (bool, error) {
		n, numeric := toFloat(subject)
		if !numeric {
			return false, nil
		}

		var matched bool
		switch op {
		case "lt":
			matched = n < threshold
		case "le":
			matched = n <= threshold
		case "gt":
			matched = n > threshold
		case "ge":
			matched = n >= threshold
		case "eq":
			matched = n == threshold
		case "ne":
			matched = n != threshold
		default:
			return false, fmt.Errorf("unknown comparison op %q", op)
		}

		if b.Verbose {
			log.Printf("[%s] compare %v %s %v: %v", def.Name, n, op, threshold, matched)
		}
		return matched, nil
	}, nil
}

// RegexPredicateBuilder builds regular-expression predicates over string
// subjects.
type RegexPredicateBuilder struct {
	Verbose bool
}

// Metadata returns the predicate metadata.
func (b *RegexPredicateBuilder) Metadata() PredicateMetadata {
	return PredicateMetadata{
		Type:        "regex",
		Category:    "core",
		Description: "Matches when a string subject matches a regular expression",
		ConfigSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pattern": map[string]any{
					"type":        "string",
					"description": "RE2 pattern",
				},
			},
			"required": []string{"pattern"},
		},
		Examples: []Example{
			{
				Name:    "Match an identifier",
				Config:  map[string]any{"pattern": "^[a-z]+-[0-9]+$"},
				Subject: "order-42",
				Matches: true,
			},
		},
		Since: "1.0.0",
	}
}

// Build creates a regex predicate from a definition.
func (b *RegexPredicateBuilder) Build(def *yaml.ClauseDefinition) (matchbox.Predicate, error) {
	pattern, ok := def.Config["pattern"].(string)
	if !ok || pattern == "" {
		return nil, fmt.Errorf("pattern is required")
	}

	// Compile at build time for validation.
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	return func(_ context.Context, subject any, _ matchbox.Predicates) (bool, error) {
		s, isString := subject.(string)
		if !isString {
			return false, nil
		}
		matched := re.MatchString(s)
		if b.Verbose {
			log.Printf("[%s] regex %q on %q: %v", def.Name, pattern, s, matched)
		}
		return matched, nil
	}, nil
}

// JSONPathPredicateBuilder builds predicates that query structured subjects
// with JSONPath expressions.
type JSONPathPredicateBuilder struct {
	Verbose bool
}

// Metadata returns the predicate metadata.
func (b *JSONPathPredicateBuilder) Metadata() PredicateMetadata {
	return PredicateMetadata{
		Type:        "jsonpath",
		Category:    "data",
		Description: "Matches when a JSONPath expression yields a result, optionally compared against a value",
		ConfigSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "JSONPath expression evaluated against the subject",
				},
				"equals": map[string]any{
					"description": "Optional value any path result must equal",
				},
			},
			"required": []string{"path"},
		},
		Examples: []Example{
			{
				Name:        "Field presence",
				Description: "Commit when the subject has a user id",
				Config:      map[string]any{"path": "$.user.id"},
				Subject:     map[string]any{"user": map[string]any{"id": 7}},
				Matches:     true,
			},
			{
				Name:        "Field equality",
				Description: "Commit when the status field equals error",
				Config:      map[string]any{"path": "$.status", "equals": "error"},
			},
		},
		Since: "1.0.0",
	}
}

// Build creates a jsonpath predicate from a definition.
func (b *JSONPathPredicateBuilder) Build(def *yaml.ClauseDefinition) (matchbox.Predicate, error) {
	pathStr, ok := def.Config["path"].(string)
	if !ok || pathStr == "" {
		return nil, fmt.Errorf("path is required")
	}

	// Parse the JSONPath expression at build time for validation.
	expr, err := jp.ParseString(pathStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression: %w", err)
	}

	equals, hasEquals := def.Config["equals"]

	return func(_ context.Context, subject any, _ matchbox.Predicates) (bool, error) {
		results := expr.Get(subject)
		if b.Verbose {
			log.Printf("[%s] JSONPath %q found %d matches", def.Name, pathStr, len(results))
		}

		if len(results) == 0 {
			return false, nil
		}
		if !hasEquals {
			return true, nil
		}
		for _, r := range results {
			if looseEqual(r, equals) {
				return true, nil
			}
		}
		return false, nil
	}, nil
}

// ScriptPredicateBuilder builds predicates from sandboxed Lua scripts
// exposing a match function.
type ScriptPredicateBuilder struct {
	Verbose bool
}

// Metadata returns the predicate metadata.
func (b *ScriptPredicateBuilder) Metadata() PredicateMetadata {
	return PredicateMetadata{
		Type:        "script",
		Category:    "script",
		Description: "Matches when a Lua script's match function returns true",
		ConfigSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"source": map[string]any{
					"type":        "string",
					"description": "Inline Lua source defining match(subject)",
				},
				"file": map[string]any{
					"type":        "string",
					"description": "Path to a Lua script defining match(subject)",
				},
			},
		},
		Examples: []Example{
			{
				Name:        "Inline script",
				Description: "Commit on subjects above a threshold",
				Config:      map[string]any{"source": "function match(s) return s > 10 end"},
				Subject:     42,
				Matches:     true,
			},
		},
		Since: "1.0.0",
	}
}

// Build creates a script predicate from a definition.
func (b *ScriptPredicateBuilder) Build(def *yaml.ClauseDefinition) (matchbox.Predicate, error) {
	source, _ := def.Config["source"].(string)
	file, _ := def.Config["file"].(string)

	switch {
	case source != "" && file != "":
		return nil, fmt.Errorf("source and file are mutually exclusive")
	case source == "" && file == "":
		return nil, fmt.Errorf("one of source or file is required")
	case file != "":
		content, err := os.ReadFile(file) //nolint:gosec // Path comes from a user-authored ruleset
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		source = string(content)
	}

	if err := script.Validate(source); err != nil {
		return nil, err
	}

	return func(ctx context.Context, subject any, _ matchbox.Predicates) (bool, error) {
		matched, err := script.EvalMatch(ctx, source, subject)
		if b.Verbose {
			log.Printf("[%s] script match: %v (err=%v)", def.Name, matched, err)
		}
		return matched, err
	}, nil
}

// BuildPathHandler compiles a JSONPath extraction handler: the outcome is
// the single path result, the full result slice when multiple, or nil when
// the path yields nothing.
func BuildPathHandler(def *yaml.HandlerDefinition) (matchbox.Handler, error) {
	expr, err := jp.ParseString(def.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression: %w", err)
	}

	return func(_ context.Context, subject any) (any, error) {
		results := expr.Get(subject)
		switch len(results) {
		case 0:
			return nil, nil
		case 1:
			return results[0], nil
		default:
			return results, nil
		}
	}, nil
}

// BuildScriptHandler compiles a Lua handler: the outcome is the script's
// handle(subject) result.
func BuildScriptHandler(def *yaml.HandlerDefinition) (matchbox.Handler, error) {
	source := def.Script
	return func(ctx context.Context, subject any) (any, error) {
		return script.EvalHandle(ctx, source, subject)
	}, nil
}

// looseEqual compares values with numeric coercion, so YAML and JSON
// decodings of the same number (int64, uint64, float64) compare equal.
func looseEqual(a, b any) bool {
	if an, aok := toFloat(a); aok {
		if bn, bok := toFloat(b); bok {
			return an == bn
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// toFloat coerces any numeric kind to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
