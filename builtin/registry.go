// Package builtin provides the named predicate builders available to YAML
// rulesets: type-guard checks, equality and comparison, regular expressions,
// JSONPath queries, and sandboxed Lua scripts.
package builtin

import (
	"fmt"

	"github.com/agentstation/matchbox"
	"github.com/agentstation/matchbox/yaml"
)

// PredicateBuilder creates predicates and provides metadata.
type PredicateBuilder interface {
	Metadata() PredicateMetadata
	Build(def *yaml.ClauseDefinition) (matchbox.Predicate, error)
}

// Registry manages all built-in predicate builders.
type Registry struct {
	builders map[string]PredicateBuilder
}

// NewRegistry creates a new predicate registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]PredicateBuilder),
	}
}

// Register adds a predicate builder.
func (r *Registry) Register(builder PredicateBuilder) {
	meta := builder.Metadata()
	r.builders[meta.Type] = builder
}

// Get returns a builder by type.
func (r *Registry) Get(predicateType string) (PredicateBuilder, bool) {
	builder, exists := r.builders[predicateType]
	return builder, exists
}

// All returns all registered builders.
func (r *Registry) All() map[string]PredicateBuilder {
	return r.builders
}

// RegisterAll registers all built-in predicates and handler forms with a
// ruleset loader.
func RegisterAll(loader *yaml.Loader, verbose bool) *Registry {
	registry := NewRegistry()

	registry.Register(&TypePredicateBuilder{Verbose: verbose})
	registry.Register(&EqualsPredicateBuilder{Verbose: verbose})
	registry.Register(&ComparePredicateBuilder{Verbose: verbose})
	registry.Register(&RegexPredicateBuilder{Verbose: verbose})
	registry.Register(&JSONPathPredicateBuilder{Verbose: verbose})
	registry.Register(&ScriptPredicateBuilder{Verbose: verbose})

	// Register with the loader with config validation.
	for _, builder := range registry.All() {
		meta := builder.Metadata()
		loader.RegisterPredicateType(meta.Type, createValidatingBuilder(builder))
	}

	loader.RegisterHandlerType("path", BuildPathHandler)
	loader.RegisterHandlerType("script", BuildScriptHandler)

	return registry
}

// createValidatingBuilder wraps a builder with config validation.
func createValidatingBuilder(builder PredicateBuilder) yaml.PredicateBuilder {
	return func(def *yaml.ClauseDefinition) (matchbox.Predicate, error) {
		meta := builder.Metadata()
		if err := ValidatePredicateConfig(&meta, def.Config); err != nil {
			return nil, fmt.Errorf("config validation failed for clause '%s': %w", def.Name, err)
		}
		return builder.Build(def)
	}
}
