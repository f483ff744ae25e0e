package builtin

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidatePredicateConfig validates a clause configuration against its
// predicate's schema.
func ValidatePredicateConfig(meta *PredicateMetadata, config map[string]any) error {
	if len(meta.ConfigSchema) == 0 {
		// No schema defined, skip validation
		return nil
	}

	schemaJSON, err := json.Marshal(meta.ConfigSchema)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	configJSON, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(configJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		var errMsg string
		for i, verr := range result.Errors() {
			if i > 0 {
				errMsg += "; "
			}
			errMsg += verr.String()
		}
		return fmt.Errorf("config validation failed: %s", errMsg)
	}

	return nil
}
