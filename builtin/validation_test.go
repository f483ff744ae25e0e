package builtin_test

import (
	"testing"

	"github.com/agentstation/matchbox/builtin"
)

func TestValidatePredicateConfig(t *testing.T) {
	meta := &builtin.PredicateMetadata{
		Type: "compare",
		ConfigSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"op": map[string]any{
					"type": "string",
					"enum": []string{"lt", "gt"},
				},
				"value": map[string]any{
					"type": "number",
				},
			},
			"required": []string{"op", "value"},
		},
	}

	tests := []struct {
		name    string
		config  map[string]any
		wantErr bool
	}{
		{
			name:   "valid config",
			config: map[string]any{"op": "gt", "value": 10},
		},
		{
			name:    "missing required field",
			config:  map[string]any{"op": "gt"},
			wantErr: true,
		},
		{
			name:    "wrong type",
			config:  map[string]any{"op": "gt", "value": "ten"},
			wantErr: true,
		},
		{
			name:    "enum violation",
			config:  map[string]any{"op": "between", "value": 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := builtin.ValidatePredicateConfig(meta, tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePredicateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePredicateConfigNoSchema(t *testing.T) {
	meta := &builtin.PredicateMetadata{Type: "free-form"}
	if err := builtin.ValidatePredicateConfig(meta, map[string]any{"anything": true}); err != nil {
		t.Errorf("ValidatePredicateConfig() with no schema = %v, want nil", err)
	}
}
