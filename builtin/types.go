package builtin

// PredicateMetadata describes a predicate type.
type PredicateMetadata struct {
	Type         string         `json:"type"`
	Category     string         `json:"category"`
	Description  string         `json:"description"`
	ConfigSchema map[string]any `json:"configSchema"`
	Examples     []Example      `json:"examples,omitempty"`
	Since        string         `json:"since,omitempty"`
}

// Example shows how to use a predicate.
type Example struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	Subject     any            `json:"subject,omitempty"`
	Matches     bool           `json:"matches"`
}
