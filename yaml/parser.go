package yaml

import (
	"fmt"
	"io"
	"os"

	goyaml "github.com/goccy/go-yaml"
)

// Parser handles parsing YAML ruleset definitions.
type Parser struct{}

// NewParser creates a new YAML parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads and parses a YAML ruleset definition from a reader.
func (p *Parser) Parse(r io.Reader) (*RulesetDefinition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes parses a YAML ruleset definition from raw bytes.
func (p *Parser) ParseBytes(data []byte) (*RulesetDefinition, error) {
	var def RulesetDefinition
	if err := goyaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return &def, nil
}

// ParseFile reads and parses a YAML ruleset definition from a file.
func (p *Parser) ParseFile(filename string) (*RulesetDefinition, error) {
	// #nosec G304 - This is a parser that needs to accept arbitrary file paths
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseString parses a YAML ruleset definition from a string.
func (p *Parser) ParseString(s string) (*RulesetDefinition, error) {
	return p.ParseBytes([]byte(s))
}

// Marshal converts a ruleset definition to YAML format.
func (p *Parser) Marshal(rd *RulesetDefinition) ([]byte, error) {
	return goyaml.Marshal(rd)
}
