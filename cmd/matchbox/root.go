package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Output format names.
const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	// Global flags.
	verbose bool
	output  string
	noColor bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "matchbox",
	Short: "A runtime pattern-matching engine",
	Long: `Matchbox dispatches subjects through ordered clause lists defined in
YAML rulesets.

Clauses pair a predicate (type guards, comparisons, regular expressions,
JSONPath queries, or Lua scripts) with a handler that produces the verdict
for the first committing clause.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&output, "output", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
