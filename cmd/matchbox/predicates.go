package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/agentstation/matchbox/builtin"
)

// predicatesCmd represents the predicates command.
var predicatesCmd = &cobra.Command{
	Use:   "predicates",
	Short: "List available predicate types",
	Long: `List the predicate types that YAML ruleset clauses can use, grouped
by category.`,
	Example: `  # List all predicate types
  matchbox predicates

  # List in JSON format
  matchbox predicates --output json

  # Show details for one predicate type
  matchbox predicates info jsonpath`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredicatesList()
	},
}

// predicatesInfoCmd represents the predicates info command.
var predicatesInfoCmd = &cobra.Command{
	Use:   "info <type>",
	Short: "Show predicate type details",
	Long: `Display a predicate type's description, configuration schema, and
usage examples.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredicatesInfo(args[0])
	},
}

func init() {
	rootCmd.AddCommand(predicatesCmd)
	predicatesCmd.AddCommand(predicatesInfoCmd)
}

// runPredicatesList lists all built-in predicate types.
func runPredicatesList() error {
	predicates := getBuiltinPredicates()

	// Sort by category then type
	sort.Slice(predicates, func(i, j int) bool {
		if predicates[i].Category != predicates[j].Category {
			return predicates[i].Category < predicates[j].Category
		}
		return predicates[i].Type < predicates[j].Type
	})

	switch output {
	case jsonFormat:
		return outputJSON(predicates)
	case yamlFormat:
		return outputYAML(predicates)
	default:
		return outputTable(predicates)
	}
}

// runPredicatesInfo shows detailed information about one predicate type.
func runPredicatesInfo(predicateType string) error {
	for _, meta := range getBuiltinPredicates() {
		if meta.Type != predicateType {
			continue
		}

		fmt.Printf("Predicate Type: %s\n", meta.Type)
		fmt.Printf("Category: %s\n", meta.Category)
		fmt.Printf("Description: %s\n", meta.Description)
		if meta.Since != "" {
			fmt.Printf("Since: %s\n", meta.Since)
		}
		fmt.Println()

		if len(meta.ConfigSchema) > 0 {
			fmt.Println("Configuration:")
			schemaJSON, _ := json.MarshalIndent(meta.ConfigSchema, "  ", "  ")
			fmt.Printf("  %s\n", schemaJSON)
			fmt.Println()
		}

		if len(meta.Examples) > 0 {
			fmt.Println("Examples:")
			for i, example := range meta.Examples {
				fmt.Printf("  %d. %s\n", i+1, example.Name)
				if example.Description != "" {
					fmt.Printf("     %s\n", example.Description)
				}
				if len(example.Config) > 0 {
					configYAML, _ := goyaml.Marshal(example.Config)
					fmt.Printf("     Config:\n")
					for _, line := range strings.Split(string(configYAML), "\n") {
						if line != "" {
							fmt.Printf("       %s\n", line)
						}
					}
				}
			}
		}

		return nil
	}

	return fmt.Errorf("predicate type '%s' not found", predicateType)
}

// getBuiltinPredicates returns metadata for all builtin predicate types.
func getBuiltinPredicates() []builtin.PredicateMetadata {
	return []builtin.PredicateMetadata{
		(&builtin.TypePredicateBuilder{}).Metadata(),
		(&builtin.EqualsPredicateBuilder{}).Metadata(),
		(&builtin.ComparePredicateBuilder{}).Metadata(),
		(&builtin.RegexPredicateBuilder{}).Metadata(),
		(&builtin.JSONPathPredicateBuilder{}).Metadata(),
		(&builtin.ScriptPredicateBuilder{}).Metadata(),
	}
}

// outputTable outputs predicate types in table format.
func outputTable(predicates []builtin.PredicateMetadata) error {
	categories := make(map[string][]builtin.PredicateMetadata)
	for _, meta := range predicates {
		categories[meta.Category] = append(categories[meta.Category], meta)
	}

	categoryNames := make([]string, 0, len(categories))
	for cat := range categories {
		categoryNames = append(categoryNames, cat)
	}
	sort.Strings(categoryNames)

	for _, cat := range categoryNames {
		fmt.Printf("\n%s:\n", strings.ToUpper(cat[:1])+cat[1:])
		fmt.Println(strings.Repeat("-", len(cat)+1))

		for _, meta := range categories[cat] {
			fmt.Printf("  %-20s %s\n", meta.Type, meta.Description)
		}
	}

	fmt.Printf("\nTotal: %d predicate types\n", len(predicates))
	fmt.Println("\nUse 'matchbox predicates info <type>' for detailed information.")

	return nil
}

// outputJSON outputs predicate types in JSON format.
func outputJSON(predicates []builtin.PredicateMetadata) error {
	data, err := json.MarshalIndent(predicates, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// outputYAML outputs predicate types in YAML format.
func outputYAML(predicates []builtin.PredicateMetadata) error {
	out := make([]map[string]any, len(predicates))
	for i, meta := range predicates {
		out[i] = map[string]any{
			"type":        meta.Type,
			"category":    meta.Category,
			"description": meta.Description,
		}
		if meta.Since != "" {
			out[i]["since"] = meta.Since
		}
		if len(meta.Examples) > 0 {
			out[i]["examples"] = len(meta.Examples)
		}
	}

	yamlData, err := goyaml.Marshal(out)
	if err != nil {
		return err
	}

	fmt.Print(string(yamlData))
	return nil
}
