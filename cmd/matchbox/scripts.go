package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentstation/matchbox/script"
)

// scriptsCmd represents the scripts command.
var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage Lua predicate scripts",
	Long: `Discover, validate, and test Lua predicate scripts.

Scripts are discovered from ~/.matchbox/scripts/ and can back script
clauses in rulesets. Each script defines a match(subject) function and
optionally a handle(subject) function, with metadata comments at the top.`,
	Example: `  # List all discovered scripts
  matchbox scripts

  # Validate a script
  matchbox scripts validate my-check.lua

  # Get script information
  matchbox scripts info threshold-check

  # Test a script's match function against a subject
  matchbox scripts run threshold-check '42'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScriptsList(verbose)
	},
}

// scriptsValidateCmd represents the scripts validate command.
var scriptsValidateCmd = &cobra.Command{
	Use:   "validate <script-path>",
	Short: "Validate a Lua script",
	Long: `Validate a Lua script's syntax and structure without executing it.

Checks for syntax errors and verifies that a match function is present.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScriptsValidate(args[0])
	},
}

// scriptsInfoCmd represents the scripts info command.
var scriptsInfoCmd = &cobra.Command{
	Use:   "info <script-name>",
	Short: "Show script details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScriptsInfo(args[0])
	},
}

// scriptsRunCmd represents the scripts run command.
var scriptsRunCmd = &cobra.Command{
	Use:   "run <script-name> [subject-json]",
	Short: "Test a script directly",
	Long: `Evaluate a discovered script's match function against a subject for
testing. The subject is a JSON literal; with none, the subject is null.`,
	Example: `  # Test with a numeric subject
  matchbox scripts run threshold-check '42'

  # Test with a structured subject
  matchbox scripts run order-filter '{"status": "open", "total": 99.5}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectJSON := ""
		if len(args) > 1 {
			subjectJSON = args[1]
		}
		return runScriptsRun(args[0], subjectJSON)
	},
}

func init() {
	rootCmd.AddCommand(scriptsCmd)
	scriptsCmd.AddCommand(scriptsValidateCmd)
	scriptsCmd.AddCommand(scriptsInfoCmd)
	scriptsCmd.AddCommand(scriptsRunCmd)
}

// runScriptsList lists all discovered scripts.
func runScriptsList(verbose bool) error {
	manager := script.NewManager("", verbose)

	if err := manager.Discover(); err != nil {
		return fmt.Errorf("discover scripts: %w", err)
	}

	scripts := manager.ListScripts()
	if len(scripts) == 0 {
		fmt.Println("No scripts found in ~/.matchbox/scripts/")
		return nil
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name < scripts[j].Name
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
	for _, s := range scripts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Category, s.Description)
	}
	return w.Flush()
}

// runScriptsValidate validates a script file.
func runScriptsValidate(scriptPath string) error {
	content, err := os.ReadFile(scriptPath) // #nosec G304 - User-provided script path
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	if err := script.Validate(string(content)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Script %s is valid\n", scriptPath)
	return nil
}

// runScriptsInfo shows details for a discovered script.
func runScriptsInfo(scriptName string) error {
	manager := script.NewManager("", verbose)
	if err := manager.Discover(); err != nil {
		return fmt.Errorf("discover scripts: %w", err)
	}

	s, ok := manager.GetScript(scriptName)
	if !ok {
		return fmt.Errorf("script '%s' not found", scriptName)
	}

	fmt.Printf("Name: %s\n", s.Name)
	fmt.Printf("Path: %s\n", s.Path)
	fmt.Printf("Category: %s\n", s.Category)
	if s.Description != "" {
		fmt.Printf("Description: %s\n", s.Description)
	}
	if s.Version != "" {
		fmt.Printf("Version: %s\n", s.Version)
	}

	if err := script.Validate(s.Content); err != nil {
		fmt.Printf("Status: invalid (%v)\n", err)
	} else {
		fmt.Println("Status: valid")
	}
	return nil
}

// runScriptsRun tests a script's match function against a subject.
func runScriptsRun(scriptName, subjectJSON string) error {
	manager := script.NewManager("", verbose)
	if err := manager.Discover(); err != nil {
		return fmt.Errorf("discover scripts: %w", err)
	}

	s, ok := manager.GetScript(scriptName)
	if !ok {
		return fmt.Errorf("script '%s' not found", scriptName)
	}

	var subject any
	if subjectJSON != "" {
		var err error
		subject, err = oj.ParseString(subjectJSON)
		if err != nil {
			return fmt.Errorf("parse subject JSON: %w", err)
		}
	}

	matched, err := script.EvalMatch(context.Background(), s.Content, subject)
	if err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	fmt.Printf("matched: %v\n", matched)
	return nil
}
