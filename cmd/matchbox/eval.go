package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	goyaml "github.com/goccy/go-yaml"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentstation/matchbox"
	"github.com/agentstation/matchbox/builtin"
	"github.com/agentstation/matchbox/yaml"
)

var (
	evalInput     string
	evalSubject   string
	evalExecution string
	evalDryRun    bool
)

// evalCmd represents the eval command.
var evalCmd = &cobra.Command{
	Use:   "eval <ruleset.yaml>",
	Short: "Dispatch a subject through a YAML ruleset",
	Long: `Parse a ruleset file, evaluate its clauses against a subject, and
print the verdict of the first committing clause (or the ruleset default).

The subject comes from --input (a JSON file) or --subject (an inline JSON
literal). With neither, the subject is null.`,
	Example: `  # Dispatch with an inline subject
  matchbox eval ruleset.yaml --subject '42'

  # Dispatch a JSON document
  matchbox eval ruleset.yaml --input event.json

  # Validate the ruleset without dispatching
  matchbox eval ruleset.yaml --dry-run

  # Force sequential clause evaluation
  matchbox eval ruleset.yaml --subject '"ping"' --execution sequential`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(args[0])
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalInput, "input", "", "JSON file providing the subject")
	evalCmd.Flags().StringVar(&evalSubject, "subject", "", "Inline JSON literal providing the subject")
	evalCmd.Flags().StringVar(&evalExecution, "execution", "", "Override execution mode (parallel, sequential)")
	evalCmd.Flags().BoolVar(&evalDryRun, "dry-run", false, "Validate the ruleset without dispatching")
}

func runEval(rulesetPath string) error {
	absPath, err := resolvePath(rulesetPath)
	if err != nil {
		return err
	}

	if verbose {
		log.Printf("Loading ruleset from: %s", absPath)
	}

	data, err := os.ReadFile(absPath) // #nosec G304 - User-provided ruleset file
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	parser := yaml.NewParser()
	def, err := parser.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}

	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid ruleset: %w", err)
	}

	if verbose {
		log.Printf("Loaded ruleset: %s", def.Name)
		if def.Description != "" {
			log.Printf("Description: %s", def.Description)
		}
		log.Printf("Clauses: %d", len(def.Clauses))
	}

	if evalDryRun {
		fmt.Println("Ruleset validation successful (dry run)")
		return nil
	}

	subject, err := loadSubject()
	if err != nil {
		return err
	}

	var opts []matchbox.Option
	if evalExecution != "" {
		opts = append(opts, matchbox.WithExecution(matchbox.ParseExecutionMode(evalExecution)))
	}

	loader := yaml.NewLoader()
	builtin.RegisterAll(loader, verbose)

	start := time.Now()
	verdict, err := loader.Run(context.Background(), def, subject, opts...)
	duration := time.Since(start)

	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}

	if verbose {
		log.Printf("Dispatch completed in %v", duration)
	}

	return printVerdict(verdict)
}

// loadSubject resolves the dispatch subject from the eval flags.
func loadSubject() (any, error) {
	switch {
	case evalInput != "" && evalSubject != "":
		return nil, fmt.Errorf("--input and --subject are mutually exclusive")
	case evalInput != "":
		data, err := os.ReadFile(evalInput) // #nosec G304 - User-provided input file
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		subject, err := oj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse input JSON: %w", err)
		}
		return subject, nil
	case evalSubject != "":
		subject, err := oj.ParseString(evalSubject)
		if err != nil {
			return nil, fmt.Errorf("parse subject JSON: %w", err)
		}
		return subject, nil
	default:
		return nil, nil
	}
}

func printVerdict(verdict any) error {
	switch output {
	case jsonFormat:
		data, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal verdict: %w", err)
		}
		fmt.Println(string(data))
	case yamlFormat:
		data, err := goyaml.Marshal(verdict)
		if err != nil {
			return fmt.Errorf("marshal verdict: %w", err)
		}
		fmt.Print(string(data))
	default:
		fmt.Println(verdict)
	}
	return nil
}

// resolvePath expands ~ and makes the path absolute.
func resolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, path[2:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("access file: %w", err)
	}
	return absPath, nil
}
