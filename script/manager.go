package script

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Manager handles script discovery and management.
type Manager struct {
	scriptsDir string
	scripts    map[string]*Script
	verbose    bool
}

// Script represents a discovered Lua script.
type Script struct {
	Name        string
	Path        string
	Category    string
	Description string
	Version     string
	Content     string
}

// NewManager creates a new script manager rooted at scriptsDir, defaulting
// to ~/.matchbox/scripts.
func NewManager(scriptsDir string, verbose bool) *Manager {
	if scriptsDir == "" {
		home, _ := os.UserHomeDir()
		scriptsDir = filepath.Join(home, ".matchbox", "scripts")
	}
	return &Manager{
		scriptsDir: scriptsDir,
		scripts:    make(map[string]*Script),
		verbose:    verbose,
	}
}

// Discover finds all Lua scripts in the scripts directory.
func (m *Manager) Discover() error {
	if err := os.MkdirAll(m.scriptsDir, 0o750); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	return filepath.WalkDir(m.scriptsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".lua") {
			return nil
		}

		s, err := m.LoadScript(path)
		if err != nil {
			if m.verbose {
				fmt.Printf("Warning: failed to load script %s: %v\n", path, err)
			}
			return nil // keep discovering
		}

		m.scripts[s.Name] = s
		if m.verbose {
			fmt.Printf("Discovered script: %s (%s)\n", s.Name, s.Path)
		}
		return nil
	})
}

// LoadScript loads a Lua script and parses the metadata comments at the
// top of the file (`-- @name:`, `-- @category:`, `-- @description:`,
// `-- @version:`).
func (m *Manager) LoadScript(path string) (*Script, error) {
	content, err := os.ReadFile(path) //nolint:gosec // Path is user-provided and validated
	if err != nil {
		return nil, err
	}

	s := &Script{
		Path:    path,
		Content: string(content),
	}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "--") {
			break
		}

		switch {
		case strings.HasPrefix(line, "-- @name:"):
			s.Name = strings.TrimSpace(strings.TrimPrefix(line, "-- @name:"))
		case strings.HasPrefix(line, "-- @category:"):
			s.Category = strings.TrimSpace(strings.TrimPrefix(line, "-- @category:"))
		case strings.HasPrefix(line, "-- @description:"):
			s.Description = strings.TrimSpace(strings.TrimPrefix(line, "-- @description:"))
		case strings.HasPrefix(line, "-- @version:"):
			s.Version = strings.TrimSpace(strings.TrimPrefix(line, "-- @version:"))
		}
	}

	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if s.Category == "" {
		s.Category = "script"
	}

	return s, nil
}

// GetScript returns a discovered script by name.
func (m *Manager) GetScript(name string) (*Script, bool) {
	s, ok := m.scripts[name]
	return s, ok
}

// ListScripts returns all discovered scripts.
func (m *Manager) ListScripts() []*Script {
	scripts := make([]*Script, 0, len(m.scripts))
	for _, s := range m.scripts {
		scripts = append(scripts, s)
	}
	return scripts
}
