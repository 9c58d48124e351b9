// Package config loads logviz configuration and the log-pattern catalogs it
// points at. It supports JSON and YAML configuration files, detected by
// file extension.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"logviz/catalog"
)

// Visualization holds display text and color assignments, keyed by the
// fixed chart identifiers and semantic roles (error, warning). Missing keys
// render as empty strings; there is no schema validation beyond presence.
type Visualization struct {
	Colors map[string]string `json:"colors" yaml:"colors"`
	Titles map[string]string `json:"titles" yaml:"titles"`
	Labels map[string]string `json:"labels" yaml:"labels"`
}

// Title returns the configured title for a chart identifier.
func (v Visualization) Title(name string) string { return v.Titles[name] }

// Label returns the configured axis label for a semantic key.
func (v Visualization) Label(name string) string { return v.Labels[name] }

// Color returns the configured color for a semantic role.
func (v Visualization) Color(role string) string { return v.Colors[role] }

// Output holds artifact output settings.
type Output struct {
	SavePlots bool     `json:"save_plots" yaml:"save_plots"`
	OutputDir string   `json:"output_dir" yaml:"output_dir"`
	Formats   []string `json:"formats" yaml:"formats"`
}

// Config is the full logviz configuration: display settings from the main
// configuration file plus the two catalogs loaded from the patterns file it
// references.
type Config struct {
	LogPatternsFile string        `json:"log_patterns_file" yaml:"log_patterns_file"`
	Visualization   Visualization `json:"visualization" yaml:"visualization"`
	Output          Output        `json:"output" yaml:"output"`

	// Catalogs from LogPatternsFile, populated by Load.
	ErrorLogs   catalog.Catalog `json:"-" yaml:"-"`
	WarningLogs catalog.Catalog `json:"-" yaml:"-"`
}

// Load reads the configuration file and the log-patterns file it references.
// File-not-found errors from either file carry os.ErrNotExist so callers can
// report them distinctly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path from caller
	if err != nil {
		return nil, fmt.Errorf("reading configuration %s: %w", path, err)
	}

	jsonData, err := toJSON(data, path)
	if err != nil {
		return nil, fmt.Errorf("parsing configuration %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration %s: %w", path, err)
	}

	patterns, err := LoadPatterns(cfg.LogPatternsFile)
	if err != nil {
		return nil, err
	}
	cfg.ErrorLogs = patterns.Errors
	cfg.WarningLogs = patterns.Warnings

	return &cfg, nil
}

// LoadPatterns reads a log-patterns file with top-level error_logs and
// warning_logs mappings, preserving category document order.
func LoadPatterns(path string) (catalog.Patterns, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path from configuration
	if err != nil {
		return catalog.Patterns{}, fmt.Errorf("reading log patterns %s: %w", path, err)
	}

	var p catalog.Patterns
	if isYAML(path) {
		p, err = catalog.DecodePatternsYAML(data)
	} else {
		p, err = catalog.DecodePatternsJSON(data)
	}
	if err != nil {
		return catalog.Patterns{}, fmt.Errorf("log patterns %s: %w", path, err)
	}
	return p, nil
}

// EnsureOutputDir creates the configured output directory if it does not
// exist. It is a no-op when saving is disabled.
func EnsureOutputDir(cfg *Config) error {
	if !cfg.Output.SavePlots {
		return nil
	}
	if err := os.MkdirAll(cfg.Output.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", cfg.Output.OutputDir, err)
	}
	return nil
}
