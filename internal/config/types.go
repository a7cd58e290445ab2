package config

import (
	"fmt"
	"slices"
)

// Default configuration values.
const (
	DefaultOutput = "table"
	DefaultJobs   = 4
)

// DefaultAnalyses is the analysis set used when none is configured.
var DefaultAnalyses = []string{"size", "cost"}

// Config is the resolved tool configuration after merging defaults,
// config file, environment variables, and flags.
type Config struct {
	// Analyses to apply, in application order.
	Analyses []string `koanf:"analyses"`

	// Output format: table, json, yaml, or csv.
	Output string `koanf:"output"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Jobs caps concurrent file analysis.
	Jobs int `koanf:"jobs"`

	// Watch re-runs the analysis when source files change.
	Watch bool `koanf:"watch"`

	// Complexity configures the complexity analysis.
	Complexity ComplexityConfig `koanf:"complexity"`
}

// ComplexityConfig names the symbolic input sizes and known callees
// the complexity analysis works with.
type ComplexityConfig struct {
	// Symbols maps parameter names to size symbols, e.g. xs: n.
	Symbols map[string]string `koanf:"symbols"`

	// Functions maps callee names to growth classes, e.g. sort: linear.
	Functions map[string]string `koanf:"functions"`
}

// validOutputs are the renderers the CLI ships.
var validOutputs = []string{"table", "json", "yaml", "csv"}

// Validate checks the config for values no command could act on.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, c.Output) {
		return fmt.Errorf("invalid output format %q (valid: table, json, yaml, csv)", c.Output)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}

// AnalysisOptions returns the per-analysis option maps in the shape
// the analysis registry consumes.
func (c *Config) AnalysisOptions() map[string]map[string]any {
	return map[string]map[string]any{
		"complexity": {
			"symbols":   c.Complexity.Symbols,
			"functions": c.Complexity.Functions,
		},
	}
}
