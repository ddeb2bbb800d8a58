package models

import "time"

// Summary output formats
const (
	SummaryNone  = "none"
	SummaryTable = "table"
	SummaryJSON  = "json"
)

// Config holds configuration for a single autoreqs run
type Config struct {
	// Folder to scan; the manifest is written inside it
	Root string `mapstructure:"-"`

	// Discovery settings
	Extensions []string `mapstructure:"extensions"` // File suffixes to scan
	Exclude    []string `mapstructure:"exclude"`    // Directory names to prune

	// Inventory settings
	PipCommand    string        `mapstructure:"pip"`       // e.g. "pip freeze" or "python3 -m pip freeze"
	InventoryFile string        `mapstructure:"inventory"` // Saved freeze output used instead of pip
	Timeout       time.Duration `mapstructure:"timeout"`   // 0 means no limit

	// Output settings
	Manifest string `mapstructure:"manifest"` // Manifest file name inside Root
	LogFile  string `mapstructure:"log_file"`
	Summary  string `mapstructure:"summary"` // "none", "table", "json"
	Yes      bool   `mapstructure:"yes"`     // Overwrite without asking
	DryRun   bool   `mapstructure:"dry_run"` // Print manifest instead of writing

	// Problems found while loading that did not stop the run
	Warnings []string `mapstructure:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Root:       ".",
		Extensions: []string{".py", ".ipynb"},
		PipCommand: "pip freeze",
		Manifest:   "requirements.txt",
		LogFile:    "autoreqs.log",
		Summary:    SummaryNone,
	}
}
