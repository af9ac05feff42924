package config

import (
	"accessor-rename/internal/naming"
)

// Config holds the application configuration.
type Config struct {
	// Root is the directory glob patterns are evaluated against.
	Root string `mapstructure:"root"`
	// DryRun computes and reports replacements without writing files.
	DryRun bool `mapstructure:"dry_run"`
	// Table is an optional path to a YAML/JSON rename table replacing the
	// built-in one.
	Table string `mapstructure:"table"`
	// Patterns are the include globs, relative to Root.
	Patterns []string `mapstructure:"patterns"`
	// Exclude globs always win over Patterns.
	Exclude []string `mapstructure:"exclude"`
	// AccessRoots are the identifiers whose member accesses are rewritten.
	AccessRoots []string `mapstructure:"access_roots"`
	// Workers bounds concurrent file processing. 1 is sequential.
	Workers int `mapstructure:"workers"`
	// FailFast aborts on the first file error.
	FailFast bool `mapstructure:"fail_fast"`
	// Output is the report format: text or json.
	Output string `mapstructure:"output"`
	// MetricsFile, when set, receives run metrics in Prometheus text format.
	MetricsFile string `mapstructure:"metrics_file"`

	Logging LoggingConfig `mapstructure:"logging"`
	Naming  naming.Config `mapstructure:"naming"`
}

// LoggingConfig holds logging parameters.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
