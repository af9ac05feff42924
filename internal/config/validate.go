package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"accessor-rename/internal/discovery"
	"accessor-rename/internal/naming"
	"accessor-rename/internal/renametable"
	"accessor-rename/internal/report"
	"accessor-rename/internal/setutil"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string
	Message string
	Hint    string
}

// ValidationResult contains the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns a combined error message if there are validation errors.
func (r *ValidationResult) Error() string {
	if !r.HasErrors() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidateNaming checks only the naming options, for commands that do not
// touch the source tree.
func (c *Config) ValidateNaming() *ValidationResult {
	result := &ValidationResult{}
	validateNamingConfig(result, c.Naming)
	return result
}

// Validate checks the configuration for errors and returns validation results.
// It returns both errors (fatal) and warnings (non-fatal issues). Validate
// does not touch any file other than stat calls.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	c.validateRoot(result)
	c.validateTable(result)
	validateGlobList(result, "patterns", c.Patterns, true)
	validateGlobList(result, "exclude", c.Exclude, false)
	validateAccessRoots(result, c.AccessRoots)
	c.validateRun(result)
	c.Logging.validate(result)
	validateNamingConfig(result, c.Naming)

	return result
}

func (c *Config) validateRoot(result *ValidationResult) {
	if strings.TrimSpace(c.Root) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "root",
			Message: "root cannot be empty",
		})
		return
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "root",
			Message: fmt.Sprintf("cannot access root %q: %v", c.Root, err),
			Hint:    "pass --root with an existing directory",
		})
		return
	}
	if !info.IsDir() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "root",
			Message: fmt.Sprintf("root %q is not a directory", c.Root),
		})
	}
}

func (c *Config) validateTable(result *ValidationResult) {
	if c.Table == "" {
		return
	}
	info, err := os.Stat(c.Table)
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "table",
			Message: fmt.Sprintf("cannot access rename table %q: %v", c.Table, err),
		})
		return
	}
	if info.IsDir() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "table",
			Message: fmt.Sprintf("rename table %q is a directory", c.Table),
			Hint:    "point --table at a YAML or JSON mapping file",
		})
	}
}

func validateGlobList(result *ValidationResult, field string, patterns []string, required bool) {
	if required && len(patterns) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Message: "at least one glob pattern is required",
		})
		return
	}
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Message: "glob pattern cannot be empty",
			})
			continue
		}
		if _, err := discovery.CompilePatterns([]string{pattern}, false); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Message: err.Error(),
			})
		}
	}
}

func validateAccessRoots(result *ValidationResult, roots []string) {
	if len(roots) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "access_roots",
			Message: "at least one access root is required",
		})
		return
	}
	for _, root := range roots {
		if !renametable.IsIdentifier(strings.TrimSpace(root)) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "access_roots",
				Message: fmt.Sprintf("access root %q is not a valid identifier", root),
				Hint:    "use the bare variable name, e.g. prisma or tx",
			})
		}
	}
}

func (c *Config) validateRun(result *ValidationResult) {
	if c.Workers < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "workers",
			Message: "workers must be at least 1",
		})
	} else if c.Workers > 4*runtime.NumCPU() {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "workers",
			Message: fmt.Sprintf("workers (%d) is far above the CPU count (%d)", c.Workers, runtime.NumCPU()),
			Hint:    "the run is I/O bound; extra workers only add contention",
		})
	}

	if _, err := setutil.Canonicalize([]string{strings.ToLower(c.Output)}, report.Formats); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output",
			Message: fmt.Sprintf("invalid output format %q", c.Output),
			Hint:    "valid values are: " + strings.Join(report.Formats, ", "),
		})
	}

	if c.MetricsFile != "" {
		dir := filepath.Dir(c.MetricsFile)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "metrics_file",
				Message: fmt.Sprintf("directory %q for metrics file does not exist", dir),
			})
		}
	}

	if c.DryRun && c.FailFast {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "fail_fast",
			Message: "fail_fast has no write failures to stop on in a dry run",
		})
	}
}

func (l *LoggingConfig) validate(result *ValidationResult) {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(l.Level)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid log level %q", l.Level),
			Hint:    "valid values are: debug, info, warn, error",
		})
	}

	validLogFormats := map[string]bool{"": true, "json": true, "text": true}
	if !validLogFormats[strings.ToLower(l.Format)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid log format %q", l.Format),
			Hint:    "valid values are: json, text",
		})
	}
}

func validateNamingConfig(result *ValidationResult, cfg naming.Config) {
	for word, plural := range cfg.PluralOverrides {
		if strings.TrimSpace(word) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "naming.plural_overrides",
				Message: "word cannot be empty",
			})
			continue
		}
		if !renametable.IsIdentifier(plural) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "naming.plural_overrides",
				Message: fmt.Sprintf("plural override %q for %q is not a valid identifier", plural, word),
			})
		}
	}
}
