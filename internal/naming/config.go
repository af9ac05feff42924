// Package naming derives table-style accessor names from ORM model names,
// including pluralization and case conversion.
package naming

// Config holds naming customization options
type Config struct {
	// PluralOverrides maps singular -> custom plural. Keys may be a whole
	// model name or the last word of one.
	// Example: {"history": "history", "person": "people"}
	PluralOverrides map[string]string `mapstructure:"plural_overrides"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		PluralOverrides: make(map[string]string),
	}
}
