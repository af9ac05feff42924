package renametable

import (
	"fmt"
	"strings"
)

// ConfigError reports a malformed rename table entry or file.
type ConfigError struct {
	Source  string // file path, or "builtin"
	Line    int    // 1-based line in Source, 0 when unknown
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("rename table")
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}
	if e.Key != "" {
		fmt.Fprintf(&b, ": key %q", e.Key)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// PatternConflictError reports an entry whose replacement is itself a key of
// the table. Applying such a table is order-dependent and never idempotent.
// Keys that are prefixes or substrings of other keys (user, userProfile) are
// allowed: matching is word-bounded and tries longer keys first, so they never
// interfere.
type PatternConflictError struct {
	Key    string
	Plural string
	// Next is the plural the conflicting key maps to in turn.
	Next string
}

func (e *PatternConflictError) Error() string {
	if e.Key == e.Plural {
		return fmt.Sprintf("rename table: key %q maps to itself", e.Key)
	}
	return fmt.Sprintf("rename table: %q -> %q chains into %q -> %q", e.Key, e.Plural, e.Plural, e.Next)
}
