// Package renametable holds the ordered singular -> plural accessor mapping
// applied by the codemod, along with loading and validation.
package renametable

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s is a plain identifier ([A-Za-z_][A-Za-z0-9_]*).
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// Entry is a single rename rule.
type Entry struct {
	Singular string
	Plural   string

	line int
}

// Table is an ordered, validated set of rename rules. A Table is immutable
// once built and safe for concurrent use.
type Table struct {
	source  string
	entries []Entry
	index   map[string]int
}

// New builds a table from entries and validates it.
func New(entries []Entry) (*Table, error) {
	return build("", entries)
}

func build(source string, entries []Entry) (*Table, error) {
	t := &Table{
		source:  source,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	var errs []error
	if len(entries) == 0 {
		errs = append(errs, &ConfigError{Source: source, Message: "table has no entries"})
	}
	for _, e := range entries {
		if !IsIdentifier(e.Singular) {
			errs = append(errs, &ConfigError{Source: source, Line: e.line, Key: e.Singular, Message: "key is not a valid identifier"})
			continue
		}
		if e.Plural == "" {
			errs = append(errs, &ConfigError{Source: source, Line: e.line, Key: e.Singular, Message: "replacement cannot be empty"})
			continue
		}
		if !IsIdentifier(e.Plural) {
			errs = append(errs, &ConfigError{Source: source, Line: e.line, Key: e.Singular, Message: fmt.Sprintf("replacement %q is not a valid identifier", e.Plural)})
			continue
		}
		if prev, ok := t.index[e.Singular]; ok {
			msg := "duplicate key"
			if line := t.entries[prev].line; line > 0 {
				msg = fmt.Sprintf("duplicate key (first defined on line %d)", line)
			}
			errs = append(errs, &ConfigError{Source: source, Line: e.line, Key: e.Singular, Message: msg})
			continue
		}
		t.index[e.Singular] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := t.checkConflicts(); err != nil {
		return nil, err
	}
	return t, nil
}

// checkConflicts rejects entries whose replacement is also a key.
func (t *Table) checkConflicts() error {
	var errs []error
	for _, e := range t.entries {
		if i, ok := t.index[e.Plural]; ok {
			errs = append(errs, &PatternConflictError{
				Key:    e.Singular,
				Plural: e.Plural,
				Next:   t.entries[i].Plural,
			})
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Source returns where the table was loaded from ("builtin", a file path, or "").
func (t *Table) Source() string {
	return t.source
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the replacement for singular.
func (t *Table) Lookup(singular string) (string, bool) {
	i, ok := t.index[singular]
	if !ok {
		return "", false
	}
	return t.entries[i].Plural, true
}

// KeysLongestFirst returns the singular keys sorted by descending length,
// ties broken by table order.
func (t *Table) KeysLongestFirst() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Singular
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})
	return keys
}
