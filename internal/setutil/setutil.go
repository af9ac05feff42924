// Package setutil provides small ordered-set helpers.
package setutil

import (
	"fmt"
	"strings"
)

// Canonicalize validates values against allowed and returns them de-duplicated
// in allowed declaration order.
func Canonicalize(values []string, allowed []string) ([]string, error) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		allowedSet[v] = struct{}{}
	}

	selected := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := allowedSet[v]; !ok {
			return nil, fmt.Errorf("invalid value: %s", v)
		}
		selected[v] = struct{}{}
	}

	ordered := make([]string, 0, len(selected))
	for _, option := range allowed {
		if _, ok := selected[option]; ok {
			ordered = append(ordered, option)
			delete(selected, option)
		}
	}
	return ordered, nil
}

// Dedupe returns values with blanks and repeats removed, keeping the first
// occurrence of each value. Values are trimmed before comparison.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Ordered is an insertion-ordered set keyed by K. It keeps the first value
// added for each key.
type Ordered[K comparable, V any] struct {
	index  map[K]int
	values []V
}

// NewOrdered creates an empty ordered set with room for n entries.
func NewOrdered[K comparable, V any](n int) *Ordered[K, V] {
	return &Ordered[K, V]{
		index:  make(map[K]int, n),
		values: make([]V, 0, n),
	}
}

// Add inserts v under key unless key is already present. It reports whether
// the value was inserted.
func (o *Ordered[K, V]) Add(key K, v V) bool {
	if _, ok := o.index[key]; ok {
		return false
	}
	o.index[key] = len(o.values)
	o.values = append(o.values, v)
	return true
}

// Has reports whether key is present.
func (o *Ordered[K, V]) Has(key K) bool {
	_, ok := o.index[key]
	return ok
}

// Len returns the number of entries.
func (o *Ordered[K, V]) Len() int {
	return len(o.values)
}

// Values returns entries in insertion order. The slice must not be modified.
func (o *Ordered[K, V]) Values() []V {
	return o.values
}
