// Package codemod rewrites ORM model accessors (prisma.user, tx.user) to
// their renamed form across a source tree.
package codemod

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"accessor-rename/internal/renametable"
	"accessor-rename/internal/setutil"
)

// DefaultAccessRoots are the handles whose member accesses are rewritten:
// the client itself and the interactive transaction callback argument.
var DefaultAccessRoots = []string{"prisma", "tx"}

// Result describes the replacements made in one piece of source.
type Result struct {
	Replacements int
	// ByEntry counts replacements per singular key.
	ByEntry map[string]int
}

// Rewriter applies a rename table to member accesses on a fixed set of roots.
// All roots and keys are matched in a single scan, so entries never observe
// each other's output. A Rewriter is safe for concurrent use.
type Rewriter struct {
	table   *renametable.Table
	pattern *regexp.Regexp
}

// NewRewriter compiles a rewriter for table over roots.
func NewRewriter(table *renametable.Table, roots []string) (*Rewriter, error) {
	if table == nil || table.Len() == 0 {
		return nil, fmt.Errorf("rename table is empty")
	}
	roots = setutil.Dedupe(roots)
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one access root is required")
	}
	for _, root := range roots {
		if !renametable.IsIdentifier(root) {
			return nil, fmt.Errorf("access root %q is not a valid identifier", root)
		}
	}

	keys := table.KeysLongestFirst()
	quotedKeys := make([]string, len(keys))
	for i, k := range keys {
		quotedKeys[i] = regexp.QuoteMeta(k)
	}
	quotedRoots := make([]string, len(roots))
	for i, r := range roots {
		quotedRoots[i] = regexp.QuoteMeta(r)
	}

	expr := `\b(` + strings.Join(quotedRoots, "|") + `)\.(` + strings.Join(quotedKeys, "|") + `)\b`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile accessor pattern: %w", err)
	}

	return &Rewriter{
		table:   table,
		pattern: pattern,
	}, nil
}

// Rewrite returns src with every <root>.<singular> access replaced by
// <root>.<plural>. When nothing matches, src is returned unchanged.
func (r *Rewriter) Rewrite(src []byte) ([]byte, Result) {
	matches := r.pattern.FindAllSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, Result{}
	}

	res := Result{ByEntry: make(map[string]int)}
	var out bytes.Buffer
	out.Grow(len(src) + len(matches)*8)

	last := 0
	for _, m := range matches {
		// m[4]:m[5] is the member name group.
		singular := string(src[m[4]:m[5]])
		plural, ok := r.table.Lookup(singular)
		if !ok {
			continue
		}
		out.Write(src[last:m[4]])
		out.WriteString(plural)
		last = m[5]

		res.Replacements++
		res.ByEntry[singular]++
	}
	out.Write(src[last:])
	return out.Bytes(), res
}

// RewriteString is Rewrite for strings.
func (r *Rewriter) RewriteString(src string) (string, Result) {
	out, res := r.Rewrite([]byte(src))
	return string(out), res
}
