// Package discovery finds the source files a codemod run applies to.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"accessor-rename/internal/logging"
	"accessor-rename/internal/setutil"

	"github.com/gobwas/glob"
)

// File is a discovered source file.
type File struct {
	// Path is the absolute path on disk.
	Path string
	// Rel is the slash-separated path relative to the root.
	Rel string
	// Pattern is the index of the first include pattern that matched.
	Pattern int
}

// WalkError records a directory or entry that could not be visited.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("walk %s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// Result holds the discovered files and any entries that could not be walked.
type Result struct {
	Files  []File
	Errors []*WalkError
}

// Options controls discovery.
type Options struct {
	Root    string
	Include []string
	Exclude []string
}

// Discover walks opts.Root once and returns every regular file matching an
// include pattern and no exclude pattern. Files reachable through several
// patterns or symlinks are returned once. Files are ordered by the first
// include pattern that matched, then by lexical walk order. Progress is
// logged through the logger carried by ctx.
func Discover(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root %q: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", opts.Root)
	}

	include, err := CompilePatterns(opts.Include, false)
	if err != nil {
		return nil, err
	}
	if len(include) == 0 {
		return nil, errors.New("at least one include pattern is required")
	}
	exclude, err := CompilePatterns(opts.Exclude, true)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var matched []File

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			result.Errors = append(result.Errors, &WalkError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if i := matchIndex(exclude, rel); i >= 0 {
				logger.Debug("skipping excluded directory",
					slog.String("path", rel),
					slog.String("pattern", exclude[i].Source),
				)
				return fs.SkipDir
			}
			return nil
		}
		if matchIndex(exclude, rel) >= 0 {
			return nil
		}
		idx := matchIndex(include, rel)
		if idx < 0 {
			return nil
		}
		if !d.Type().IsRegular() {
			// Symlinks are followed only when they point at regular files.
			target, statErr := os.Stat(path)
			if statErr != nil {
				logger.Debug("cannot follow symlink",
					slog.String("path", rel),
					slog.String("error", statErr.Error()),
				)
				result.Errors = append(result.Errors, &WalkError{Path: rel, Err: statErr})
				return nil
			}
			if !target.Mode().IsRegular() {
				return nil
			}
		}
		matched = append(matched, File{Path: path, Rel: rel, Pattern: idx})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", opts.Root, walkErr)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Pattern < matched[j].Pattern
	})

	files := setutil.NewOrdered[string, File](len(matched))
	for _, f := range matched {
		files.Add(canonicalPath(f.Path), f)
	}
	result.Files = files.Values()

	logger.Debug("discovery finished",
		slog.String("root", root),
		slog.Int("matched", len(matched)),
		slog.Int("files", len(result.Files)),
		slog.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return filepath.Clean(resolved)
	}
	return filepath.Clean(path)
}

// Pattern is a compiled glob. A pattern may expand to several globs so that
// "/**/" also matches zero directories.
type Pattern struct {
	Source string
	globs  []glob.Glob
}

// Match reports whether the slash-separated relative path matches.
func (p Pattern) Match(rel string) bool {
	for _, g := range p.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// CompilePatterns compiles slash-separated glob patterns relative to a root.
// "*" stays within a path segment and "**" crosses segments. When forDirs is
// set, a trailing "/**" also matches the directory itself so whole subtrees
// can be pruned.
func CompilePatterns(patterns []string, forDirs bool) ([]Pattern, error) {
	patterns = setutil.Dedupe(patterns)
	out := make([]Pattern, 0, len(patterns))
	for _, source := range patterns {
		normalized := strings.TrimPrefix(filepath.ToSlash(source), "./")
		if strings.HasPrefix(normalized, "/") {
			return nil, fmt.Errorf("pattern %q must be relative to the root", source)
		}

		compiled := Pattern{Source: source}
		for _, variant := range expandPattern(normalized, forDirs) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", source, err)
			}
			compiled.globs = append(compiled.globs, g)
		}
		out = append(out, compiled)
	}
	return out, nil
}

// expandPattern returns pattern plus the variants where "**" segments match
// nothing: "a/**/b" -> "a/b", "**/b" -> "b", and with forDirs "a/**" -> "a".
func expandPattern(pattern string, forDirs bool) []string {
	variants := setutil.NewOrdered[string, string](4)
	var expand func(p string)
	expand = func(p string) {
		if !variants.Add(p, p) {
			return
		}
		for i := 0; i < len(p); i++ {
			if strings.HasPrefix(p[i:], "/**/") {
				expand(p[:i] + "/" + p[i+len("/**/"):])
			}
		}
		if strings.HasPrefix(p, "**/") {
			expand(strings.TrimPrefix(p, "**/"))
		}
		if forDirs && strings.HasSuffix(p, "/**") {
			expand(strings.TrimSuffix(p, "/**"))
		}
	}
	expand(pattern)
	return variants.Values()
}

func matchIndex(patterns []Pattern, rel string) int {
	for i, p := range patterns {
		if p.Match(rel) {
			return i
		}
	}
	return -1
}
