package discovery

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"accessor-rename/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// "+rel+"\n"), 0o644))
	}
}

func rels(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Rel)
	}
	return out
}

func TestDiscover_OrderFollowsPatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/app/page.tsx",
		"src/lib/db.ts",
		"src/index.ts",
		"netlify/functions/cron.ts",
		"README.md",
	)

	result, err := Discover(context.Background(), Options{
		Root:    root,
		Include: []string{"src/**/*.ts", "src/**/*.tsx", "netlify/functions/**/*.ts"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{
		"src/index.ts",
		"src/lib/db.ts",
		"src/app/page.tsx",
		"netlify/functions/cron.ts",
	}, rels(result.Files))

	for _, f := range result.Files {
		assert.True(t, filepath.IsAbs(f.Path))
	}
}

func TestDiscover_OverlappingPatternsReportedOnce(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/lib/db.ts", "src/lib/auth.ts")

	result, err := Discover(context.Background(), Options{
		Root:    root,
		Include: []string{"src/**/*.ts", "src/lib/*.ts", "**/*.ts"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/lib/auth.ts", "src/lib/db.ts"}, rels(result.Files))
	for _, f := range result.Files {
		assert.Equal(t, 0, f.Pattern)
	}
}

func TestDiscover_SymlinkedFileReportedOnce(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/lib/db.ts")
	if err := os.Symlink(filepath.Join(root, "src/lib/db.ts"), filepath.Join(root, "src/lib/db_link.ts")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	result, err := Discover(context.Background(), Options{
		Root:    root,
		Include: []string{"src/**/*.ts"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/lib/db.ts"}, rels(result.Files))
}

func TestDiscover_DanglingSymlink(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/index.ts")
	for _, name := range []string{"src/broken.ts", "src/broken.md"} {
		if err := os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, filepath.FromSlash(name))); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	result, err := Discover(context.Background(), Options{
		Root:    root,
		Include: []string{"src/**/*.ts"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.ts"}, rels(result.Files))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "src/broken.ts", result.Errors[0].Path)
	assert.ErrorIs(t, result.Errors[0], os.ErrNotExist)
}

func TestDiscover_Exclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/index.ts",
		"src/node_modules/pkg/index.ts",
		"node_modules/pkg/index.ts",
		".git/hooks/pre-commit.ts",
		"src/generated/client.ts",
	)

	result, err := Discover(context.Background(), Options{
		Root:    root,
		Include: []string{"**/*.ts"},
		Exclude: []string{"**/node_modules/**", ".git/**", "src/generated/*.ts"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.ts"}, rels(result.Files))
}

func TestDiscover_RootErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file.ts")

	_, err := Discover(context.Background(), Options{Root: filepath.Join(root, "missing"), Include: []string{"*.ts"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Discover(context.Background(), Options{Root: filepath.Join(root, "file.ts"), Include: []string{"*.ts"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")

	_, err = Discover(context.Background(), Options{Root: root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include pattern")
}

func TestDiscover_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/index.ts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, Options{Root: root, Include: []string{"src/**/*.ts"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompilePatterns(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		match   bool
	}{
		{"src/**/*.ts", "src/index.ts", true},
		{"src/**/*.ts", "src/a/b/c.ts", true},
		{"src/**/*.ts", "src/index.tsx", false},
		{"src/**/*.ts", "lib/index.ts", false},
		{"./src/*.ts", "src/index.ts", true},
		{"src/*.ts", "src/a/index.ts", false},
		{"**/*.ts", "index.ts", true},
		{"a/**/b/**/c.ts", "a/b/c.ts", true},
		{"a/**/b/**/c.ts", "a/x/b/c.ts", true},
		{"a/**/b/**/c.ts", "a/b/y/c.ts", true},
		{"src/**/*.{ts,tsx}", "src/app/page.tsx", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.path, func(t *testing.T) {
			patterns, err := CompilePatterns([]string{tt.pattern}, false)
			require.NoError(t, err)
			require.Len(t, patterns, 1)
			assert.Equal(t, tt.match, patterns[0].Match(tt.path))
		})
	}
}

func TestCompilePatterns_Errors(t *testing.T) {
	_, err := CompilePatterns([]string{"/abs/**/*.ts"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relative")
}

func TestCompilePatterns_DirectoryPruning(t *testing.T) {
	patterns, err := CompilePatterns([]string{"**/node_modules/**"}, true)
	require.NoError(t, err)
	assert.True(t, patterns[0].Match("node_modules"))
	assert.True(t, patterns[0].Match("src/node_modules"))
	assert.False(t, patterns[0].Match("src/node_modules_backup"))

	patterns, err = CompilePatterns([]string{"**/node_modules/**"}, false)
	require.NoError(t, err)
	assert.False(t, patterns[0].Match("node_modules"))
}

func TestDiscover_LogsThroughContextLogger(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/index.ts", "node_modules/pkg/index.ts")

	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "debug", Format: "text", Output: &buf})
	ctx := logging.WithLogger(context.Background(), logger)

	result, err := Discover(ctx, Options{
		Root:    root,
		Include: []string{"**/*.ts"},
		Exclude: []string{"**/node_modules/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.ts"}, rels(result.Files))
	assert.Contains(t, buf.String(), "skipping excluded directory")
	assert.Contains(t, buf.String(), "path=node_modules")
	assert.Contains(t, buf.String(), "discovery finished")
}
