// Package report renders run summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"accessor-rename/internal/codemod"
)

// Formats supported by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON}

// Write renders summary to w in the given format.
func Write(w io.Writer, summary *codemod.RunSummary, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return WriteText(w, summary)
	case FormatJSON:
		return WriteJSON(w, summary)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteText writes the human-readable summary: totals first, then one line
// per changed file in discovery order, then failures. Per-file counts always
// read "N replacements".
func WriteText(w io.Writer, summary *codemod.RunSummary) error {
	ew := &errWriter{w: w}

	if summary.DryRun {
		ew.printf("Dry run: no files were written.\n")
	}
	ew.printf("Files changed: %d\n", summary.FilesChanged)
	ew.printf("Total replacements: %d\n", summary.Replacements)

	if len(summary.Files) > 0 {
		ew.printf("\nDetailed results:\n")
		for _, f := range summary.Files {
			ew.printf("  %s: %d replacements\n", f.Path, f.Replacements)
		}
	}

	if len(summary.Failures) > 0 {
		ew.printf("\nFailed files:\n")
		for _, f := range summary.Failures {
			ew.printf("  %s: %s: %s\n", f.Path, f.Op, f.Error)
		}
	}
	return ew.err
}

// WriteJSON writes summary as a single indented JSON object.
func WriteJSON(w io.Writer, summary *codemod.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
