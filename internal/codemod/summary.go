package codemod

import "time"

// FileChangeReport records the replacements made in one file.
type FileChangeReport struct {
	Path         string         `json:"path"`
	Replacements int            `json:"replacements"`
	ByEntry      map[string]int `json:"by_entry,omitempty"`
}

// FileFailure records a file the run could not process.
type FileFailure struct {
	Path  string `json:"path"`
	Op    string `json:"op"`
	Error string `json:"error"`

	Err error `json:"-"`
}

// RunSummary is the outcome of a run. Files and Failures are in discovery order.
type RunSummary struct {
	Root         string             `json:"root"`
	DryRun       bool               `json:"dry_run"`
	FilesScanned int                `json:"files_scanned"`
	FilesChanged int                `json:"files_changed"`
	Replacements int                `json:"total_replacements"`
	Files        []FileChangeReport `json:"files"`
	Failures     []FileFailure      `json:"failures,omitempty"`
	Duration     time.Duration      `json:"duration_ns"`
}

// Failed reports whether any file could not be processed.
func (s *RunSummary) Failed() bool {
	return len(s.Failures) > 0
}

// ByEntry totals replacements per singular key across all files.
func (s *RunSummary) ByEntry() map[string]int {
	totals := make(map[string]int)
	for _, f := range s.Files {
		for k, n := range f.ByEntry {
			totals[k] += n
		}
	}
	return totals
}

func newFailure(err *IOError) FileFailure {
	return FileFailure{
		Path:  err.Path,
		Op:    err.Op,
		Error: err.Err.Error(),
		Err:   err,
	}
}
