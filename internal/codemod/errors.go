package codemod

import "fmt"

// IOError reports a file that could not be read, inspected or written.
type IOError struct {
	Op   string // "read", "stat", "write" or "walk"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
