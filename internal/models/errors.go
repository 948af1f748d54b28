package models

import "fmt"

// ParseError indicates a script could not be parsed. The file is skipped
// and the batch continues.
type ParseError struct {
	Path string
	Err  error
}

// Error returns a human-readable description
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error { return e.Err }

// FilesystemError indicates a file could not be read or written. The file
// is skipped and the batch continues.
type FilesystemError struct {
	Path string
	Op   string // "read" or "write"
	Err  error
}

// Error returns a human-readable description
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *FilesystemError) Unwrap() error { return e.Err }
