package lister

import (
	"errors"
	"fmt"
)

var (
	// ErrPath marks a root path that is missing, not a directory, or unreadable.
	ErrPath = errors.New("root path unavailable")

	// ErrMetadata marks a child whose timestamps could not be read.
	ErrMetadata = errors.New("folder metadata unavailable")

	// ErrNotDirectory is the underlying cause when the root exists but is a file.
	ErrNotDirectory = errors.New("not a directory")
)

// Common operation names for consistent logging and error reporting
const (
	OpStat      = "stat"      // Reading the metadata of a path
	OpReadDir   = "readdir"   // Enumerating directory children
	OpBirthTime = "birthtime" // Reading creation time
)

// Error carries the kind of failure (ErrPath or ErrMetadata) together with the
// operation and the path that failed.
type Error struct {
	Kind error  // ErrPath or ErrMetadata
	Op   string // Operation that failed (e.g., "stat", "readdir")
	Path string // Affected path
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying filesystem error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's kind, so callers can write
// errors.Is(err, lister.ErrPath).
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func pathError(op, path string, err error) *Error {
	return &Error{Kind: ErrPath, Op: op, Path: path, Err: err}
}

func metadataError(op, path string, err error) *Error {
	return &Error{Kind: ErrMetadata, Op: op, Path: path, Err: err}
}
