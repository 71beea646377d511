package document

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested document file does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrExists indicates a non-overwriting copy found its destination already present.
	ErrExists = errors.New("destination already exists")

	// ErrNameClash indicates a section uses the same name for a value and a child section.
	ErrNameClash = errors.New("name used for both a value and a section")
)

// ParseError reports a document file that exists but is structurally invalid.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
