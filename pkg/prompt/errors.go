package prompt

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound matches every TemplateNotFoundError via errors.Is.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateNotFoundError is returned when neither the override nor the
// built-in location holds the requested template.
type TemplateNotFoundError struct {
	// RelativePath is the template that was requested
	RelativePath string
	// CustomPath is the override location that was tried first
	CustomPath string
	// BuiltInPath is the shipped location that was tried second
	BuiltInPath string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %s not found: tried %s and %s", e.RelativePath, e.CustomPath, e.BuiltInPath)
}

func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// TemplateError represents a failure reading a template that does exist.
type TemplateError struct {
	// Op is the operation that failed (read)
	Op string
	// Path is the file involved
	Path string
	// Err is the underlying error
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}
