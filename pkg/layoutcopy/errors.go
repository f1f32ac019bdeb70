// Package layoutcopy provides custom error types for better error handling and reporting.
package layoutcopy

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError reports a missing input document. It is returned before any
// host interaction takes place.
type NotFoundError struct {
	Role string // "source" or "target"
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s document not found: %s", e.Role, e.Path)
}

// NewNotFoundError creates a new not-found error for an input document
func NewNotFoundError(role, path string) error {
	return &NotFoundError{Role: role, Path: path}
}

// HostError represents a failure of the external document host
type HostError struct {
	Op    string
	Cause error
}

func (e *HostError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("host error during %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("host error during %s", e.Op)
}

func (e *HostError) Unwrap() error {
	return e.Cause
}

// NewHostError creates a new host error
func NewHostError(op string, cause error) error {
	return &HostError{Op: op, Cause: cause}
}

// DocumentError represents an error while reading or writing a packaged document
type DocumentError struct {
	Op    string
	Part  string
	Cause error
}

func (e *DocumentError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("document error during %s of %s: %v", e.Op, e.Part, e.Cause)
	}
	return fmt.Sprintf("document error during %s: %v", e.Op, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(op, part string, cause error) error {
	return &DocumentError{Op: op, Part: part, Cause: cause}
}

// PatchError represents a fatal failure of the structural border patch.
// Stage identifies the step that failed (archive read, XML parse, rewrite).
type PatchError struct {
	Stage string
	Path  string
	Cause error
}

func (e *PatchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("border patch failed during %s (%s): %v", e.Stage, e.Path, e.Cause)
	}
	return fmt.Sprintf("border patch failed during %s: %v", e.Stage, e.Cause)
}

func (e *PatchError) Unwrap() error {
	return e.Cause
}

// NewPatchError creates a new patch error
func NewPatchError(stage, path string, cause error) error {
	return &PatchError{Stage: stage, Path: path, Cause: cause}
}

// contextError wraps an error with the operation that produced it plus
// free-form details, so failures surface full diagnostic context.
type contextError struct {
	operation string
	details   map[string]interface{}
	cause     error
}

func (e *contextError) Error() string {
	if len(e.details) == 0 {
		return fmt.Sprintf("%s: %v", e.operation, e.cause)
	}
	keys := make([]string, 0, len(e.details))
	for k := range e.details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.details[k]))
	}
	return fmt.Sprintf("%s [%s]: %v", e.operation, strings.Join(parts, " "), e.cause)
}

func (e *contextError) Unwrap() error {
	return e.cause
}

// WithContext wraps an error with operation context and optional details
func WithContext(err error, operation string, details map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &contextError{operation: operation, details: details, cause: err}
}
