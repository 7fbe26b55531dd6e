package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformedDocument indicates a raw value has the wrong shape for the
	// object it is being constructed into.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrReferenceNotFound indicates a JSON pointer did not lead to a value.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrUnsupportedReference indicates a reference into another document.
	ErrUnsupportedReference = errors.New("unsupported reference")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// MalformedDocumentError represents a raw value whose shape does not match
// the object the model expects at that location, such as a "properties" key
// holding a list or a "$ref" holding a number.
type MalformedDocumentError struct {
	// Path is the JSON pointer of the offending value (e.g., "/paths/~1pets/get/parameters")
	Path string
	// Kind is the kind of object being constructed (e.g., "Schema")
	Kind string
	// Message describes the structural problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedDocumentError) Error() string {
	msg := "malformed document"
	if e.Kind != "" {
		msg += " (" + e.Kind + ")"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// ReferenceError represents a failure to resolve a $ref.
// This includes missing targets, references into other documents, and
// circular references.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// RefType indicates the reference type: "local", "file", or "http"
	RefType string
	// IsNotFound is true if the pointer did not lead to a value
	IsNotFound bool
	// IsUnsupported is true if the reference points into another document
	IsUnsupported bool
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// Cycle is the chain of references that closed the cycle, starting and
	// ending with the same reference (e.g., [A, B, A])
	Cycle []string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	switch {
	case e.IsCircular:
		msg = "circular reference"
	case e.IsUnsupported:
		msg = "unsupported reference"
	case e.IsNotFound:
		msg = "reference not found"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if len(e.Cycle) > 0 {
		msg += " (" + strings.Join(e.Cycle, " -> ") + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrReferenceNotFound, ErrUnsupportedReference
// or ErrCircularReference when the corresponding flag is set.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrCircularReference:
		return e.IsCircular
	case ErrUnsupportedReference:
		return e.IsUnsupported
	case ErrReferenceNotFound:
		return e.IsNotFound
	}
	return false
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when reference expansion exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "ref_depth", "nesting_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
