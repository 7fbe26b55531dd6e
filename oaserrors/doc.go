// Package oaserrors provides structured error types for the oasgraph library.
//
// Import path: github.com/erraggy/oasgraph/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides four core error types:
//
//   - [MalformedDocumentError]: a raw value has the wrong shape for its location
//   - [ReferenceError]: $ref resolution failures, unsupported and circular references
//   - [ResourceLimitError]: Resource exhaustion (reference depth)
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrMalformedDocument]: Matches any [MalformedDocumentError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrReferenceNotFound]: Matches [ReferenceError] with IsNotFound=true
//   - [ErrUnsupportedReference]: Matches [ReferenceError] with IsUnsupported=true
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	doc, err := parser.Construct(raw)
//	if errors.Is(err, oaserrors.ErrMalformedDocument) {
//	    // Handle structural problem
//	}
//
// Extract the cycle from a circular reference:
//
//	_, err := doc.ResolveReference("#/components/schemas/Node", true)
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) && refErr.IsCircular {
//	    fmt.Println(strings.Join(refErr.Cycle, " -> "))
//	}
//
// # Error Chaining
//
// All error types except [ResourceLimitError] support error chaining via the
// Cause field and Unwrap() method.
package oaserrors
