// Package oaserrors provides structured error types for oasload.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(). Most of them never surface as a returned error: the parser
// records them as the Cause of a diagnostic so callers can classify
// diagnostics the same way.
//
// # Error Categories
//
//   - ParseError: the YAML/JSON source could not be read into a tree
//   - ConversionError: a value does not fit the type its schema declares
//   - ReferenceError: a $ref could not be resolved, or resolves in a loop
//   - ConfigError: invalid parser options or command input
//
// # Usage with errors.As
//
//	for _, d := range result.Diagnostics {
//	    var convErr *oaserrors.ConversionError
//	    if errors.As(d.Cause, &convErr) {
//	        fmt.Printf("%s: expected %s\n", d.Pointer, convErr.Expected)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the source document is malformed.
	ErrParse = errors.New("parse error")

	// ErrConversion indicates a value could not be coerced to its declared type.
	ErrConversion = errors.New("conversion error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a $ref chain that loops back on itself.
	ErrCircularReference = errors.New("circular reference")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a source document that the YAML/JSON front end
// could not turn into a tree.
type ParseError struct {
	// Source is the file path or source identifier
	Source string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
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
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConversionError reports a value whose shape or text is incompatible with
// the type declared by its guiding schema. When a single conversion finds
// several mismatches, the first one is described and Count holds the total.
type ConversionError struct {
	// Pointer is the JSON pointer of the first mismatch, relative to the
	// converted value ("" when the value itself mismatched)
	Pointer string
	// Value is the offending value in its structural form
	Value any
	// Expected is the declared type (and format, if any), e.g. "integer/int32"
	Expected string
	// Count is the number of mismatches found in the converted value
	Count int
	// Message describes the mismatch
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Expected != "" {
		msg += fmt.Sprintf(": value %v is not a valid %s", e.Value, e.Expected)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Count > 1 {
		msg += fmt.Sprintf(" (and %d more)", e.Count-1)
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ReferenceError represents a $ref that could not be resolved.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// IsCircular is true if the reference chain loops back on itself
	IsCircular bool
	// IsExternal is true if the reference points outside the current document
	IsExternal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	} else if e.IsExternal {
		msg = "external reference not supported"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
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
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// ConfigError represents an invalid configuration or input.
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
