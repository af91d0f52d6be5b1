// Package issues provides the diagnostic type reported while loading a document.
package issues

import (
	"fmt"

	"github.com/erraggy/oasload/internal/severity"
)

// Issue represents a single problem found while loading a document.
type Issue struct {
	// Pointer is the JSON pointer of the problematic node (e.g., "/paths/~1pets/get")
	Pointer string `json:"pointer" yaml:"pointer"`
	// Message is a human-readable description of the issue
	Message string `json:"message" yaml:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// Column is the 1-based column number in the source file (0 if unknown)
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
	// File is the source name (empty when reading from bytes or a reader)
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// Cause is the structured error behind the issue, if any
	Cause error `json:"-" yaml:"-"`
	// OperationContext names the operation or component the pointer falls
	// under. Nil when not applicable.
	OperationContext *OperationContext `json:"-" yaml:"-"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	pointer := i.Pointer
	if pointer == "" {
		pointer = "#"
	}
	if i.OperationContext != nil && !i.OperationContext.IsEmpty() {
		pointer = fmt.Sprintf("%s %s", pointer, i.OperationContext.String())
	}

	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d, col %d): %s", symbol, pointer, i.Line, i.Column, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, pointer, i.Message)
}

// Error implements error so an issue can be returned or wrapped directly.
func (i Issue) Error() string {
	return i.String()
}

// Unwrap returns the underlying cause.
func (i Issue) Unwrap() error {
	return i.Cause
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line:column" if file is set, "line:column" if only line is set,
// or the JSON pointer if location is unknown.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Pointer
	}
	if i.File != "" {
		return fmt.Sprintf("%s:%d:%d", i.File, i.Line, i.Column)
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}
