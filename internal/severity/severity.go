// Package severity provides the severity levels attached to load diagnostics.
//
// The levels are ordered from most to least severe:
//   - SeverityError: the document (or part of it) could not be read as written
//   - SeverityWarning: the value was kept but does not match what was expected
//   - SeverityInfo: informational notices about choices made while loading
package severity

import "fmt"

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	// SeverityError marks input that could not be loaded as written, such as
	// malformed YAML, a missing openapi version, or a value that does not
	// match its schema.
	SeverityError Severity = iota

	// SeverityWarning marks input that was accepted but looks wrong, such as
	// unknown fields or duplicate mapping keys.
	SeverityWarning

	// SeverityInfo marks informational messages.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name so structured output stays readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name produced by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("severity: unknown level %q", text)
	}
	return nil
}
