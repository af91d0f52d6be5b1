// Package commands provides CLI command handlers for oasload.
package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasload"
	"github.com/erraggy/oasload/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// MarshalDocument marshals a document to bytes in the specified format
func MarshalDocument(doc any, format parser.SourceFormat) ([]byte, error) {
	if format == parser.SourceFormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// OutputSpecHeader writes the oasload version, specification path and OAS version.
func OutputSpecHeader(w io.Writer, specPath, version string) {
	Writef(w, "oasload version: %s\n", oasload.Version())
	Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	Writef(w, "OAS Version: %s\n", version)
}

// OutputSpecStats writes the document statistics, including the deferred
// conversion counters.
func OutputSpecStats(w io.Writer, sourceSize int64, stats parser.DocumentStats, loadTime time.Duration) {
	Writef(w, "Source Size: %s\n", parser.FormatBytes(sourceSize))
	Writef(w, "Paths: %d\n", stats.PathCount)
	if stats.WebhookCount > 0 {
		Writef(w, "Webhooks: %d\n", stats.WebhookCount)
	}
	Writef(w, "Operations: %d\n", stats.OperationCount)
	Writef(w, "Schemas: %d\n", stats.SchemaCount)
	Writef(w, "Components: %d\n", stats.ComponentCount)
	d := stats.Deferred
	Writef(w, "Deferred: %d scheduled, %d applied, %d skipped, %d failed\n", d.Scheduled, d.Applied, d.Skipped, d.Failed)
	Writef(w, "Load Time: %v\n", loadTime)
}
