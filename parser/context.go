package parser

import (
	"errors"

	"github.com/erraggy/oasload/internal/issues"
	"github.com/erraggy/oasload/internal/pathutil"
	"github.com/erraggy/oasload/internal/severity"
	"github.com/erraggy/oasload/oaserrors"
)

// Diagnostic is a single problem found while loading a document, tagged with
// the JSON pointer (and, when known, line and column) where it was found.
type Diagnostic = issues.Issue

// OperationContext names the operation or component a diagnostic falls under.
type OperationContext = issues.OperationContext

// Severity indicates how serious a diagnostic is.
type Severity = severity.Severity

const (
	// SeverityError marks input that could not be loaded as written.
	SeverityError = severity.SeverityError
	// SeverityWarning marks input that was loaded but looks wrong.
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo marks informational notices.
	SeverityInfo = severity.SeverityInfo
)

// parseContext is the mutable state of one parse: the diagnostic sink, the
// location stack, the deferred conversion queue and the extension registry.
// It is never shared between parses.
type parseContext struct {
	diagnostics Diagnostics
	path        *pathutil.PathBuilder
	// deferred is nil when loading a fragment outside a full document parse;
	// scheduling is then skipped.
	deferred   *deferredQueue
	extensions map[string]ExtensionParser
	version    OASVersion
	logger     Logger
	sourceMap  *SourceMap
	sourceName string

	// aliasDepth is the number of aliases being expanded around the node
	// currently built; aliasNodes counts nodes built under any alias.
	aliasDepth    int
	aliasNodes    int
	aliasOverflow bool

	reportUnknown bool
	strictRefs    bool
}

func newParseContext(p *Parser, sourceName string) *parseContext {
	return &parseContext{
		path:          pathutil.Get(),
		deferred:      &deferredQueue{},
		extensions:    p.Extensions,
		logger:        p.log(),
		sourceMap:     NewSourceMap(),
		sourceName:    sourceName,
		reportUnknown: p.ReportUnknownFields,
		strictRefs:    p.StrictDeferredReferences,
	}
}

// release returns pooled resources. The context must not be used afterwards.
func (c *parseContext) release() {
	pathutil.Put(c.path)
	c.path = nil
}

// push enters a named child of the current location.
func (c *parseContext) push(token string) {
	c.path.Push(token)
}

// pushIndex enters an indexed child of the current location.
func (c *parseContext) pushIndex(i int) {
	c.path.PushIndex(i)
}

// pop leaves the current location.
func (c *parseContext) pop() {
	c.path.Pop()
}

// pointer returns the JSON pointer of the current location.
func (c *parseContext) pointer() string {
	return c.path.String()
}

// addError records an error diagnostic at the current location.
func (c *parseContext) addError(msg string, cause error) {
	c.addDiagnosticAt(c.pointer(), SeverityError, msg, cause)
}

// addWarning records a warning diagnostic at the current location.
func (c *parseContext) addWarning(msg string, cause error) {
	c.addDiagnosticAt(c.pointer(), SeverityWarning, msg, cause)
}

// addDiagnosticAt records a diagnostic at ptr, taking line and column from the
// source map (or the nearest ancestor that is in it).
func (c *parseContext) addDiagnosticAt(ptr string, sev Severity, msg string, cause error) {
	loc := c.sourceMap.nearest(ptr)
	c.addDiagnosticAtPosition(ptr, loc.Line, loc.Column, sev, msg, cause)
}

func (c *parseContext) addDiagnosticAtPosition(ptr string, line, column int, sev Severity, msg string, cause error) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Pointer:          ptr,
		Message:          msg,
		Severity:         sev,
		Line:             line,
		Column:           column,
		File:             c.sourceName,
		Cause:            cause,
		OperationContext: issues.ContextFromPointer(ptr),
	})
}

// conversionFailed records err, returned by convert for the value at the
// current location, as an error diagnostic at the pointer of the mismatch.
func (c *parseContext) conversionFailed(err error) {
	ptr := c.pointer()
	var convErr *oaserrors.ConversionError
	if errors.As(err, &convErr) {
		abs := *convErr
		abs.Pointer = ptr + convErr.Pointer
		ptr = abs.Pointer
		err = &abs
	}
	c.addDiagnosticAt(ptr, SeverityError, err.Error(), err)
}

// Diagnostics is the ordered list of diagnostics produced by a parse.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (d Diagnostics) HasErrors() bool {
	for _, diag := range d {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error diagnostics.
func (d Diagnostics) Errors() Diagnostics {
	return d.Filter(SeverityError)
}

// Warnings returns only the warning diagnostics.
func (d Diagnostics) Warnings() Diagnostics {
	return d.Filter(SeverityWarning)
}

// Count returns the number of diagnostics with the given severity.
func (d Diagnostics) Count(sev Severity) int {
	n := 0
	for _, diag := range d {
		if diag.Severity == sev {
			n++
		}
	}
	return n
}

// At returns the diagnostics recorded at exactly ptr.
func (d Diagnostics) At(ptr string) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Pointer == ptr {
			out = append(out, diag)
		}
	}
	return out
}

// Filter returns only the diagnostics with the given severity.
func (d Diagnostics) Filter(sev Severity) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Severity == sev {
			out = append(out, diag)
		}
	}
	return out
}
