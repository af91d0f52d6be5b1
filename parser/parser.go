package parser

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasload/oaserrors"
)

// Parser handles OpenAPI specification parsing
type Parser struct {
	// ResolveReferences replaces $ref placeholders with the component objects
	// they name once loading is complete. References that cannot be resolved
	// are reported as warnings.
	// Default: false
	ResolveReferences bool
	// ReportUnknownFields adds a warning for every field that no handler
	// recognizes. Unknown fields are otherwise ignored.
	// Default: false
	ReportUnknownFields bool
	// StrictDeferredReferences adds a warning when a value's guiding schema
	// is a reference that never resolves. Such values otherwise keep their
	// structural form silently.
	// Default: false
	StrictDeferredReferences bool
	// Extensions maps specification extension names ("x-...") to parsers
	// for their values. Unregistered extensions keep their structural value.
	Extensions map[string]ExtensionParser
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// SourceFormat represents the format of the source OpenAPI specification file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the loaded document and everything learned while
// loading it.
//
// A ParseResult is returned for any readable input, however malformed.
// Check Diagnostics (or Diagnostics.HasErrors) to decide whether the
// Document can be trusted.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the openapi field as written (e.g., "3.0.3", "3.1.0")
	Version string
	// OASVersion is the enumerated version of the OpenAPI specification
	OASVersion OASVersion
	// Document is the loaded document. It is never nil; a source that could
	// not be read as YAML or JSON yields an empty Document.
	Document *Document
	// Diagnostics lists every problem found, in the order found.
	Diagnostics Diagnostics
	// Stats contains statistical information about the document
	Stats DocumentStats
	// SourceMap maps JSON pointers to source locations.
	SourceMap *SourceMap
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Parse parses an OpenAPI specification file
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := readFile(specPath)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}

	format := detectFormatFromPath(specPath)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	res := p.parseBytes(data, specPath, format)
	res.LoadTime = loadTime
	return res, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

// ParseReader parses an OpenAPI specification from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	format := detectFormatFromContent(data)
	res := p.parseBytes(data, sourceNameFor("ParseReader", format), format)
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses an OpenAPI specification from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	format := detectFormatFromContent(data)
	return p.parseBytes(data, sourceNameFor("ParseBytes", format), format), nil
}

func sourceNameFor(method string, format SourceFormat) string {
	if format == SourceFormatJSON {
		return method + ".json"
	}
	return method + ".yaml"
}

// parseBytes runs the full load of data: tree building, version detection,
// field dispatch, deferred replay and, when enabled, reference linking.
// Problems with the content become diagnostics; it never fails.
func (p *Parser) parseBytes(data []byte, sourceName string, format SourceFormat) *ParseResult {
	c := newParseContext(p, sourceName)
	defer c.release()

	result := &ParseResult{
		SourcePath:   sourceName,
		SourceFormat: format,
		Document:     &Document{},
		SourceMap:    c.sourceMap,
		SourceSize:   int64(len(data)),
	}
	defer func() { result.Diagnostics = c.diagnostics }()

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		perr := newParseError(sourceName, err)
		c.addDiagnosticAtPosition("", perr.Line, perr.Column, SeverityError, perr.Error(), perr)
		return result
	}
	if root.Kind == 0 {
		err := &oaserrors.ParseError{Source: sourceName, Message: "document is empty"}
		c.addDiagnosticAt("", SeverityError, err.Error(), err)
		return result
	}

	tree := c.buildNode(&root, "")
	raw, version, err := detectVersion(tree)
	result.Version = raw
	result.OASVersion = version
	if err != nil {
		ptr := "/openapi"
		if raw == "" {
			ptr = ""
		}
		c.addDiagnosticAt(ptr, SeverityError, err.Error(), err)
		// Best effort for a missing or unknown 3.x version; nothing for a
		// non-mapping root or a Swagger 2.0 document.
		m, ok := tree.(*mapNode)
		if !ok || m.get("swagger") != nil {
			return result
		}
	} else {
		c.logger.Debug("detected OpenAPI version", "version", raw, "source", sourceName)
	}
	c.version = version

	doc := loadDocument(c, tree)
	c.replay(doc.SchemaResolver())
	if p.ResolveReferences {
		c.linkReferences(doc)
	}

	result.Document = doc
	result.Stats = GetDocumentStats(doc)
	result.Stats.Deferred = c.deferred.stats
	return result
}

var yamlErrorPosition = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)

// newParseError wraps a YAML decoding error, recovering the line and column
// from its message when present.
func newParseError(source string, err error) *oaserrors.ParseError {
	perr := &oaserrors.ParseError{Source: source, Message: "invalid YAML or JSON", Cause: err}
	if m := yamlErrorPosition.FindStringSubmatch(err.Error()); m != nil {
		perr.Line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			perr.Column, _ = strconv.Atoi(m[2])
		}
	}
	return perr
}
