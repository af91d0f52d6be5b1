package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/oasload/oaserrors"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	// Configuration options
	resolveReferences bool
	reportUnknown     bool
	strictRefs        bool
	extensions        map[string]ExtensionParser
	logger            Logger

	// Source identification
	sourceName *string // Override SourcePath in the result
}

// ParseWithOptions parses an OpenAPI specification using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithResolveReferences(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		ResolveReferences:        cfg.resolveReferences,
		ReportUnknownFields:      cfg.reportUnknown,
		StrictDeferredReferences: cfg.strictRefs,
		Extensions:               cfg.extensions,
		Logger:                   cfg.logger,
	}

	// A source name override must be known before loading, since it is
	// recorded in every source location and diagnostic.
	if cfg.sourceName != nil {
		data, format, err := cfg.read()
		if err != nil {
			return nil, err
		}
		return p.parseBytes(data, *cfg.sourceName, format), nil
	}

	// Route to appropriate parsing method based on input source
	switch {
	case cfg.filePath != nil:
		return p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		return p.ParseReader(cfg.reader)
	default:
		return p.ParseBytes(cfg.bytes)
	}
}

// read returns the content of the configured input source and its format.
func (cfg *parseConfig) read() ([]byte, SourceFormat, error) {
	var data []byte
	var err error
	format := SourceFormatUnknown
	switch {
	case cfg.filePath != nil:
		data, err = readFile(*cfg.filePath)
		format = detectFormatFromPath(*cfg.filePath)
	case cfg.reader != nil:
		data, err = io.ReadAll(cfg.reader)
		if err != nil {
			err = fmt.Errorf("parser: failed to read data: %w", err)
		}
	default:
		data = cfg.bytes
	}
	if err != nil {
		return nil, format, err
	}
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	return data, format, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := validateSingleInputSource(
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateSingleInputSource ensures exactly one input source is specified.
func validateSingleInputSource(sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		}
	case count > 1:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   count,
			Message: "must specify exactly one input source",
		}
	}
	return nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "WithFilePath", Message: "path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "WithBytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithResolveReferences enables or disables the reference link pass, which
// replaces $ref placeholders with the component objects they name.
// Default: false
func WithResolveReferences(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.resolveReferences = enabled
		return nil
	}
}

// WithReportUnknownFields enables warnings for fields that no handler
// recognizes.
// Default: false
func WithReportUnknownFields(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.reportUnknown = enabled
		return nil
	}
}

// WithStrictDeferredReferences enables a warning for every deferred
// conversion whose guiding schema reference never resolves.
// Default: false
func WithStrictDeferredReferences(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.strictRefs = enabled
		return nil
	}
}

// WithExtensionParser registers a parser for the value of one specification
// extension. The name must start with "x-".
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("api.yaml"),
//	    parser.WithExtensionParser("x-rate-limit", func(v any, _ parser.OASVersion) (any, error) {
//	        n, ok := v.(int64)
//	        if !ok {
//	            return nil, fmt.Errorf("expected an integer, got %T", v)
//	        }
//	        return time.Duration(n) * time.Second, nil
//	    }),
//	)
func WithExtensionParser(name string, fn ExtensionParser) Option {
	return func(cfg *parseConfig) error {
		if !strings.HasPrefix(name, "x-") {
			return &oaserrors.ConfigError{Option: "WithExtensionParser", Value: name, Message: `extension names must start with "x-"`}
		}
		if fn == nil {
			return &oaserrors.ConfigError{Option: "WithExtensionParser", Value: name, Message: "parser cannot be nil"}
		}
		if cfg.extensions == nil {
			cfg.extensions = make(map[string]ExtensionParser)
		}
		cfg.extensions[name] = fn
		return nil
	}
}

// WithExtensionParsers registers several extension parsers at once.
func WithExtensionParsers(parsers map[string]ExtensionParser) Option {
	return func(cfg *parseConfig) error {
		for _, name := range sortedNames(parsers) {
			if err := WithExtensionParser(name, parsers[name])(cfg); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// If nil, logging is disabled (default).
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithSourceName overrides the SourcePath of the result and the file name
// recorded in source locations and diagnostics.
// Useful when parsing from bytes or a reader.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
