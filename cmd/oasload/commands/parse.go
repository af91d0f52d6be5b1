package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/oasload/parser"
)

// ErrLoadErrors is returned by HandleParse when the document loaded with
// error diagnostics.
var ErrLoadErrors = errors.New("document loaded with errors")

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	Format        string
	ResolveRefs   bool
	StrictRefs    bool
	ReportUnknown bool
	Document      bool
	Quiet         bool
	Debug         bool
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
// Returns the FlagSet and a ParseFlags struct with bound flag variables.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.ResolveRefs, "resolve-refs", false, "link $ref placeholders to the components they name")
	fs.BoolVar(&flags.StrictRefs, "strict-refs", false, "warn when an example's guiding $ref never resolves")
	fs.BoolVar(&flags.ReportUnknown, "report-unknown", false, "warn about fields no handler recognizes")
	fs.BoolVar(&flags.Document, "document", false, "include the loaded document in the output")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output errors and the requested document")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output errors and the requested document")
	fs.BoolVar(&flags.Debug, "debug", false, "log parser activity to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasload parse [flags] <file|->\n\n")
		Writef(output, "Load an OpenAPI 3.x document and report its diagnostics.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasload parse openapi.yaml\n")
		Writef(output, "  oasload parse --strict-refs --report-unknown openapi.yaml\n")
		Writef(output, "  oasload parse --format json --document openapi.yaml\n")
		Writef(output, "  cat openapi.yaml | oasload parse -q --document -\n")
		Writef(output, "\nPipelining:\n")
		Writef(output, "  - Use '-' as the file path to read from stdin\n")
		Writef(output, "  - Use --quiet/-q to suppress the summary; errors are always written to stderr\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Loaded without errors (warnings allowed)\n")
		Writef(output, "  1    Input could not be read, or the document has error diagnostics\n")
	}

	return fs, flags
}

// parseReport is the structured (json/yaml) output of the parse command.
type parseReport struct {
	Specification string               `json:"specification" yaml:"specification"`
	Version       string               `json:"version" yaml:"version"`
	Format        parser.SourceFormat  `json:"format" yaml:"format"`
	Stats         parser.DocumentStats `json:"stats" yaml:"stats"`
	Diagnostics   parser.Diagnostics   `json:"diagnostics" yaml:"diagnostics"`
	Document      *parser.Document     `json:"document,omitempty" yaml:"document,omitempty"`
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	return runParse(args, os.Stdin, os.Stdout, os.Stderr)
}

func runParse(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupParseFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	opts := []parser.Option{
		parser.WithResolveReferences(flags.ResolveRefs),
		parser.WithStrictDeferredReferences(flags.StrictRefs),
		parser.WithReportUnknownFields(flags.ReportUnknown),
	}
	if flags.Debug {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, parser.WithLogger(parser.NewSlogAdapter(slog.New(handler))))
	}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(stdin))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		if specPath == StdinFilePath {
			return fmt.Errorf("parsing stdin: %w", err)
		}
		return fmt.Errorf("parsing file: %w", err)
	}

	if flags.Format != FormatText {
		report := parseReport{
			Specification: FormatSpecPath(specPath),
			Version:       result.Version,
			Format:        result.SourceFormat,
			Stats:         result.Stats,
			Diagnostics:   result.Diagnostics,
		}
		if flags.Document {
			report.Document = result.Document
		}
		if err := OutputStructured(stdout, report, flags.Format); err != nil {
			return err
		}
	} else {
		writeTextReport(stdout, stderr, specPath, result, flags)
	}

	if result.Diagnostics.HasErrors() {
		return ErrLoadErrors
	}
	return nil
}

// writeTextReport prints the summary and diagnostics to stderr and, when
// requested, the loaded document as JSON to stdout.
func writeTextReport(stdout, stderr io.Writer, specPath string, result *parser.ParseResult, flags *ParseFlags) {
	// Errors are always printed, even in quiet mode.
	if errs := result.Diagnostics.Errors(); len(errs) > 0 {
		Writef(stderr, "Errors:\n")
		for _, d := range errs {
			Writef(stderr, "  %s\n", d)
		}
		Writef(stderr, "\n")
	}

	if !flags.Quiet {
		Writef(stderr, "OpenAPI Document Loader\n")
		Writef(stderr, "=======================\n\n")
		OutputSpecHeader(stderr, specPath, result.Version)
		OutputSpecStats(stderr, result.SourceSize, result.Stats, result.LoadTime)
		if info := result.Document.Info; info != nil {
			Writef(stderr, "Title: %s\n", info.Title)
			if info.Summary != "" {
				Writef(stderr, "Summary: %s\n", info.Summary)
			}
			Writef(stderr, "Version: %s\n", info.Version)
		}
		Writef(stderr, "\n")

		var notes parser.Diagnostics
		for _, d := range result.Diagnostics {
			if d.Severity != parser.SeverityError {
				notes = append(notes, d)
			}
		}
		if len(notes) > 0 {
			Writef(stderr, "Warnings:\n")
			for _, d := range notes {
				Writef(stderr, "  %s\n", d)
			}
			Writef(stderr, "\n")
		}
	}

	if flags.Document {
		data, err := MarshalDocument(result.Document, parser.SourceFormatJSON)
		if err != nil {
			Writef(stderr, "marshaling document: %v\n", err)
			return
		}
		Writef(stdout, "%s\n", data)
	}

	if !flags.Quiet && !result.Diagnostics.HasErrors() {
		Writef(stderr, "Loading completed successfully!\n")
	}
}
