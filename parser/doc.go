// Package parser loads OpenAPI Specification 3.x documents (3.0, 3.1 and 3.2)
// from YAML or JSON into a typed object model.
//
// Loading never stops at the first problem. Malformed YAML, values of the
// wrong shape, unparseable runtime expressions and examples that do not match
// their schema all become [Diagnostic] entries on the [ParseResult], each
// tagged with the JSON pointer and, when known, the line and column where it
// was found. The Document is always returned and holds everything that could
// be loaded.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.yaml"),
//		parser.WithResolveReferences(true),
//	)
//	if err != nil {
//		log.Fatal(err) // the input could not be read at all
//	}
//	if result.Diagnostics.HasErrors() {
//		for _, d := range result.Diagnostics.Errors() {
//			fmt.Println(d)
//		}
//	}
//	fmt.Println(result.Document.Info.Title)
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	p.ReportUnknownFields = true
//	result1, _ := p.Parse("api1.yaml")
//	result2, _ := p.ParseReader(os.Stdin)
//
// # Field Dispatch
//
// Every object is loaded by routing each key of its mapping to exactly one
// handler: a fixed field of that name, otherwise the first matching pattern
// field (for example "x-" extensions, status codes or path templates). A
// value of the wrong shape is reported and the field keeps its zero value;
// the siblings are still loaded. Unclaimed keys are ignored unless
// WithReportUnknownFields is set.
//
// # Value Conversion
//
// Loosely typed values (example, examples, default, enum, const) are read
// structurally first and then converted toward the type their schema
// declares: "5" under an integer schema becomes int64(5), a date string
// becomes a time.Time, a "decimal" number becomes a decimal.Decimal, and so
// on. See [Convert] for the full rules.
//
// # Deferred Conversions
//
// A guiding schema is often a $ref to a component defined later in the
// document. Such values keep their structural form during the first pass and
// a conversion is queued. Once the whole document is loaded the queue is
// replayed in order against the document's own schema components, so the
// final value is the same as if the component had been defined first.
// Values whose reference never resolves keep their structural form; enable
// WithStrictDeferredReferences to get a warning for each of them.
// [DocumentStats] reports how many conversions were scheduled, applied,
// skipped and failed.
//
// # Reference Linking
//
// With WithResolveReferences, local component references are replaced by the
// component objects they name after the replay. A reference that would close
// a cycle keeps its placeholder so the linked document stays acyclic. External
// and unresolvable references are reported as warnings at their "$ref"
// pointer.
//
// # Extensions
//
// Extension values are kept structurally in the Extra map of their object.
// Register an [ExtensionParser] with WithExtensionParser to turn a specific
// extension into a typed value; a parser error is reported and the
// structural value is kept.
//
// # Source Locations
//
// ParseResult.SourceMap maps every JSON pointer in the document to its line
// and column, and to the position of the key that names it.
package parser
