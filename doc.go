// Package oasload loads OpenAPI Specification 3.x documents into a typed,
// cross-referenced object model without aborting on bad input.
//
// A document is read through a YAML/JSON front end into a tree of scalars,
// sequences and mappings. Every mapping is routed through per-type field
// tables into the domain objects of the parser package, and every loosely
// typed value (examples, defaults, enums) is coerced toward the type its
// schema declares. Problems never stop the load: each one becomes a
// diagnostic tagged with the JSON pointer (and line/column) where it was
// found.
//
// # Forward references
//
// Examples are often guided by a schema that is only a $ref to a component
// defined later in the document:
//
//	paths:
//	  /pets:
//	    get:
//	      responses:
//	        "200":
//	          content:
//	            application/json:
//	              schema:
//	                $ref: "#/components/schemas/Pet"
//	              example:
//	                age: "5"
//	components:
//	  schemas:
//	    Pet:
//	      properties:
//	        age: {type: integer}
//
// The loader converts such values structurally on the first pass, records a
// deferred conversion, and replays it once all components exist. After the
// load the example above holds age as the integer 5.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, d := range result.Diagnostics {
//		fmt.Println(d)
//	}
//	fmt.Println(result.Document.Info.Title)
//
// # Packages
//
//   - parser: tree front end, field dispatch, value conversion, deferred
//     replay and the OAS 3.x object model
//   - oaserrors: structured error types usable with errors.Is and errors.As
//
// The oasload command line tool wraps the parser and can also serve it to
// MCP clients over stdio.
package oasload
