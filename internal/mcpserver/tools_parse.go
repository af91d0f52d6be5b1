package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasload/parser"
)

type parseInput struct {
	Spec          specInput `json:"spec"                     jsonschema:"The OAS document to load"`
	ResolveRefs   *bool     `json:"resolve_refs,omitempty"   jsonschema:"Link $ref placeholders to the components they name"`
	StrictRefs    *bool     `json:"strict_refs,omitempty"    jsonschema:"Warn when an example's guiding $ref never resolves"`
	ReportUnknown *bool     `json:"report_unknown,omitempty" jsonschema:"Warn about fields no handler recognizes"`
	Severity      string    `json:"severity,omitempty"       jsonschema:"Only return diagnostics of this severity (error, warning or info)"`
	GroupBy       string    `json:"group_by,omitempty"       jsonschema:"Return diagnostic counts grouped by severity or component instead of individual diagnostics"`
	Offset        int       `json:"offset,omitempty"         jsonschema:"Skip the first N diagnostics (for pagination)"`
	Limit         int       `json:"limit,omitempty"          jsonschema:"Maximum number of diagnostics to return (default 100)"`
	Full          bool      `json:"full,omitempty"           jsonschema:"Also return the loaded document as JSON"`
}

type parseDiagnostic struct {
	Severity string `json:"severity"`
	Pointer  string `json:"pointer"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Context  string `json:"context,omitempty"`
}

type parseOutput struct {
	Version        string               `json:"version"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Format         string               `json:"format"`
	PathCount      int                  `json:"path_count"`
	WebhookCount   int                  `json:"webhook_count"`
	OperationCount int                  `json:"operation_count"`
	SchemaCount    int                  `json:"schema_count"`
	ComponentCount int                  `json:"component_count"`
	Deferred       parser.DeferredStats `json:"deferred"`
	ErrorCount     int                  `json:"error_count"`
	WarningCount   int                  `json:"warning_count"`
	Matched        int                  `json:"matched"`
	Returned       int                  `json:"returned"`
	Diagnostics    []parseDiagnostic    `json:"diagnostics,omitempty"`
	Groups         []groupCount         `json:"groups,omitempty"`
	FullDocument   string               `json:"full_document,omitempty"`
}

// setting returns the requested value of an optional switch, or def.
func setting(requested *bool, def bool) bool {
	if requested != nil {
		return *requested
	}
	return def
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	var filter *parser.Severity
	if input.Severity != "" {
		var sev parser.Severity
		if err := sev.UnmarshalText([]byte(strings.ToLower(input.Severity))); err != nil {
			return errResult(fmt.Errorf("invalid severity %q; valid values: error, warning, info", input.Severity)), parseOutput{}, nil
		}
		filter = &sev
	}
	groupKey, err := diagnosticGrouping(input.GroupBy)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	settings := parseSettings{
		ResolveRefs:   setting(input.ResolveRefs, cfg.ResolveRefs),
		StrictRefs:    setting(input.StrictRefs, cfg.StrictRefs),
		ReportUnknown: setting(input.ReportUnknown, cfg.ReportUnknownFields),
	}
	result, err := input.Spec.resolve(settings)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Version:        result.Version,
		Format:         string(result.SourceFormat),
		PathCount:      result.Stats.PathCount,
		WebhookCount:   result.Stats.WebhookCount,
		OperationCount: result.Stats.OperationCount,
		SchemaCount:    result.Stats.SchemaCount,
		ComponentCount: result.Stats.ComponentCount,
		Deferred:       result.Stats.Deferred,
		ErrorCount:     result.Diagnostics.Count(parser.SeverityError),
		WarningCount:   result.Diagnostics.Count(parser.SeverityWarning),
	}
	if info := result.Document.Info; info != nil {
		output.Title = info.Title
		output.Description = info.Description
	}

	matched := result.Diagnostics
	if filter != nil {
		matched = matched.Filter(*filter)
	}
	output.Matched = len(matched)

	if groupKey != nil {
		output.Groups = groupAndSort(matched, groupKey)
	} else {
		page := paginate(matched, input.Offset, input.Limit)
		output.Diagnostics = makeSlice[parseDiagnostic](len(page))
		for _, d := range page {
			output.Diagnostics = append(output.Diagnostics, summarizeDiagnostic(d))
		}
		output.Returned = len(output.Diagnostics)
	}

	if input.Full {
		data, err := json.MarshalIndent(result.Document, "", "  ")
		if err != nil {
			return errResult(fmt.Errorf("marshaling document: %w", err)), parseOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}

func summarizeDiagnostic(d parser.Diagnostic) parseDiagnostic {
	out := parseDiagnostic{
		Severity: d.Severity.String(),
		Pointer:  d.Pointer,
		Message:  d.Message,
		Line:     d.Line,
		Column:   d.Column,
	}
	if d.OperationContext != nil {
		out.Context = d.OperationContext.String()
	}
	return out
}

// diagnosticGrouping returns the key function for a group_by value, or nil
// when no grouping was requested.
func diagnosticGrouping(groupBy string) (func(parser.Diagnostic) string, error) {
	switch strings.ToLower(groupBy) {
	case "":
		return nil, nil
	case "severity":
		return func(d parser.Diagnostic) string { return d.Severity.String() }, nil
	case "component":
		return func(d parser.Diagnostic) string {
			switch c := d.OperationContext; {
			case c == nil:
				return "document"
			case c.Component != "":
				return c.Component
			case c.Method != "":
				return c.Method + " " + c.Path
			default:
				return c.Path
			}
		}, nil
	}
	return nil, fmt.Errorf("invalid group_by value %q; valid values: severity, component", groupBy)
}
