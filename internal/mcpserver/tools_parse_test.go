package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasload/parser"
)

// forwardRefSpec's example is guided by a schema declared after it.
const forwardRefSpec = `openapi: 3.1.0
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
              example:
                age: "5"
components:
  schemas:
    Pet:
      type: object
      properties:
        age:
          type: integer
`

// brokenSpec has two conversion errors and, when unknown fields are
// reported, one warning.
const brokenSpec = `openapi: 3.1.0
info:
  title: Broken
  version: "1.0"
  colour: blue
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
              example:
                age: "five"
components:
  schemas:
    Pet:
      type: object
      properties:
        age:
          type: integer
      example:
        age: "six"
`

func boolPtr(b bool) *bool { return &b }

func callParse(t *testing.T, input parseInput) parseOutput {
	t.Helper()
	result, output, err := handleParse(context.Background(), nil, input)
	require.NoError(t, err)
	require.Nil(t, result, "unexpected error result")
	return output
}

func TestParseTool_Summary(t *testing.T) {
	specCache.reset()
	output := callParse(t, parseInput{Spec: specInput{File: "../../parser/testdata/petstore.yaml"}})

	assert.Equal(t, "3.0.3", output.Version)
	assert.Equal(t, "Petstore API", output.Title)
	assert.Equal(t, "yaml", output.Format)
	assert.Equal(t, 2, output.PathCount)
	assert.Equal(t, 3, output.OperationCount)
	assert.Equal(t, 2, output.SchemaCount)
	assert.Equal(t, 6, output.ComponentCount)
	assert.Equal(t, parser.DeferredStats{Scheduled: 2, Applied: 2}, output.Deferred)
	assert.Zero(t, output.ErrorCount)
	assert.Zero(t, output.WarningCount)
	assert.Empty(t, output.Diagnostics)
	assert.Empty(t, output.FullDocument)
}

func TestParseTool_ForwardReference(t *testing.T) {
	specCache.reset()
	output := callParse(t, parseInput{Spec: specInput{Content: forwardRefSpec}})

	assert.Equal(t, parser.DeferredStats{Scheduled: 1, Applied: 1}, output.Deferred)
	assert.Zero(t, output.ErrorCount)
	assert.Equal(t, 1, output.OperationCount)
}

func TestParseTool_Diagnostics(t *testing.T) {
	specCache.reset()
	spec := specInput{Content: brokenSpec}

	t.Run("all", func(t *testing.T) {
		output := callParse(t, parseInput{Spec: spec, ReportUnknown: boolPtr(true)})
		assert.Equal(t, 2, output.ErrorCount)
		assert.Equal(t, 1, output.WarningCount)
		assert.Equal(t, 3, output.Matched)
		assert.Equal(t, 3, output.Returned)
		require.Len(t, output.Diagnostics, 3)

		pointers := make([]string, 0, len(output.Diagnostics))
		for _, d := range output.Diagnostics {
			pointers = append(pointers, d.Pointer)
			assert.Positive(t, d.Line, "diagnostic at %s has no line", d.Pointer)
		}
		assert.Contains(t, pointers, "/info/colour")
		assert.Contains(t, pointers, "/components/schemas/Pet/example/age")
		assert.Contains(t, pointers, "/paths/~1pets/get/responses/200/content/application~1json/example/age")
	})

	t.Run("unknown fields off", func(t *testing.T) {
		output := callParse(t, parseInput{Spec: spec, ReportUnknown: boolPtr(false)})
		assert.Equal(t, 2, output.ErrorCount)
		assert.Zero(t, output.WarningCount)
	})

	t.Run("pagination", func(t *testing.T) {
		output := callParse(t, parseInput{Spec: spec, ReportUnknown: boolPtr(true), Offset: 1, Limit: 1})
		assert.Equal(t, 3, output.Matched)
		assert.Equal(t, 1, output.Returned)
		require.Len(t, output.Diagnostics, 1)
	})

	t.Run("offset beyond end", func(t *testing.T) {
		output := callParse(t, parseInput{Spec: spec, Offset: 10})
		assert.Equal(t, 2, output.Matched)
		assert.Zero(t, output.Returned)
		assert.Nil(t, output.Diagnostics)
	})

	t.Run("severity filter", func(t *testing.T) {
		output := callParse(t, parseInput{Spec: spec, ReportUnknown: boolPtr(true), Severity: "ERROR"})
		assert.Equal(t, 2, output.Matched)
		for _, d := range output.Diagnostics {
			assert.Equal(t, "error", d.Severity)
		}

		output = callParse(t, parseInput{Spec: spec, ReportUnknown: boolPtr(true), Severity: "warning"})
		require.Len(t, output.Diagnostics, 1)
		assert.Equal(t, "/info/colour", output.Diagnostics[0].Pointer)
		assert.Empty(t, output.Diagnostics[0].Context)
	})

	t.Run("operation context", func(t *testing.T) {
		output := callParse(t, parseInput{Spec: spec})
		contexts := make([]string, 0, len(output.Diagnostics))
		for _, d := range output.Diagnostics {
			contexts = append(contexts, d.Context)
		}
		assert.Contains(t, contexts, "(GET /pets)")
		assert.Contains(t, contexts, "(component: schemas/Pet)")
	})
}

func TestParseTool_GroupBy(t *testing.T) {
	specCache.reset()
	spec := specInput{Content: brokenSpec}

	tests := []struct {
		name    string
		groupBy string
		want    []groupCount
	}{
		{
			name:    "severity",
			groupBy: "severity",
			want:    []groupCount{{Key: "error", Count: 2}, {Key: "warning", Count: 1}},
		},
		{
			name:    "component",
			groupBy: "Component",
			want: []groupCount{
				{Key: "GET /pets", Count: 1},
				{Key: "document", Count: 1},
				{Key: "schemas/Pet", Count: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := callParse(t, parseInput{Spec: spec, ReportUnknown: boolPtr(true), GroupBy: tt.groupBy})
			assert.Equal(t, tt.want, output.Groups)
			assert.Nil(t, output.Diagnostics)
			assert.Equal(t, 3, output.Matched)
		})
	}
}

func TestParseTool_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   parseInput
		wantErr string
	}{
		{
			name:    "invalid severity",
			input:   parseInput{Spec: specInput{Content: forwardRefSpec}, Severity: "fatal"},
			wantErr: `invalid severity "fatal"`,
		},
		{
			name:    "invalid group_by",
			input:   parseInput{Spec: specInput{Content: forwardRefSpec}, GroupBy: "path"},
			wantErr: `invalid group_by value "path"`,
		},
		{
			name:    "no spec",
			input:   parseInput{},
			wantErr: "exactly one of file or content must be provided",
		},
		{
			name:    "missing file",
			input:   parseInput{Spec: specInput{File: "/nonexistent/spec.yaml"}},
			wantErr: "failed to read file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleParse(context.Background(), nil, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.wantErr)
		})
	}
}

func TestParseTool_FullDocument(t *testing.T) {
	specCache.reset()
	output := callParse(t, parseInput{Spec: specInput{Content: minimalSpec}, Full: true})

	require.NotEmpty(t, output.FullDocument)
	assert.Contains(t, output.FullDocument, `"openapi": "3.0.0"`)
	assert.Contains(t, output.FullDocument, `"title": "Test"`)
}

func TestParseTool_StrictRefs(t *testing.T) {
	specCache.reset()
	spec := specInput{Content: strings.Replace(forwardRefSpec, "schemas/Pet\"", "schemas/Missing\"", 1)}

	output := callParse(t, parseInput{Spec: spec})
	assert.Zero(t, output.WarningCount)
	assert.Equal(t, parser.DeferredStats{Scheduled: 1, Skipped: 1}, output.Deferred)

	output = callParse(t, parseInput{Spec: spec, StrictRefs: boolPtr(true)})
	assert.Equal(t, 1, output.WarningCount)

	t.Run("configured default", func(t *testing.T) {
		saved := cfg.StrictRefs
		cfg.StrictRefs = true
		t.Cleanup(func() { cfg.StrictRefs = saved })

		output := callParse(t, parseInput{Spec: spec})
		assert.Equal(t, 1, output.WarningCount)

		output = callParse(t, parseInput{Spec: spec, StrictRefs: boolPtr(false)})
		assert.Zero(t, output.WarningCount)
	})
}

func TestParseTool_ResolveRefs(t *testing.T) {
	specCache.reset()
	spec := specInput{File: "../../parser/testdata/petstore.yaml"}

	output := callParse(t, parseInput{Spec: spec, ResolveRefs: boolPtr(true)})
	assert.Zero(t, output.ErrorCount)
	assert.Zero(t, output.WarningCount)

	// Linked and unlinked loads are cached separately.
	callParse(t, parseInput{Spec: spec, ResolveRefs: boolPtr(false)})
	assert.Equal(t, 2, specCache.size())
}

func TestSetting(t *testing.T) {
	assert.True(t, setting(nil, true))
	assert.False(t, setting(nil, false))
	assert.False(t, setting(boolPtr(false), true))
	assert.True(t, setting(boolPtr(true), false))
}
