package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasload/parser"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"name": "Rex", "age": 5}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatJSON))
		assert.JSONEq(t, `{"name": "Rex", "age": 5}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatYAML))
		assert.YAMLEq(t, "name: Rex\nage: 5\n", buf.String())
	})

	t.Run("text is not structured", func(t *testing.T) {
		var buf bytes.Buffer
		err := OutputStructured(&buf, data, FormatText)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format for structured output")
		assert.Empty(t, buf.String())
	})
}

func TestMarshalDocument(t *testing.T) {
	doc := map[string]string{"key": "value"}

	data, err := MarshalDocument(doc, parser.SourceFormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key": "value"}`, string(data))

	data, err = MarshalDocument(doc, parser.SourceFormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "key: value\n", string(data))
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestOutputSpecStats(t *testing.T) {
	var buf bytes.Buffer
	stats := parser.DocumentStats{
		PathCount:      2,
		OperationCount: 3,
		SchemaCount:    1,
		ComponentCount: 4,
		Deferred:       parser.DeferredStats{Scheduled: 2, Applied: 1, Skipped: 1},
	}
	OutputSpecStats(&buf, 2048, stats, 5*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "Source Size: 2.0 KiB")
	assert.Contains(t, out, "Paths: 2\n")
	assert.NotContains(t, out, "Webhooks:")
	assert.Contains(t, out, "Operations: 3\n")
	assert.Contains(t, out, "Components: 4\n")
	assert.Contains(t, out, "Deferred: 2 scheduled, 1 applied, 1 skipped, 0 failed\n")
	assert.Contains(t, out, "Load Time: 5ms")
}

func TestOutputSpecHeader(t *testing.T) {
	var buf bytes.Buffer
	OutputSpecHeader(&buf, StdinFilePath, "3.1.0")
	assert.Contains(t, buf.String(), "Specification: <stdin>\n")
	assert.Contains(t, buf.String(), "OAS Version: 3.1.0\n")
}
