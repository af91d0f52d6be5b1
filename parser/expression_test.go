package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuntimeExpression(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    ExpressionKind
		source  ExpressionSource
		param string
		pointer string
	}{
		{"url", "$url", ExpressionURL, "", "", ""},
		{"method", "$method", ExpressionMethod, "", "", ""},
		{"status code", "$statusCode", ExpressionStatusCode, "", "", ""},
		{"request header", "$request.header.X-Request-ID", ExpressionRequest, SourceHeader, "X-Request-ID", ""},
		{"request query", "$request.query.callbackUrl", ExpressionRequest, SourceQuery, "callbackUrl", ""},
		{"request path", "$request.path.id", ExpressionRequest, SourcePath, "id", ""},
		{"request body", "$request.body", ExpressionRequest, SourceBody, "", ""},
		{"response body pointer", "$response.body#/data/0/id", ExpressionResponse, SourceBody, "", "/data/0/id"},
		{"body root pointer", "$response.body#/", ExpressionResponse, SourceBody, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseRuntimeExpression(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.input, expr.Raw)
			assert.Equal(t, tt.input, expr.String())
			assert.Equal(t, tt.kind, expr.Kind)
			assert.Equal(t, tt.source, expr.Source)
			assert.Equal(t, tt.param, expr.Name)
			assert.Equal(t, tt.pointer, expr.Pointer)
		})
	}
}

func TestParseRuntimeExpressionComposite(t *testing.T) {
	expr, err := ParseRuntimeExpression("http://notify.example.com?id={$request.body#/id}&to={$request.header.Reply-To}")
	require.NoError(t, err)
	assert.Equal(t, ExpressionComposite, expr.Kind)
	require.Len(t, expr.Parts, 2)
	assert.Equal(t, "/id", expr.Parts[0].Pointer)
	assert.Equal(t, "Reply-To", expr.Parts[1].Name)

	plain, err := ParseRuntimeExpression("https://example.com/static")
	require.NoError(t, err)
	assert.Equal(t, ExpressionComposite, plain.Kind)
	assert.Empty(t, plain.Parts)
}

func TestParseRuntimeExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown root", "$foo", "unknown expression"},
		{"unknown source", "$request.cookie.a", "unknown source"},
		{"bad header", "$request.header.bad header", "invalid header name"},
		{"missing query name", "$request.query.", "missing query parameter name"},
		{"bad body pointer", "$request.body#id", "invalid body pointer"},
		{"unterminated brace", "http://x/{$url", "unterminated"},
		{"unmatched brace", "http://x/}", "unmatched"},
		{"bad embedded expression", "http://x/{$nope}", "unknown expression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRuntimeExpression(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMatchesHeader(t *testing.T) {
	expr, err := ParseRuntimeExpression("$request.header.Content-Type")
	require.NoError(t, err)
	assert.True(t, expr.MatchesHeader("content-type"))
	assert.True(t, expr.MatchesHeader("CONTENT-TYPE"))
	assert.False(t, expr.MatchesHeader("Accept"))

	query, err := ParseRuntimeExpression("$request.query.Content-Type")
	require.NoError(t, err)
	assert.False(t, query.MatchesHeader("Content-Type"))
}

func TestExpressionOrValue(t *testing.T) {
	c := testContext(t)
	tree := buildTree(t, c, `
id: $response.body#/id
limit: 10
bad: $nope
`).(*mapNode)

	id := c.loadExpressionOrAny(tree.get("id"))
	require.True(t, id.IsExpression())
	assert.Equal(t, "/id", id.Expression.Pointer)

	limit := c.loadExpressionOrAny(tree.get("limit"))
	assert.False(t, limit.IsExpression())
	assert.Equal(t, int64(10), limit.Value)

	c.push("bad")
	bad := c.loadExpressionOrAny(tree.get("bad"))
	c.pop()
	assert.False(t, bad.IsExpression())
	assert.Equal(t, "$nope", bad.Value)
	require.Len(t, c.diagnostics, 1)
	assert.Equal(t, "/bad", c.diagnostics[0].Pointer)

	t.Run("marshal", func(t *testing.T) {
		data, err := id.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `"$response.body#/id"`, string(data))

		data, err = limit.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `10`, string(data))

		y, err := id.MarshalYAML()
		require.NoError(t, err)
		assert.Equal(t, "$response.body#/id", y)
	})
}
