package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasload/oaserrors"
)

func TestBuildNodeRaw(t *testing.T) {
	c := testContext(t)
	tree := buildTree(t, c, `
plain: 5
quoted: "5"
single: 'x'
literal: |
  text
tagged: !!str 7
null1: null
null2: ~
empty:
list: [1, "two", ~]
`)
	m, ok := tree.(*mapNode)
	require.True(t, ok)
	assert.Equal(t, []string{"plain", "quoted", "single", "literal", "tagged", "null1", "null2", "empty", "list"}, m.keys())

	assert.Equal(t, rawScalar{text: "5"}, m.get("plain").raw())
	assert.Equal(t, rawScalar{text: "5", quoted: true}, m.get("quoted").raw())
	assert.Equal(t, rawScalar{text: "x", quoted: true}, m.get("single").raw())
	assert.Equal(t, rawScalar{text: "text\n", quoted: true}, m.get("literal").raw())
	assert.Equal(t, rawScalar{text: "7", quoted: true}, m.get("tagged").raw())
	assert.Nil(t, m.get("null1").raw())
	assert.Nil(t, m.get("null2").raw())
	assert.Nil(t, m.get("empty").raw(), "a key with no value is kept as null")
	assert.Equal(t, []any{rawScalar{text: "1"}, rawScalar{text: "two", quoted: true}, nil}, m.get("list").raw())
	assert.Nil(t, m.get("missing"))
}

func TestBuildNodePointersAndPositions(t *testing.T) {
	c := testContext(t)
	tree := buildTree(t, c, `paths:
  /pets/{id}:
    get:
      tags: [a, b]
`)
	get := tree.(*mapNode).get("paths").(*mapNode).get("/pets/{id}").(*mapNode).get("get").(*mapNode)
	assert.Equal(t, "/paths/~1pets~1{id}/get", get.pointer())

	tags := get.get("tags").(*listNode)
	assert.Equal(t, "/paths/~1pets~1{id}/get/tags/1", tags.items[1].pointer())
	line, col := tags.items[1].position()
	assert.Equal(t, 4, line)
	assert.Equal(t, 17, col)

	assert.Equal(t, SourceLocation{Line: 3, Column: 5, File: "test.yaml"}, c.sourceMap.GetKey("/paths/~1pets~1{id}/get"))
}

func TestBuildNodeAnchorsAndMerge(t *testing.T) {
	c := testContext(t)
	tree := buildTree(t, c, `
base: &base
  a: 1
  b: 2
copy: *base
merged:
  <<: *base
  b: 3
  c: 4
`)
	m := tree.(*mapNode)
	assert.Equal(t, map[string]any{"a": rawScalar{text: "1"}, "b": rawScalar{text: "2"}}, m.get("copy").raw())
	assert.Equal(t, "/copy/a", m.get("copy").(*mapNode).get("a").pointer())

	merged := m.get("merged").(*mapNode)
	assert.Equal(t, []string{"b", "c", "a"}, merged.keys(), "explicit keys win over merged ones")
	assert.Equal(t, rawScalar{text: "3"}, merged.get("b").raw())
	assert.Empty(t, c.diagnostics)
}

// nestedAliasDoc returns a document whose extension x-a<levels> expands to
// 10^levels scalars through nested anchors.
func nestedAliasDoc(levels int) string {
	var b strings.Builder
	b.WriteString("openapi: 3.1.0\ninfo: {title: t, version: \"1\"}\npaths: {}\n")
	b.WriteString("x-a0: &a0 lol\n")
	for i := 1; i <= levels; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*a%d, ", i-1), 10), ", ")
		fmt.Fprintf(&b, "x-a%d: &a%d [%s]\n", i, i, refs)
	}
	return b.String()
}

func TestBuildNodeAliasExpansionBudget(t *testing.T) {
	t.Run("small expansion", func(t *testing.T) {
		result := parseString(t, nestedAliasDoc(3))
		assert.Empty(t, result.Diagnostics)
		require.Len(t, result.Document.Extra["x-a3"], 10)
	})

	t.Run("exponential expansion stops", func(t *testing.T) {
		result := parseString(t, nestedAliasDoc(9))
		errs := result.Diagnostics.Errors()
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], oaserrors.ErrParse)
		assert.Contains(t, errs[0].Message, "alias expansion exceeds 100000 nodes")
		assert.Equal(t, "3.1.0", result.Version)
	})
}

func TestBuildNodeDuplicateKeys(t *testing.T) {
	c := testContext(t)
	tree := buildTree(t, c, `a: 1
a: 2
`)
	assert.Equal(t, rawScalar{text: "1"}, tree.(*mapNode).get("a").raw(), "first occurrence wins")
	require.Len(t, c.diagnostics, 1)
	d := c.diagnostics[0]
	assert.Equal(t, SeverityWarning, d.Severity)
	assert.Equal(t, "/a", d.Pointer)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, `duplicate key "a" ignored`, d.Message)
}

func TestBuildNodeEmpty(t *testing.T) {
	c := testContext(t)
	assert.Nil(t, c.buildNode(nil, ""))
}
