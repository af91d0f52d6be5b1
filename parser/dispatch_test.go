package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchTarget struct {
	calls []string
	extra map[string]any
}

func TestDispatch(t *testing.T) {
	fixed := fixedFields[*dispatchTarget]{
		"name": func(c *parseContext, d *dispatchTarget, n parseNode) {
			d.calls = append(d.calls, "fixed:name@"+c.pointer())
		},
		"x-fixed": func(c *parseContext, d *dispatchTarget, n parseNode) {
			d.calls = append(d.calls, "fixed:x-fixed")
		},
	}
	patterns := patternFields[*dispatchTarget]{
		extensionField(func(d *dispatchTarget) *map[string]any { return &d.extra }),
		{
			match: func(name string) bool { return strings.HasPrefix(name, "x") },
			load: func(c *parseContext, d *dispatchTarget, name string, n parseNode) {
				d.calls = append(d.calls, "pattern:"+name)
			},
		},
		{
			match: func(name string) bool { return strings.HasPrefix(name, "/") },
			load: func(c *parseContext, d *dispatchTarget, name string, n parseNode) {
				d.calls = append(d.calls, "path:"+name)
			},
		},
	}

	c := testContext(t)
	m := buildTree(t, c, `
name: n
x-fixed: 1
x-ext: 2
xyz: 3
/a: 4
other: 5
`).(*mapNode)

	target := &dispatchTarget{}
	unhandled := dispatch(c, m, target, fixed, patterns)

	assert.Equal(t, []string{"fixed:name@/name", "fixed:x-fixed", "pattern:xyz", "path:/a"}, target.calls)
	assert.Equal(t, map[string]any{"x-ext": int64(2)}, target.extra)
	assert.Equal(t, []string{"other"}, unhandled)
	assert.Empty(t, c.diagnostics, "unknown fields are silent by default")
	assert.Equal(t, "", c.pointer(), "location stack is balanced")

	t.Run("report unknown", func(t *testing.T) {
		c := testContext(t)
		c.reportUnknown = true
		m := buildTree(t, c, "a: 1\nunknown: 2\n").(*mapNode)
		dispatch(c, m, &dispatchTarget{}, fixedFields[*dispatchTarget]{
			"a": func(*parseContext, *dispatchTarget, parseNode) {},
		}, nil)

		require.Len(t, c.diagnostics, 1)
		d := c.diagnostics[0]
		assert.Equal(t, "/unknown", d.Pointer)
		assert.Equal(t, SeverityWarning, d.Severity)
		assert.Equal(t, 2, d.Line)
		assert.Equal(t, 1, d.Column)
	})

	t.Run("nil mapping", func(t *testing.T) {
		assert.Nil(t, dispatch(c, nil, target, fixed, patterns))
	})
}

func TestScalarFieldMismatches(t *testing.T) {
	c := testContext(t)
	p := loadParameter(c, buildTree(t, c, `
name: id
in: path
required: maybe
deprecated: "true"
explode: false
description: [not, a, string]
`))
	require.NotNil(t, p)
	assert.Equal(t, "id", p.Name)
	assert.False(t, p.Required)
	assert.False(t, p.Deprecated, "quoted booleans are strings")
	require.NotNil(t, p.Explode)
	assert.False(t, *p.Explode)
	assert.Empty(t, p.Description)

	require.Len(t, c.diagnostics, 3)
	assert.Equal(t, "/required", c.diagnostics[0].Pointer)
	assert.Equal(t, `expected a boolean, got "maybe"`, c.diagnostics[0].Message)
	assert.Equal(t, "/deprecated", c.diagnostics[1].Pointer)
	assert.Equal(t, "/description", c.diagnostics[2].Pointer)
	assert.Equal(t, "expected a string, got a sequence", c.diagnostics[2].Message)
}

func TestHelpersTolerateNull(t *testing.T) {
	c := testContext(t)
	m := buildTree(t, c, "tags: ~\nservers: null\n").(*mapNode)
	op := &Operation{}
	dispatch(c, m, op, operationFields, operationPatterns)
	assert.Nil(t, op.Tags)
	assert.Nil(t, op.Servers)
	assert.Empty(t, c.diagnostics)
}
