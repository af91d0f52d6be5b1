package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasload/oaserrors"
)

// appendTarget appends every assigned value to a shared slice.
type appendTarget struct{ got *[]any }

func (a appendTarget) assign(v any) { *a.got = append(*a.got, v) }

func TestDeferredForwardReference(t *testing.T) {
	c := testContext(t)
	tree := buildTree(t, c, `
schema:
  $ref: "#/components/schemas/Pet"
example:
  age: "5"
`)
	mt := loadMediaType(c, tree)
	require.NotNil(t, mt)

	assert.Equal(t, map[string]any{"age": "5"}, mt.Example, "interim value is structural")
	assert.Equal(t, 1, c.deferred.stats.Scheduled)

	c.replay(petResolver)
	assert.Equal(t, map[string]any{"age": int64(5)}, mt.Example)
	assert.Empty(t, c.diagnostics)
	assert.Equal(t, DeferredStats{Scheduled: 1, Applied: 1}, c.deferred.stats)
}

func TestDeferredUnresolvable(t *testing.T) {
	const src = `
schema:
  $ref: "#/components/schemas/Missing"
example:
  age: "5"
`
	t.Run("silent by default", func(t *testing.T) {
		c := testContext(t)
		mt := loadMediaType(c, buildTree(t, c, src))
		c.replay(petResolver)

		assert.Equal(t, map[string]any{"age": "5"}, mt.Example)
		assert.Empty(t, c.diagnostics)
		assert.Equal(t, DeferredStats{Scheduled: 1, Skipped: 1}, c.deferred.stats)
	})

	t.Run("strict warns", func(t *testing.T) {
		c := testContext(t)
		c.strictRefs = true
		mt := loadMediaType(c, buildTree(t, c, src))
		c.replay(petResolver)

		assert.Equal(t, map[string]any{"age": "5"}, mt.Example)
		require.Len(t, c.diagnostics, 1)
		d := c.diagnostics[0]
		assert.Equal(t, "/example", d.Pointer)
		assert.Equal(t, SeverityWarning, d.Severity)
		assert.ErrorIs(t, d.Cause, oaserrors.ErrReference)
	})
}

func TestDeferredMismatchReportedAtReplay(t *testing.T) {
	c := testContext(t)
	mt := loadMediaType(c, buildTree(t, c, `
schema:
  $ref: "#/components/schemas/Pet"
example:
  age: abc
`))
	assert.Empty(t, c.diagnostics, "nothing to report before the schema is known")

	c.replay(petResolver)
	assert.Equal(t, map[string]any{"age": "abc"}, mt.Example)
	require.Len(t, c.diagnostics, 1)
	assert.Equal(t, "/example/age", c.diagnostics[0].Pointer)
	assert.ErrorIs(t, c.diagnostics[0].Cause, oaserrors.ErrConversion)
	assert.Equal(t, 1, c.deferred.stats.Failed)
}

func TestDeferredNestedReference(t *testing.T) {
	c := testContext(t)
	mt := loadMediaType(c, buildTree(t, c, `
schema:
  type: object
  properties:
    pet:
      $ref: "#/components/schemas/Pet"
    count:
      type: integer
example:
  pet:
    age: "3"
  count: many
`))
	assert.Equal(t, map[string]any{"pet": map[string]any{"age": "3"}, "count": "many"}, mt.Example)
	assert.Empty(t, c.diagnostics, "nested-reference conversions report at replay only")

	c.replay(petResolver)
	assert.Equal(t, map[string]any{"pet": map[string]any{"age": int64(3)}, "count": "many"}, mt.Example)
	require.Len(t, c.diagnostics, 1)
	assert.Equal(t, "/example/count", c.diagnostics[0].Pointer)
}

func TestDeferredListRecordsKeepTheirIndex(t *testing.T) {
	c := testContext(t)
	s := loadSchema(c, buildTree(t, c, `
type: object
properties:
  pet:
    $ref: "#/components/schemas/Pet"
enum:
  - pet: {age: "1"}
  - pet: {age: "2"}
`))
	require.NotNil(t, s)
	assert.Equal(t, 2, c.deferred.stats.Scheduled)

	c.replay(petResolver)
	assert.Equal(t, []any{
		map[string]any{"pet": map[string]any{"age": int64(1)}},
		map[string]any{"pet": map[string]any{"age": int64(2)}},
	}, s.Enum)
	assert.Empty(t, c.diagnostics)
}

func TestDeferredMapRecordsUseElementPointer(t *testing.T) {
	c := testContext(t)
	p := loadParameter(c, buildTree(t, c, `
name: pet
in: query
schema:
  $ref: "#/components/schemas/Pet"
examples:
  good:
    value: {age: "4"}
  bad:
    value: {age: old}
`))
	require.NotNil(t, p)
	c.replay(petResolver)

	assert.Equal(t, map[string]any{"age": int64(4)}, p.Examples["good"].Value)
	assert.Equal(t, map[string]any{"age": "old"}, p.Examples["bad"].Value)
	require.Len(t, c.diagnostics, 1)
	assert.Equal(t, "/examples/bad/value/age", c.diagnostics[0].Pointer)
}

func TestDeferredReplayOrder(t *testing.T) {
	c := testContext(t)
	var got []any
	target := appendTarget{got: &got}
	for _, v := range []string{"1", "2", "3"} {
		require.True(t, c.schedule(v, &Schema{Ref: "#/components/schemas/N"}, target))
	}

	var resolved []string
	c.replay(func(ref string) (*Schema, bool) {
		resolved = append(resolved, ref)
		return &Schema{Type: SchemaTypes{"integer"}}, true
	})
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got)
	assert.NotEmpty(t, resolved)
}

func TestDeferredReplayTwiceIsNoOp(t *testing.T) {
	c := testContext(t)
	var got []any
	c.schedule("7", &Schema{Ref: "#/components/schemas/N"}, appendTarget{got: &got})
	resolve := func(string) (*Schema, bool) { return &Schema{Type: SchemaTypes{"integer"}}, true }

	c.replay(resolve)
	c.replay(resolve)
	assert.Equal(t, []any{int64(7)}, got)
	assert.Equal(t, DeferredStats{Scheduled: 1, Applied: 1}, c.deferred.stats)
}

func TestDeferredReplayRestoresPath(t *testing.T) {
	c := testContext(t)
	c.push("paths")
	c.push("/a")
	c.schedule("x", &Schema{Ref: "#/components/schemas/N"}, appendTarget{got: new([]any)})
	c.pop()
	c.push("/b")

	c.replay(func(string) (*Schema, bool) { return &Schema{Type: SchemaTypes{"integer"}}, true })
	assert.Equal(t, "/paths/~1b", c.pointer())
	require.Len(t, c.diagnostics, 1)
	assert.Equal(t, "/paths/~1a", c.diagnostics[0].Pointer)
}

func TestFragmentLoadingSkipsScheduling(t *testing.T) {
	c := testContext(t)
	c.deferred = nil
	mt := loadMediaType(c, buildTree(t, c, `
schema:
  $ref: "#/components/schemas/Pet"
example:
  age: "5"
`))
	assert.Equal(t, map[string]any{"age": "5"}, mt.Example)
	assert.NotPanics(t, func() { c.replay(petResolver) })
	assert.Empty(t, c.diagnostics)
}

func TestResolveSchemaChain(t *testing.T) {
	a := &Schema{Ref: "#/b"}
	b := &Schema{Type: SchemaTypes{"string"}}
	resolve := func(ref string) (*Schema, bool) {
		switch ref {
		case "#/b":
			return b, true
		case "#/self":
			return &Schema{Ref: "#/self"}, true
		}
		return nil, false
	}

	got, ok := resolveSchemaChain(a, resolve)
	assert.True(t, ok)
	assert.Same(t, b, got)

	got, ok = resolveSchemaChain(b, nil)
	assert.True(t, ok, "an inline schema needs no resolver")
	assert.Same(t, b, got)

	_, ok = resolveSchemaChain(a, nil)
	assert.False(t, ok)

	_, ok = resolveSchemaChain(&Schema{Ref: "#/self"}, resolve)
	assert.False(t, ok, "loops stop after maxRefHops")

	_, ok = resolveSchemaChain(nil, resolve)
	assert.False(t, ok)
}

func TestDeferredStatsString(t *testing.T) {
	s := DeferredStats{Scheduled: 3, Applied: 2, Skipped: 1, Failed: 1}
	assert.Equal(t, "3 scheduled, 2 applied, 1 skipped, 1 failed", s.String())
}
