package parser

import (
	"fmt"
	"strings"
)

// fixedFields maps each known field name of T to the loader for its value.
type fixedFields[T any] map[string]func(c *parseContext, obj T, n parseNode)

// patternField loads every field whose name satisfies match.
type patternField[T any] struct {
	match func(name string) bool
	load  func(c *parseContext, obj T, name string, n parseNode)
}

// patternFields are tried in order; the first match wins.
type patternFields[T any] []patternField[T]

// dispatch routes each entry of m, in document order, to exactly one loader:
// the fixed field of that name, else the first matching pattern field.
// The entry's key is pushed onto the location stack while its loader runs.
// Keys claimed by neither table are returned (and reported as warnings when
// unknown-field reporting is enabled). A nil m is an empty dispatch.
func dispatch[T any](c *parseContext, m *mapNode, obj T, fixed fixedFields[T], patterns patternFields[T]) []string {
	if m == nil {
		return nil
	}
	var unhandled []string
	for _, e := range m.entries {
		if !dispatchEntry(c, e, obj, fixed, patterns) {
			unhandled = append(unhandled, e.key)
		}
	}
	return unhandled
}

func dispatchEntry[T any](c *parseContext, e mapEntry, obj T, fixed fixedFields[T], patterns patternFields[T]) bool {
	c.push(e.key)
	defer c.pop()

	if load, ok := fixed[e.key]; ok {
		load(c, obj, e.value)
		return true
	}
	for _, p := range patterns {
		if p.match(e.key) {
			p.load(c, obj, e.key, e.value)
			return true
		}
	}
	if c.reportUnknown {
		key := c.sourceMap.GetKey(c.pointer())
		c.addDiagnosticAtPosition(c.pointer(), key.Line, key.Column, SeverityWarning,
			fmt.Sprintf("unknown field %q", e.key), nil)
	}
	return false
}

// isExtension reports whether name is a specification extension ("x-" prefix).
func isExtension(name string) bool {
	return strings.HasPrefix(name, "x-")
}

// extensionField stores "x-" fields of T through loadExtension into the map
// returned by extra, allocating it on first use.
func extensionField[T any](extra func(T) *map[string]any) patternField[T] {
	return patternField[T]{
		match: isExtension,
		load: func(c *parseContext, obj T, name string, n parseNode) {
			m := extra(obj)
			if *m == nil {
				*m = make(map[string]any)
			}
			(*m)[name] = c.loadExtension(name, n)
		},
	}
}

// loadMap dispatches n as a mapping into obj, reporting a diagnostic when n
// is not a mapping.
func loadMap[T any](c *parseContext, n parseNode, obj T, fixed fixedFields[T], patterns patternFields[T]) {
	m, ok := c.asMap(n)
	if !ok {
		return
	}
	dispatch(c, m, obj, fixed, patterns)
}
