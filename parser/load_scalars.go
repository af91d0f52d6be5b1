package parser

import (
	"fmt"
	"strconv"
)

// describe names the shape of n for diagnostics.
func describe(n parseNode) string {
	switch v := n.(type) {
	case *mapNode:
		return "a mapping"
	case *listNode:
		return "a sequence"
	case *valueNode:
		if v.isNull() {
			return "null"
		}
		return fmt.Sprintf("%q", v.text)
	}
	return "nothing"
}

func (c *parseContext) typeMismatch(want string, n parseNode) {
	c.addError(fmt.Sprintf("expected %s, got %s", want, describe(n)), nil)
}

// asMap returns n as a mapping. A null value is an absent mapping; any other
// shape adds a diagnostic.
func (c *parseContext) asMap(n parseNode) (*mapNode, bool) {
	switch v := n.(type) {
	case *mapNode:
		return v, true
	case *valueNode:
		if v.isNull() {
			return nil, false
		}
	}
	c.typeMismatch("a mapping", n)
	return nil, false
}

// asList returns n as a sequence, with the same null handling as asMap.
func (c *parseContext) asList(n parseNode) (*listNode, bool) {
	switch v := n.(type) {
	case *listNode:
		return v, true
	case *valueNode:
		if v.isNull() {
			return nil, false
		}
	}
	c.typeMismatch("a sequence", n)
	return nil, false
}

// asScalar returns n as a non-null scalar.
func (c *parseContext) asScalar(n parseNode, want string) (*valueNode, bool) {
	v, ok := n.(*valueNode)
	if !ok {
		c.typeMismatch(want, n)
		return nil, false
	}
	if v.isNull() {
		return nil, false
	}
	return v, true
}

func (c *parseContext) asString(n parseNode) string {
	v, ok := c.asScalar(n, "a string")
	if !ok {
		return ""
	}
	return v.text
}

func (c *parseContext) asBool(n parseNode) bool {
	v, ok := c.asScalar(n, "a boolean")
	if !ok {
		return false
	}
	if b, ok := parseBoolText(v.text); ok && !v.quoted {
		return b
	}
	c.typeMismatch("a boolean", n)
	return false
}

// asOptionalBool is asBool for fields whose absence differs from false.
func (c *parseContext) asOptionalBool(n parseNode) *bool {
	if v, ok := n.(*valueNode); ok && v.isNull() {
		return nil
	}
	b := c.asBool(n)
	return &b
}

func (c *parseContext) asInt(n parseNode) *int {
	v, ok := c.asScalar(n, "an integer")
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v.text)
	if err != nil || v.quoted {
		c.typeMismatch("an integer", n)
		return nil
	}
	return &i
}

func (c *parseContext) asFloat(n parseNode) *float64 {
	v, ok := c.asScalar(n, "a number")
	if !ok {
		return nil
	}
	f, ok := parseFloatText(v.text)
	if !ok || v.quoted {
		c.typeMismatch("a number", n)
		return nil
	}
	return &f
}

// asStringList reads a sequence of strings, one diagnostic per bad element.
func (c *parseContext) asStringList(n parseNode) []string {
	l, ok := c.asList(n)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(l.items))
	for i, item := range l.items {
		c.pushIndex(i)
		if s, ok := c.asScalar(item, "a string"); ok {
			out = append(out, s.text)
		}
		c.pop()
	}
	return out
}

// asStringMap reads a mapping of string values.
func (c *parseContext) asStringMap(n parseNode) map[string]string {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m.entries))
	for _, e := range m.entries {
		c.push(e.key)
		if s, ok := c.asScalar(e.value, "a string"); ok {
			out[e.key] = s.text
		}
		c.pop()
	}
	return out
}

// loadObjectMap loads every value of the mapping n with load, keyed by name.
func loadObjectMap[T any](c *parseContext, n parseNode, load func(*parseContext, parseNode) T) map[string]T {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	out := make(map[string]T, len(m.entries))
	for _, e := range m.entries {
		c.push(e.key)
		out[e.key] = load(c, e.value)
		c.pop()
	}
	return out
}

// loadObjectList loads every element of the sequence n with load.
func loadObjectList[T any](c *parseContext, n parseNode, load func(*parseContext, parseNode) T) []T {
	l, ok := c.asList(n)
	if !ok {
		return nil
	}
	out := make([]T, 0, len(l.items))
	for i, item := range l.items {
		c.pushIndex(i)
		out = append(out, load(c, item))
		c.pop()
	}
	return out
}

// stringField stores a string value into the field returned by field.
func stringField[T any](field func(T) *string) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = c.asString(n) }
}

func boolField[T any](field func(T) *bool) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = c.asBool(n) }
}

func optionalBoolField[T any](field func(T) **bool) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = c.asOptionalBool(n) }
}

func intField[T any](field func(T) **int) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = c.asInt(n) }
}

func floatField[T any](field func(T) **float64) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = c.asFloat(n) }
}

func stringListField[T any](field func(T) *[]string) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = c.asStringList(n) }
}

// rawField keeps the unconverted value of n for a later processAnyFields pass.
func rawField[T any](field func(T) *any) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = n.raw() }
}

// rawListField keeps the unconverted elements of a sequence for a later
// processAnyListFields pass.
func rawListField[T any](field func(T) *[]any) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) {
		if l, ok := c.asList(n); ok {
			*field(obj) = l.raw().([]any)
		}
	}
}

// structuralField stores the structural value of n.
func structuralField[T any](field func(T) *any) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = structural(n.raw()) }
}

// refOf returns the $ref of a Reference Object, or "".
func refOf(c *parseContext, m *mapNode) string {
	n := m.get("$ref")
	if n == nil {
		return ""
	}
	c.push("$ref")
	defer c.pop()
	return c.asString(n)
}
