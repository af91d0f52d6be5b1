package parser

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasload/internal/pathutil"
	"github.com/erraggy/oasload/oaserrors"
)

// parseNode is one node of the document tree handed to the loaders: a
// *valueNode, *listNode or *mapNode. Every node records the JSON pointer and
// source position it was read from.
type parseNode interface {
	// pointer returns the JSON pointer of the node within the document.
	pointer() string
	// position returns the 1-based line and column (0 if unknown).
	position() (line, column int)
	// raw returns the weakest-typed Any form of the node: nil, a rawScalar,
	// []any or map[string]any.
	raw() any
}

type nodeBase struct {
	ptr    string
	line   int
	column int
}

func (b nodeBase) pointer() string           { return b.ptr }
func (b nodeBase) position() (line, col int) { return b.line, b.column }

// valueNode is a scalar.
type valueNode struct {
	nodeBase
	text string
	// quoted is set for quoted, block and explicitly !!str tagged scalars,
	// whose text is never inferred as anything but a string.
	quoted bool
}

func (n *valueNode) raw() any {
	if n.isNull() {
		return nil
	}
	return rawScalar{text: n.text, quoted: n.quoted}
}

// isNull reports whether the scalar is a plain YAML null.
func (n *valueNode) isNull() bool {
	return !n.quoted && isNullText(n.text)
}

// listNode is a sequence.
type listNode struct {
	nodeBase
	items []parseNode
}

func (n *listNode) raw() any {
	out := make([]any, len(n.items))
	for i, item := range n.items {
		out[i] = item.raw()
	}
	return out
}

// mapEntry is one key/value pair of a mapping, in document order.
type mapEntry struct {
	key   string
	value parseNode
}

// mapNode is a mapping. Keys are unique; merge keys have been expanded.
type mapNode struct {
	nodeBase
	entries []mapEntry
}

func (n *mapNode) raw() any {
	out := make(map[string]any, len(n.entries))
	for _, e := range n.entries {
		out[e.key] = e.value.raw()
	}
	return out
}

// get returns the value for key, or nil.
func (n *mapNode) get(key string) parseNode {
	if n == nil {
		return nil
	}
	for _, e := range n.entries {
		if e.key == key {
			return e.value
		}
	}
	return nil
}

// keys returns the mapping's keys in document order.
func (n *mapNode) keys() []string {
	keys := make([]string, len(n.entries))
	for i, e := range n.entries {
		keys[i] = e.key
	}
	return keys
}

// maxNodeDepth bounds alias expansion so self-referencing anchors terminate.
const maxNodeDepth = 512

// maxAliasNodes bounds the total number of nodes built by expanding aliases
// in one document, so nested anchors cannot multiply into an unbounded tree.
const maxAliasNodes = 100_000

// buildNode converts a yaml.Node tree into parse nodes rooted at ptr,
// recording every node's position in the context's source map.
// Returns nil for a nil or empty document.
func (c *parseContext) buildNode(y *yaml.Node, ptr string) parseNode {
	return c.build(y, ptr, 0)
}

func (c *parseContext) build(y *yaml.Node, ptr string, depth int) parseNode {
	if y == nil {
		return nil
	}
	if depth > maxNodeDepth {
		c.addDiagnosticAt(ptr, SeverityError, "document nesting too deep (recursive alias?)", nil)
		return nil
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil
		}
		return c.build(y.Content[0], ptr, depth+1)
	case yaml.AliasNode:
		if c.aliasOverflow {
			return nil
		}
		c.aliasDepth++
		defer func() { c.aliasDepth-- }()
		return c.build(y.Alias, ptr, depth+1)
	}

	if c.aliasDepth > 0 && !c.countAliasNode(ptr, y) {
		return nil
	}

	base := nodeBase{ptr: ptr, line: y.Line, column: y.Column}
	c.sourceMap.set(ptr, SourceLocation{Line: y.Line, Column: y.Column, File: c.sourceName})

	switch y.Kind {
	case yaml.ScalarNode:
		return &valueNode{nodeBase: base, text: y.Value, quoted: isQuotedScalar(y)}
	case yaml.SequenceNode:
		n := &listNode{nodeBase: base, items: make([]parseNode, 0, len(y.Content))}
		for i, child := range y.Content {
			if item := c.build(child, pathutil.Join(ptr, fmt.Sprint(i)), depth+1); item != nil {
				n.items = append(n.items, item)
			}
		}
		return n
	case yaml.MappingNode:
		n := &mapNode{nodeBase: base}
		seen := make(map[string]bool, len(y.Content)/2)
		var merges []*yaml.Node
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if isMergeKey(k) {
				merges = append(merges, v)
				continue
			}
			key := k.Value
			child := pathutil.Join(ptr, key)
			if seen[key] {
				c.addDiagnosticAtPosition(child, k.Line, k.Column, SeverityWarning,
					fmt.Sprintf("duplicate key %q ignored", key), nil)
				continue
			}
			seen[key] = true
			c.sourceMap.setKey(child, SourceLocation{Line: k.Line, Column: k.Column, File: c.sourceName})
			n.entries = append(n.entries, mapEntry{key: key, value: c.nullIfMissing(c.build(v, child, depth+1), v, child)})
		}
		for _, m := range merges {
			c.mergeInto(n, m, seen, depth+1)
		}
		if len(merges) > 0 {
			c.sourceMap.set(ptr, SourceLocation{Line: y.Line, Column: y.Column, File: c.sourceName})
		}
		return n
	}
	return nil
}

// countAliasNode records one node built under an alias. It reports false,
// adding a single diagnostic, once the expansion budget is spent.
func (c *parseContext) countAliasNode(ptr string, y *yaml.Node) bool {
	if c.aliasOverflow {
		return false
	}
	c.aliasNodes++
	if c.aliasNodes <= maxAliasNodes {
		return true
	}
	c.aliasOverflow = true
	err := &oaserrors.ParseError{
		Source:  c.sourceName,
		Line:    y.Line,
		Column:  y.Column,
		Message: fmt.Sprintf("alias expansion exceeds %d nodes", maxAliasNodes),
	}
	c.addDiagnosticAtPosition(ptr, y.Line, y.Column, SeverityError, err.Error(), err)
	return false
}

// mergeInto splices the entries of a "<<" merge value (a mapping, an alias to
// one, or a sequence of those) into n without overriding keys already present.
func (c *parseContext) mergeInto(n *mapNode, y *yaml.Node, seen map[string]bool, depth int) {
	if y.Kind == yaml.SequenceNode {
		for _, item := range y.Content {
			c.mergeInto(n, item, seen, depth+1)
		}
		return
	}
	merged, ok := c.build(y, n.ptr, depth).(*mapNode)
	if !ok {
		c.addDiagnosticAt(n.ptr, SeverityError, "merge key value must be a mapping", nil)
		return
	}
	for _, e := range merged.entries {
		if seen[e.key] {
			continue
		}
		seen[e.key] = true
		n.entries = append(n.entries, e)
	}
}

// nullIfMissing keeps an empty value (e.g. "key:" with nothing after it) as a
// null scalar instead of dropping the key.
func (c *parseContext) nullIfMissing(n parseNode, y *yaml.Node, ptr string) parseNode {
	if n != nil {
		return n
	}
	return &valueNode{nodeBase: nodeBase{ptr: ptr, line: y.Line, column: y.Column}}
}

func isQuotedScalar(y *yaml.Node) bool {
	const stringStyles = yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle
	if y.Style&stringStyles != 0 {
		return true
	}
	return y.Style&yaml.TaggedStyle != 0 && (y.Tag == "!!str" || y.Tag == "tag:yaml.org,2002:str")
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Value == "<<" && k.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0
}

// isNullText reports whether plain scalar text is a YAML null.
func isNullText(s string) bool {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return true
	}
	return false
}
