package parser

import "fmt"

// ExtensionParser converts the value of a specification extension ("x-"
// field). It receives the structurally converted value and the version of
// the document being loaded, and returns the value to store in Extra.
//
// Example:
//
//	parser.WithExtensionParser("x-rate-limit", func(v any, _ parser.OASVersion) (any, error) {
//		n, ok := v.(int64)
//		if !ok {
//			return nil, fmt.Errorf("expected an integer, got %T", v)
//		}
//		return RateLimit(n), nil
//	})
type ExtensionParser func(value any, version OASVersion) (any, error)

// loadExtension returns the value to store for extension name. A registered
// parser receives the structural value; without one the structural value is
// returned unchanged. A parser error adds a diagnostic and falls back to the
// structural value.
func (c *parseContext) loadExtension(name string, n parseNode) any {
	value := structural(n.raw())
	parse, ok := c.extensions[name]
	if !ok {
		return value
	}
	out, err := parse(value, c.version)
	if err != nil {
		c.addError(fmt.Sprintf("extension %s: %v", name, err), err)
		return value
	}
	return out
}
