package parser

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/erraggy/oasload/internal/pathutil"
)

// ExpressionKind identifies the root of a runtime expression.
type ExpressionKind string

const (
	// ExpressionURL is "$url".
	ExpressionURL ExpressionKind = "url"
	// ExpressionMethod is "$method".
	ExpressionMethod ExpressionKind = "method"
	// ExpressionStatusCode is "$statusCode".
	ExpressionStatusCode ExpressionKind = "statusCode"
	// ExpressionRequest is "$request." followed by a source.
	ExpressionRequest ExpressionKind = "request"
	// ExpressionResponse is "$response." followed by a source.
	ExpressionResponse ExpressionKind = "response"
	// ExpressionComposite is literal text with embedded "{expression}" parts.
	ExpressionComposite ExpressionKind = "composite"
)

// ExpressionSource identifies which part of a request or response a
// $request/$response expression reads.
type ExpressionSource string

// Sources a $request or $response expression can read.
const (
	SourceHeader ExpressionSource = "header"
	SourceQuery  ExpressionSource = "query"
	SourcePath   ExpressionSource = "path"
	SourceBody   ExpressionSource = "body"
)

// RuntimeExpression is a parsed OAS runtime expression, as used by link
// parameters and callback keys.
// See https://spec.openapis.org/oas/v3.1.0#runtime-expressions
type RuntimeExpression struct {
	// Raw is the expression text as written.
	Raw string `json:"raw" yaml:"raw"`
	// Kind is the expression root.
	Kind ExpressionKind `json:"kind" yaml:"kind"`
	// Source is set for request and response expressions.
	Source ExpressionSource `json:"source,omitempty" yaml:"source,omitempty"`
	// Name is the header, query or path parameter name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Pointer is the JSON pointer into the body ("" for the whole body).
	Pointer string `json:"pointer,omitempty" yaml:"pointer,omitempty"`
	// Parts are the embedded expressions of a composite expression.
	Parts []*RuntimeExpression `json:"parts,omitempty" yaml:"parts,omitempty"`
}

func (e *RuntimeExpression) String() string {
	return e.Raw
}

var headerFold = cases.Fold()

// MatchesHeader reports whether e reads the header name. Header names
// compare case-insensitively.
func (e *RuntimeExpression) MatchesHeader(name string) bool {
	return e.Source == SourceHeader && headerFold.String(e.Name) == headerFold.String(name)
}

// ParseRuntimeExpression parses s. Text starting with "$" must be a single
// expression; any other text is a composite whose "{...}" parts must each be
// an expression.
func ParseRuntimeExpression(s string) (*RuntimeExpression, error) {
	if strings.HasPrefix(s, "$") {
		return parseExpression(s)
	}
	return parseComposite(s)
}

func parseComposite(s string) (*RuntimeExpression, error) {
	expr := &RuntimeExpression{Raw: s, Kind: ExpressionComposite}
	rest := s
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return nil, fmt.Errorf("runtime expression %q: unmatched '}'", s)
			}
			return expr, nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return nil, fmt.Errorf("runtime expression %q: unterminated '{'", s)
		}
		part, err := parseExpression(rest[open+1 : open+end])
		if err != nil {
			return nil, err
		}
		expr.Parts = append(expr.Parts, part)
		rest = rest[open+end+1:]
	}
}

func parseExpression(s string) (*RuntimeExpression, error) {
	expr := &RuntimeExpression{Raw: s}
	switch {
	case s == "$url":
		expr.Kind = ExpressionURL
	case s == "$method":
		expr.Kind = ExpressionMethod
	case s == "$statusCode":
		expr.Kind = ExpressionStatusCode
	case strings.HasPrefix(s, "$request."):
		expr.Kind = ExpressionRequest
		return expr, parseSource(expr, strings.TrimPrefix(s, "$request."))
	case strings.HasPrefix(s, "$response."):
		expr.Kind = ExpressionResponse
		return expr, parseSource(expr, strings.TrimPrefix(s, "$response."))
	default:
		return nil, fmt.Errorf("runtime expression %q: unknown expression", s)
	}
	return expr, nil
}

func parseSource(expr *RuntimeExpression, s string) error {
	source, name, _ := strings.Cut(s, ".")
	switch ExpressionSource(source) {
	case SourceHeader:
		if !isHeaderToken(name) {
			return fmt.Errorf("runtime expression %q: invalid header name %q", expr.Raw, name)
		}
	case SourceQuery, SourcePath:
		if name == "" {
			return fmt.Errorf("runtime expression %q: missing %s parameter name", expr.Raw, source)
		}
	default:
		if s == "body" || strings.HasPrefix(s, "body#") {
			expr.Source = SourceBody
			ptr := strings.TrimPrefix(s, "body")
			if ptr != "" && ptr != "#" && !strings.HasPrefix(ptr, "#/") {
				return fmt.Errorf("runtime expression %q: invalid body pointer", expr.Raw)
			}
			expr.Pointer = strings.TrimPrefix(ptr, "#")
			if len(pathutil.Split(expr.Pointer)) == 0 {
				expr.Pointer = ""
			}
			return nil
		}
		return fmt.Errorf("runtime expression %q: unknown source %q", expr.Raw, source)
	}
	expr.Source = ExpressionSource(source)
	expr.Name = name
	return nil
}

// isHeaderToken reports whether s is an RFC 7230 token.
func isHeaderToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case strings.IndexByte("!#$%&'*+-.^_`|~", ch) >= 0:
		default:
			return false
		}
	}
	return true
}

// ExpressionOrValue holds either a runtime expression or a literal value, as
// used by link parameters and link request bodies.
type ExpressionOrValue struct {
	Expression *RuntimeExpression
	Value      any
}

// IsExpression reports whether the holder carries an expression.
func (ev ExpressionOrValue) IsExpression() bool {
	return ev.Expression != nil
}

// MarshalJSON writes the expression text or the literal value.
func (ev ExpressionOrValue) MarshalJSON() ([]byte, error) {
	if ev.Expression != nil {
		return jsonMarshal(ev.Expression.Raw)
	}
	return jsonMarshal(ev.Value)
}

// MarshalYAML writes the expression text or the literal value.
func (ev ExpressionOrValue) MarshalYAML() (any, error) {
	if ev.Expression != nil {
		return ev.Expression.Raw, nil
	}
	return ev.Value, nil
}

// loadExpression parses a scalar starting with "$" as a runtime expression.
// Returns nil for anything else, and for expressions that do not parse
// (after adding a diagnostic).
func (c *parseContext) loadExpression(n parseNode) *RuntimeExpression {
	v, ok := n.(*valueNode)
	if !ok || !strings.HasPrefix(v.text, "$") {
		return nil
	}
	expr, err := parseExpression(v.text)
	if err != nil {
		c.addError(err.Error(), err)
		return nil
	}
	return expr
}

// loadExpressionOrAny returns an expression holder for scalars starting with
// "$" and a literal holder with the structural value of n otherwise.
func (c *parseContext) loadExpressionOrAny(n parseNode) ExpressionOrValue {
	if expr := c.loadExpression(n); expr != nil {
		return ExpressionOrValue{Expression: expr}
	}
	return ExpressionOrValue{Value: structural(n.raw())}
}
