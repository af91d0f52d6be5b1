package parser

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erraggy/oasload/internal/pathutil"
	"github.com/erraggy/oasload/oaserrors"
)

// rawScalar is a scalar as read from the document, before any conversion.
type rawScalar struct {
	text   string
	quoted bool
}

func (r rawScalar) String() string { return r.text }

// infer returns the weakest type that round-trips a plain scalar: null,
// boolean, integer, float, else string. Quoted scalars are always strings.
func (r rawScalar) infer() any {
	if r.quoted {
		return r.text
	}
	if isNullText(r.text) {
		return nil
	}
	if b, ok := parseBoolText(r.text); ok {
		return b
	}
	if i, err := strconv.ParseInt(r.text, 10, 64); err == nil {
		return i
	}
	if f, ok := parseFloatText(r.text); ok {
		return f
	}
	return r.text
}

func parseBoolText(s string) (bool, bool) {
	switch s {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

// parseFloatText parses decimal and exponent notation plus the YAML
// spellings of infinity and NaN. Words Go would otherwise accept ("inf",
// "NaN", hex floats) are rejected.
func parseFloatText(s string) (float64, bool) {
	switch s {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	}
	if s == "" || strings.Trim(s, "0123456789+-.eE") != "" || !strings.ContainsAny(s, "0123456789") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// structural converts v using only its own shape.
func structural(v any) any {
	switch t := v.(type) {
	case rawScalar:
		return t.infer()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = structural(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = structural(item)
		}
		return out
	}
	return v
}

func isNullValue(v any) bool {
	if v == nil {
		return true
	}
	r, ok := v.(rawScalar)
	return ok && !r.quoted && isNullText(r.text)
}

// SchemaResolver returns the schema a reference such as
// "#/components/schemas/Pet" names.
type SchemaResolver func(ref string) (*Schema, bool)

// maxRefHops bounds how many $ref placeholders are followed in a row.
const maxRefHops = 32

// Convert coerces value toward the type schema declares.
//
// The value may be any JSON/YAML-shaped Go value (nil, bool, numbers,
// string, []any, map[string]any) or a value taken from a loaded document.
// With a nil schema only structural conversion happens. Referenced schemas
// are followed through resolve; without a resolver (or when a reference does
// not resolve) that part of the value is converted structurally.
//
// Values that do not fit the schema keep their structural form; the returned
// *oaserrors.ConversionError points (relative to value) at the first one and
// counts them all. The best-effort value is returned either way.
func Convert(value any, schema *Schema, resolve SchemaResolver) (any, error) {
	cv := &converter{resolve: resolve}
	out := cv.convert(value, schema, "")
	return out, cv.err()
}

type mismatch struct {
	pointer  string
	value    any
	expected string
	message  string
}

type converter struct {
	resolve    SchemaResolver
	mismatches []mismatch
}

func (cv *converter) err() error {
	if len(cv.mismatches) == 0 {
		return nil
	}
	m := cv.mismatches[0]
	return &oaserrors.ConversionError{
		Pointer:  m.pointer,
		Value:    m.value,
		Expected: m.expected,
		Count:    len(cv.mismatches),
		Message:  m.message,
	}
}

func (cv *converter) fail(ptr string, v any, expected string) {
	m := mismatch{pointer: ptr, expected: expected}
	switch t := v.(type) {
	case map[string]any:
		m.message = fmt.Sprintf("expected %s, got object", expected)
	case []any:
		m.message = fmt.Sprintf("expected %s, got array", expected)
	case rawScalar:
		m.value = t.text
	default:
		m.value = v
	}
	cv.mismatches = append(cv.mismatches, m)
}

// deref follows s through $ref placeholders. Returns nil when a reference
// cannot be followed.
func (cv *converter) deref(s *Schema) *Schema {
	s, _ = resolveSchemaChain(s, cv.resolve)
	return s
}

func (cv *converter) convert(v any, s *Schema, ptr string) any {
	s = cv.deref(s)
	if s == nil {
		return structural(v)
	}
	if isNullValue(v) {
		return nil
	}

	types := cv.types(s, 0)
	switch len(types) {
	case 0:
		return structural(v)
	case 1:
		out, ok := cv.convertAs(v, s, types[0], ptr)
		if !ok {
			cv.fail(ptr, v, types[0])
			return structural(v)
		}
		return out
	}

	// Type lists: the first type the value fits without nested mismatches wins.
	for _, t := range types {
		trial := &converter{resolve: cv.resolve}
		if out, ok := trial.convertAs(v, s, t, ptr); ok && len(trial.mismatches) == 0 {
			return out
		}
	}
	cv.fail(ptr, v, strings.Join(types, " or "))
	return structural(v)
}

// types returns the declared types of s, inferring "object" or "array" from
// structural keywords and looking through allOf when none are declared.
func (cv *converter) types(s *Schema, depth int) []string {
	if len(s.Type) > 0 {
		return s.Type
	}
	if len(s.Properties) > 0 || s.AdditionalProperties != nil {
		return []string{"object"}
	}
	if s.Items != nil {
		return []string{"array"}
	}
	if depth < maxRefHops {
		for _, member := range s.AllOf {
			if m := cv.deref(member); m != nil {
				if t := cv.types(m, depth+1); len(t) > 0 {
					return t
				}
			}
		}
	}
	return nil
}

// propertySchema returns the schema for property key of s, falling back to
// allOf members and then additionalProperties.
func (cv *converter) propertySchema(s *Schema, key string, depth int) *Schema {
	if p, ok := s.Properties[key]; ok {
		return p
	}
	if depth < maxRefHops {
		for _, member := range s.AllOf {
			if m := cv.deref(member); m != nil {
				if p := cv.propertySchema(m, key, depth+1); p != nil {
					return p
				}
			}
		}
	}
	return s.AdditionalProperties
}

func (cv *converter) convertAs(v any, s *Schema, typ string, ptr string) (any, bool) {
	switch typ {
	case "object":
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(m))
		for _, k := range keys {
			out[k] = cv.convert(m[k], cv.propertySchema(s, k, 0), pathutil.Join(ptr, k))
		}
		return out, true
	case "array":
		l, ok := v.([]any)
		if !ok {
			return nil, false
		}
		out := make([]any, len(l))
		for i, item := range l {
			out[i] = cv.convert(item, s.Items, ptr+"/"+strconv.Itoa(i))
		}
		return out, true
	case "integer":
		return convertInteger(v, s.Format)
	case "number":
		return convertNumber(v, s.Format)
	case "boolean":
		return convertBoolean(v)
	case "string":
		return convertString(v, s.Format)
	case "null":
		return nil, false
	}
	// Unknown type names give no guidance.
	return structural(v), true
}

// scalarText returns the text of a scalar value in any of its forms.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case rawScalar:
		return t.text, true
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case decimal.Decimal:
		return t.String(), true
	}
	return "", false
}

func convertInteger(v any, format string) (any, bool) {
	var i int64
	switch t := v.(type) {
	case int64:
		i = t
	case int:
		i = int64(t)
	case int32:
		i = int64(t)
	default:
		text, ok := scalarText(v)
		if !ok {
			return nil, false
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return nil, false
		}
		if err != nil {
			// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
			f, ok := parseFloatText(text)
			if !ok || f != math.Trunc(f) || f >= 1<<63 || f < -(1<<63) {
				return nil, false
			}
			n = int64(f)
		}
		i = n
	}
	if format == "int32" && (i < math.MinInt32 || i > math.MaxInt32) {
		return nil, false
	}
	return i, true
}

func convertNumber(v any, format string) (any, bool) {
	if format == "decimal" {
		switch t := v.(type) {
		case decimal.Decimal:
			return t, true
		case float64:
			return decimal.NewFromFloat(t), true
		case int64:
			return decimal.NewFromInt(t), true
		}
		text, ok := scalarText(v)
		if !ok {
			return nil, false
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, false
		}
		return d, true
	}

	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case decimal.Decimal:
		return t.InexactFloat64(), true
	}
	text, ok := scalarText(v)
	if !ok {
		return nil, false
	}
	f, ok := parseFloatText(text)
	if !ok {
		return nil, false
	}
	return f, true
}

func convertBoolean(v any) (any, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	text, ok := scalarText(v)
	if !ok {
		return nil, false
	}
	return parseBoolText(text)
}

const dateLayout = "2006-01-02"

func convertString(v any, format string) (any, bool) {
	switch t := v.(type) {
	case []byte:
		if format == "byte" || format == "binary" {
			return t, true
		}
	case time.Time:
		if format == "date" || format == "date-time" {
			return t, true
		}
	}
	text, ok := scalarText(v)
	if !ok {
		return nil, false
	}

	switch format {
	case "byte":
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			if b, err = base64.RawStdEncoding.DecodeString(text); err != nil {
				return nil, false
			}
		}
		return b, true
	case "binary":
		return []byte(text), true
	case "date":
		d, err := time.Parse(dateLayout, text)
		if err != nil {
			return nil, false
		}
		return d, true
	case "date-time":
		d, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return nil, false
		}
		return d, true
	}
	return text, true
}

// hasNestedRef reports whether any schema reachable through the keywords
// conversion follows (properties, items, additionalProperties, allOf)
// is a $ref placeholder.
func hasNestedRef(s *Schema) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Properties {
		if p != nil && (p.Ref != "" || hasNestedRef(p)) {
			return true
		}
	}
	for _, child := range append([]*Schema{s.Items, s.AdditionalProperties}, s.AllOf...) {
		if child != nil && (child.Ref != "" || hasNestedRef(child)) {
			return true
		}
	}
	return false
}
