package parser

// Schema represents a Schema Object: JSON Schema as used by OAS 3.0 (an
// extended subset of draft 4/5) and OAS 3.1+ (draft 2020-12).
//
// A schema written as {"$ref": ...} is loaded as a placeholder carrying only
// Ref; the placeholder stands in for the named component until it is
// resolved.
type Schema struct {
	// JSON Schema Core
	Ref     string             `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Schema  string             `yaml:"$schema,omitempty" json:"$schema,omitempty"`
	ID      string             `yaml:"$id,omitempty" json:"$id,omitempty"`
	Anchor  string             `yaml:"$anchor,omitempty" json:"$anchor,omitempty"`
	Comment string             `yaml:"$comment,omitempty" json:"$comment,omitempty"`
	Defs    map[string]*Schema `yaml:"$defs,omitempty" json:"$defs,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Examples    []any  `yaml:"examples,omitempty" json:"examples,omitempty"` // OAS 3.1+
	Example     any    `yaml:"example,omitempty" json:"example,omitempty"`   // deprecated in 3.1+
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	ReadOnly    bool   `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly   bool   `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`

	// Type validation
	Type   SchemaTypes `yaml:"type,omitempty" json:"type,omitempty"` // one type, or a list in OAS 3.1+
	Format string      `yaml:"format,omitempty" json:"format,omitempty"`
	Enum   []any       `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const  any         `yaml:"const,omitempty" json:"const,omitempty"` // OAS 3.1+

	// OAS 3.0 only; replaced by type: [T, "null"] in 3.1+
	Nullable bool `yaml:"nullable,omitempty" json:"nullable,omitempty"`

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"` // bool in 3.0, number in 3.1+
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"` // bool in 3.0, number in 3.1+

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array validation
	Items       *Schema   `yaml:"items,omitempty" json:"items,omitempty"`
	PrefixItems []*Schema `yaml:"prefixItems,omitempty" json:"prefixItems,omitempty"` // OAS 3.1+
	Contains    *Schema   `yaml:"contains,omitempty" json:"contains,omitempty"`       // OAS 3.1+
	MaxItems    *int      `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int      `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool      `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`

	// Object validation
	Properties        map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	PatternProperties map[string]*Schema `yaml:"patternProperties,omitempty" json:"patternProperties,omitempty"`
	// AdditionalProperties is set when additionalProperties is a schema;
	// AdditionalPropertiesAllowed when it is a boolean.
	AdditionalProperties        *Schema  `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`
	AdditionalPropertiesAllowed *bool    `yaml:"-" json:"-"`
	Required                    []string `yaml:"required,omitempty" json:"required,omitempty"`
	PropertyNames               *Schema  `yaml:"propertyNames,omitempty" json:"propertyNames,omitempty"` // OAS 3.1+
	MaxProperties               *int     `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties               *int     `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`

	// Composition and conditionals
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`
	If    *Schema   `yaml:"if,omitempty" json:"if,omitempty"`     // OAS 3.1+
	Then  *Schema   `yaml:"then,omitempty" json:"then,omitempty"` // OAS 3.1+
	Else  *Schema   `yaml:"else,omitempty" json:"else,omitempty"` // OAS 3.1+

	// OAS keywords
	Discriminator *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`
	XML           *XML           `yaml:"xml,omitempty" json:"xml,omitempty"`
	ExternalDocs  *ExternalDocs  `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// SchemaTypes is the value of the type keyword. OAS 3.0 allows a single
// type; OAS 3.1+ also allows a list, tried in order during conversion.
type SchemaTypes []string

// Has reports whether t includes typ.
func (t SchemaTypes) Has(typ string) bool {
	for _, s := range t {
		if s == typ {
			return true
		}
	}
	return false
}

// MarshalJSON writes a single type as a string and several as an array.
func (t SchemaTypes) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return jsonMarshal(t[0])
	}
	return jsonMarshal([]string(t))
}

// MarshalYAML writes a single type as a string and several as a sequence.
func (t SchemaTypes) MarshalYAML() (any, error) {
	if len(t) == 1 {
		return t[0], nil
	}
	return []string(t), nil
}

// Discriminator represents a discriminator for polymorphism
type Discriminator struct {
	PropertyName string            `yaml:"propertyName" json:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	Extra        map[string]any    `yaml:",inline" json:"-"`
}

// XML represents metadata for XML encoding
type XML struct {
	Name      string         `yaml:"name,omitempty" json:"name,omitempty"`
	Namespace string         `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Prefix    string         `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Attribute bool           `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	Wrapped   bool           `yaml:"wrapped,omitempty" json:"wrapped,omitempty"`
	Extra     map[string]any `yaml:",inline" json:"-"`
}
