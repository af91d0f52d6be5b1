package parser

// Parameter describes a single operation parameter
type Parameter struct {
	Ref           string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name          string                `yaml:"name,omitempty" json:"name,omitempty"`
	In            string                `yaml:"in,omitempty" json:"in,omitempty"` // "query", "header", "path", "cookie", "querystring" (3.2+)
	Description   string                `yaml:"description,omitempty" json:"description,omitempty"`
	Required      bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated    bool                  `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	AllowEmpty    bool                  `yaml:"allowEmptyValue,omitempty" json:"allowEmptyValue,omitempty"`
	Style         string                `yaml:"style,omitempty" json:"style,omitempty"`
	Explode       *bool                 `yaml:"explode,omitempty" json:"explode,omitempty"`
	AllowReserved bool                  `yaml:"allowReserved,omitempty" json:"allowReserved,omitempty"`
	Schema        *Schema               `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example       any                   `yaml:"example,omitempty" json:"example,omitempty"`
	Examples      map[string]*Example   `yaml:"examples,omitempty" json:"examples,omitempty"`
	Content       map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Header represents a header object
type Header struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool                  `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Style       string                `yaml:"style,omitempty" json:"style,omitempty"`
	Explode     *bool                 `yaml:"explode,omitempty" json:"explode,omitempty"`
	Schema      *Schema               `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example     any                   `yaml:"example,omitempty" json:"example,omitempty"`
	Examples    map[string]*Example   `yaml:"examples,omitempty" json:"examples,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}
