package parser

// Paths holds the relative paths to the individual endpoints
type Paths map[string]*PathItem

// PathItem describes the operations available on a single path
type PathItem struct {
	Ref         string       `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Get         *Operation   `yaml:"get,omitempty" json:"get,omitempty"`
	Put         *Operation   `yaml:"put,omitempty" json:"put,omitempty"`
	Post        *Operation   `yaml:"post,omitempty" json:"post,omitempty"`
	Delete      *Operation   `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options     *Operation   `yaml:"options,omitempty" json:"options,omitempty"`
	Head        *Operation   `yaml:"head,omitempty" json:"head,omitempty"`
	Patch       *Operation   `yaml:"patch,omitempty" json:"patch,omitempty"`
	Trace       *Operation   `yaml:"trace,omitempty" json:"trace,omitempty"`
	Query       *Operation   `yaml:"query,omitempty" json:"query,omitempty"` // OAS 3.2+
	Servers     []*Server    `yaml:"servers,omitempty" json:"servers,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`

	// OAS 3.2+ additions
	AdditionalOperations map[string]*Operation `yaml:"additionalOperations,omitempty" json:"additionalOperations,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Operations returns the operations of the path item keyed by lowercase
// method, including OAS 3.2 additional operations keyed as written.
func (p *PathItem) Operations() map[string]*Operation {
	if p == nil {
		return nil
	}
	ops := make(map[string]*Operation)
	for method, op := range map[string]*Operation{
		"get": p.Get, "put": p.Put, "post": p.Post, "delete": p.Delete,
		"options": p.Options, "head": p.Head, "patch": p.Patch, "trace": p.Trace, "query": p.Query,
	} {
		if op != nil {
			ops[method] = op
		}
	}
	for method, op := range p.AdditionalOperations {
		if op != nil {
			ops[method] = op
		}
	}
	return ops
}

// Operation describes a single API operation on a path
type Operation struct {
	Tags         []string              `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary      string                `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description  string                `yaml:"description,omitempty" json:"description,omitempty"`
	ExternalDocs *ExternalDocs         `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	OperationID  string                `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters   []*Parameter          `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody  *RequestBody          `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses    *Responses            `yaml:"responses,omitempty" json:"responses,omitempty"`
	Callbacks    map[string]*Callback  `yaml:"callbacks,omitempty" json:"callbacks,omitempty"`
	Deprecated   bool                  `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Security     []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
	Servers      []*Server             `yaml:"servers,omitempty" json:"servers,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// RequestBody describes a single request body
type RequestBody struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// MediaType provides schema and examples for a media type
type MediaType struct {
	Ref      string               `yaml:"$ref,omitempty" json:"$ref,omitempty"` // OAS 3.2+ components.mediaTypes
	Schema   *Schema              `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example  any                  `yaml:"example,omitempty" json:"example,omitempty"`
	Examples map[string]*Example  `yaml:"examples,omitempty" json:"examples,omitempty"`
	Encoding map[string]*Encoding `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	Extra    map[string]any       `yaml:",inline" json:"-"`
}

// Encoding defines encoding for a specific property
type Encoding struct {
	ContentType   string             `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	Headers       map[string]*Header `yaml:"headers,omitempty" json:"headers,omitempty"`
	Style         string             `yaml:"style,omitempty" json:"style,omitempty"`
	Explode       *bool              `yaml:"explode,omitempty" json:"explode,omitempty"`
	AllowReserved bool               `yaml:"allowReserved,omitempty" json:"allowReserved,omitempty"`
	Extra         map[string]any     `yaml:",inline" json:"-"`
}

// Responses is a container for the expected responses of an operation
type Responses struct {
	Default *Response            `yaml:"default,omitempty" json:"default,omitempty"`
	Codes   map[string]*Response `yaml:"codes,omitempty" json:"codes,omitempty"`
	Extra   map[string]any       `yaml:"-" json:"-"`
}

// Response describes a single response from an API operation
type Response struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Summary     string                `yaml:"summary,omitempty" json:"summary,omitempty"` // OAS 3.2+
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Headers     map[string]*Header    `yaml:"headers,omitempty" json:"headers,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Links       map[string]*Link      `yaml:"links,omitempty" json:"links,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// Link represents a possible design-time link for a response
type Link struct {
	Ref          string                       `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	OperationRef string                       `yaml:"operationRef,omitempty" json:"operationRef,omitempty"`
	OperationID  string                       `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters   map[string]ExpressionOrValue `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody  *ExpressionOrValue           `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Description  string                       `yaml:"description,omitempty" json:"description,omitempty"`
	Server       *Server                      `yaml:"server,omitempty" json:"server,omitempty"`
	Extra        map[string]any               `yaml:",inline" json:"-"`
}

// Callback is a map of runtime expressions to the path items describing the
// out-of-band requests the API may make.
type Callback struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	// PathItems is keyed by the expression text as written
	PathItems map[string]*PathItem `yaml:"pathItems,omitempty" json:"pathItems,omitempty"`
	// Expressions holds the parsed form of each key of PathItems
	Expressions map[string]*RuntimeExpression `yaml:"-" json:"-"`
	Extra       map[string]any                `yaml:"-" json:"-"`
}

// Example represents an example object
type Example struct {
	Ref           string         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Summary       string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description   string         `yaml:"description,omitempty" json:"description,omitempty"`
	Value         any            `yaml:"value,omitempty" json:"value,omitempty"`
	ExternalValue string         `yaml:"externalValue,omitempty" json:"externalValue,omitempty"`

	// OAS 3.2+ additions
	DataValue       any    `yaml:"dataValue,omitempty" json:"dataValue,omitempty"`
	SerializedValue string `yaml:"serializedValue,omitempty" json:"serializedValue,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`

	// raw is the unconverted value, kept so that a parent with a schema can
	// convert it again under that schema.
	raw any
}
