package parser

// SecurityRequirement lists the required security schemes for an operation,
// mapping each scheme name to the scopes it needs.
type SecurityRequirement map[string][]string

// SecurityScheme defines a security scheme that can be used by operations
type SecurityScheme struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	Type        string `yaml:"type,omitempty" json:"type,omitempty"` // "apiKey", "http", "mutualTLS", "oauth2", "openIdConnect"
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Name string `yaml:"name,omitempty" json:"name,omitempty"` // apiKey: header, query, or cookie parameter name
	In   string `yaml:"in,omitempty" json:"in,omitempty"`     // apiKey: "query", "header", "cookie"

	Scheme       string `yaml:"scheme,omitempty" json:"scheme,omitempty"`             // http: e.g., "basic", "bearer"
	BearerFormat string `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"` // http: e.g., "JWT"

	Flows *OAuthFlows `yaml:"flows,omitempty" json:"flows,omitempty"` // oauth2

	OpenIDConnectURL  string `yaml:"openIdConnectUrl,omitempty" json:"openIdConnectUrl,omitempty"`
	OAuth2MetadataURL string `yaml:"oauth2MetadataUrl,omitempty" json:"oauth2MetadataUrl,omitempty"` // OAS 3.2+
	Deprecated        bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`               // OAS 3.2+

	Extra map[string]any `yaml:",inline" json:"-"`
}

// OAuthFlows allows configuration of the supported OAuth flows
type OAuthFlows struct {
	Implicit            *OAuthFlow `yaml:"implicit,omitempty" json:"implicit,omitempty"`
	Password            *OAuthFlow `yaml:"password,omitempty" json:"password,omitempty"`
	ClientCredentials   *OAuthFlow `yaml:"clientCredentials,omitempty" json:"clientCredentials,omitempty"`
	AuthorizationCode   *OAuthFlow `yaml:"authorizationCode,omitempty" json:"authorizationCode,omitempty"`
	DeviceAuthorization *OAuthFlow `yaml:"deviceAuthorization,omitempty" json:"deviceAuthorization,omitempty"` // OAS 3.2+

	Extra map[string]any `yaml:",inline" json:"-"`
}

// OAuthFlow contains configuration details for a supported OAuth flow
type OAuthFlow struct {
	AuthorizationURL       string            `yaml:"authorizationUrl,omitempty" json:"authorizationUrl,omitempty"`
	DeviceAuthorizationURL string            `yaml:"deviceAuthorizationUrl,omitempty" json:"deviceAuthorizationUrl,omitempty"` // OAS 3.2+
	TokenURL               string            `yaml:"tokenUrl,omitempty" json:"tokenUrl,omitempty"`
	RefreshURL             string            `yaml:"refreshUrl,omitempty" json:"refreshUrl,omitempty"`
	Scopes                 map[string]string `yaml:"scopes" json:"scopes"`
	Extra                  map[string]any    `yaml:",inline" json:"-"`
}
