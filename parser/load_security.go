package parser

var (
	securitySchemePatterns = patternFields[*SecurityScheme]{
		extensionField(func(s *SecurityScheme) *map[string]any { return &s.Extra }),
	}
	securitySchemeFields = fixedFields[*SecurityScheme]{
		"type":              stringField(func(s *SecurityScheme) *string { return &s.Type }),
		"description":       stringField(func(s *SecurityScheme) *string { return &s.Description }),
		"name":              stringField(func(s *SecurityScheme) *string { return &s.Name }),
		"in":                stringField(func(s *SecurityScheme) *string { return &s.In }),
		"scheme":            stringField(func(s *SecurityScheme) *string { return &s.Scheme }),
		"bearerFormat":      stringField(func(s *SecurityScheme) *string { return &s.BearerFormat }),
		"openIdConnectUrl":  stringField(func(s *SecurityScheme) *string { return &s.OpenIDConnectURL }),
		"oauth2MetadataUrl": stringField(func(s *SecurityScheme) *string { return &s.OAuth2MetadataURL }),
		"deprecated":        boolField(func(s *SecurityScheme) *bool { return &s.Deprecated }),
		"flows": func(c *parseContext, s *SecurityScheme, n parseNode) {
			s.Flows = objectLoader(oauthFlowsFields, oauthFlowsPatterns)(c, n)
		},
	}

	oauthFlowsPatterns = patternFields[*OAuthFlows]{
		extensionField(func(f *OAuthFlows) *map[string]any { return &f.Extra }),
	}
	oauthFlowsFields = fixedFields[*OAuthFlows]{
		"implicit":            oauthFlowField(func(f *OAuthFlows) **OAuthFlow { return &f.Implicit }),
		"password":            oauthFlowField(func(f *OAuthFlows) **OAuthFlow { return &f.Password }),
		"clientCredentials":   oauthFlowField(func(f *OAuthFlows) **OAuthFlow { return &f.ClientCredentials }),
		"authorizationCode":   oauthFlowField(func(f *OAuthFlows) **OAuthFlow { return &f.AuthorizationCode }),
		"deviceAuthorization": oauthFlowField(func(f *OAuthFlows) **OAuthFlow { return &f.DeviceAuthorization }),
	}

	oauthFlowPatterns = patternFields[*OAuthFlow]{
		extensionField(func(f *OAuthFlow) *map[string]any { return &f.Extra }),
	}
	oauthFlowFields = fixedFields[*OAuthFlow]{
		"authorizationUrl":       stringField(func(f *OAuthFlow) *string { return &f.AuthorizationURL }),
		"deviceAuthorizationUrl": stringField(func(f *OAuthFlow) *string { return &f.DeviceAuthorizationURL }),
		"tokenUrl":               stringField(func(f *OAuthFlow) *string { return &f.TokenURL }),
		"refreshUrl":             stringField(func(f *OAuthFlow) *string { return &f.RefreshURL }),
		"scopes": func(c *parseContext, f *OAuthFlow, n parseNode) {
			f.Scopes = c.asStringMap(n)
		},
	}
)

func oauthFlowField(field func(*OAuthFlows) **OAuthFlow) func(*parseContext, *OAuthFlows, parseNode) {
	return func(c *parseContext, f *OAuthFlows, n parseNode) {
		*field(f) = objectLoader(oauthFlowFields, oauthFlowPatterns)(c, n)
	}
}

func loadSecurityScheme(c *parseContext, n parseNode) *SecurityScheme {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &SecurityScheme{Ref: ref}
	}
	s := &SecurityScheme{}
	dispatch(c, m, s, securitySchemeFields, securitySchemePatterns)
	return s
}

// loadSecurityRequirement reads a mapping of scheme names to scope lists. An
// empty mapping is kept: it marks the requirement as optional.
func loadSecurityRequirement(c *parseContext, n parseNode) SecurityRequirement {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	req := make(SecurityRequirement, len(m.entries))
	for _, e := range m.entries {
		c.push(e.key)
		scopes := c.asStringList(e.value)
		if scopes == nil {
			scopes = []string{}
		}
		req[e.key] = scopes
		c.pop()
	}
	return req
}
