package parser

import "fmt"

var (
	documentFields   fixedFields[*Document]
	documentPatterns = patternFields[*Document]{
		extensionField(func(d *Document) *map[string]any { return &d.Extra }),
	}

	componentsFields   fixedFields[*Components]
	componentsPatterns = patternFields[*Components]{
		extensionField(func(c *Components) *map[string]any { return &c.Extra }),
	}

	infoFields = fixedFields[*Info]{
		"title":          stringField(func(i *Info) *string { return &i.Title }),
		"summary":        stringField(func(i *Info) *string { return &i.Summary }),
		"description":    stringField(func(i *Info) *string { return &i.Description }),
		"termsOfService": stringField(func(i *Info) *string { return &i.TermsOfService }),
		"version":        stringField(func(i *Info) *string { return &i.Version }),
		"contact": func(c *parseContext, i *Info, n parseNode) {
			i.Contact = objectLoader(contactFields, contactPatterns)(c, n)
		},
		"license": func(c *parseContext, i *Info, n parseNode) {
			i.License = objectLoader(licenseFields, licensePatterns)(c, n)
		},
	}
	infoPatterns = patternFields[*Info]{
		extensionField(func(i *Info) *map[string]any { return &i.Extra }),
	}

	contactFields = fixedFields[*Contact]{
		"name":  stringField(func(o *Contact) *string { return &o.Name }),
		"url":   stringField(func(o *Contact) *string { return &o.URL }),
		"email": stringField(func(o *Contact) *string { return &o.Email }),
	}
	contactPatterns = patternFields[*Contact]{
		extensionField(func(o *Contact) *map[string]any { return &o.Extra }),
	}

	licenseFields = fixedFields[*License]{
		"name":       stringField(func(l *License) *string { return &l.Name }),
		"identifier": stringField(func(l *License) *string { return &l.Identifier }),
		"url":        stringField(func(l *License) *string { return &l.URL }),
	}
	licensePatterns = patternFields[*License]{
		extensionField(func(l *License) *map[string]any { return &l.Extra }),
	}

	serverFields = fixedFields[*Server]{
		"url":         stringField(func(s *Server) *string { return &s.URL }),
		"description": stringField(func(s *Server) *string { return &s.Description }),
		"name":        stringField(func(s *Server) *string { return &s.Name }),
		"variables": func(c *parseContext, s *Server, n parseNode) {
			s.Variables = loadObjectMap(c, n, objectLoader(serverVariableFields, serverVariablePatterns))
		},
	}
	serverPatterns = patternFields[*Server]{
		extensionField(func(s *Server) *map[string]any { return &s.Extra }),
	}

	serverVariableFields = fixedFields[*ServerVariable]{
		"enum":        stringListField(func(v *ServerVariable) *[]string { return &v.Enum }),
		"default":     stringField(func(v *ServerVariable) *string { return &v.Default }),
		"description": stringField(func(v *ServerVariable) *string { return &v.Description }),
	}
	serverVariablePatterns = patternFields[*ServerVariable]{
		extensionField(func(v *ServerVariable) *map[string]any { return &v.Extra }),
	}

	tagFields = fixedFields[*Tag]{
		"name":        stringField(func(t *Tag) *string { return &t.Name }),
		"summary":     stringField(func(t *Tag) *string { return &t.Summary }),
		"description": stringField(func(t *Tag) *string { return &t.Description }),
		"parent":      stringField(func(t *Tag) *string { return &t.Parent }),
		"kind":        stringField(func(t *Tag) *string { return &t.Kind }),
		"externalDocs": func(c *parseContext, t *Tag, n parseNode) {
			t.ExternalDocs = loadExternalDocs(c, n)
		},
	}
	tagPatterns = patternFields[*Tag]{
		extensionField(func(t *Tag) *map[string]any { return &t.Extra }),
	}

	externalDocsFields = fixedFields[*ExternalDocs]{
		"description": stringField(func(e *ExternalDocs) *string { return &e.Description }),
		"url":         stringField(func(e *ExternalDocs) *string { return &e.URL }),
	}
	externalDocsPatterns = patternFields[*ExternalDocs]{
		extensionField(func(e *ExternalDocs) *map[string]any { return &e.Extra }),
	}
)

func init() {
	documentFields = fixedFields[*Document]{
		"openapi":           stringField(func(d *Document) *string { return &d.OpenAPI }),
		"jsonSchemaDialect": stringField(func(d *Document) *string { return &d.JSONSchemaDialect }),
		"$self":             stringField(func(d *Document) *string { return &d.Self }),
		"info": func(c *parseContext, d *Document, n parseNode) {
			d.Info = objectLoader(infoFields, infoPatterns)(c, n)
		},
		"servers": func(c *parseContext, d *Document, n parseNode) {
			d.Servers = loadObjectList(c, n, loadServer)
		},
		"paths": func(c *parseContext, d *Document, n parseNode) {
			d.Paths = loadPaths(c, n)
		},
		"webhooks": func(c *parseContext, d *Document, n parseNode) {
			d.Webhooks = loadObjectMap(c, n, loadPathItem)
		},
		"components": func(c *parseContext, d *Document, n parseNode) {
			d.Components = objectLoader(componentsFields, componentsPatterns)(c, n)
		},
		"security": func(c *parseContext, d *Document, n parseNode) {
			d.Security = loadObjectList(c, n, loadSecurityRequirement)
		},
		"tags": func(c *parseContext, d *Document, n parseNode) {
			d.Tags = loadObjectList(c, n, objectLoader(tagFields, tagPatterns))
		},
		"externalDocs": func(c *parseContext, d *Document, n parseNode) {
			d.ExternalDocs = loadExternalDocs(c, n)
		},
	}

	componentsFields = fixedFields[*Components]{
		"schemas": func(c *parseContext, o *Components, n parseNode) {
			o.Schemas = loadObjectMap(c, n, loadSchema)
		},
		"responses": func(c *parseContext, o *Components, n parseNode) {
			o.Responses = loadObjectMap(c, n, loadResponse)
		},
		"parameters": func(c *parseContext, o *Components, n parseNode) {
			o.Parameters = loadObjectMap(c, n, loadParameter)
		},
		"examples": func(c *parseContext, o *Components, n parseNode) {
			o.Examples = loadObjectMap(c, n, loadExample)
		},
		"requestBodies": func(c *parseContext, o *Components, n parseNode) {
			o.RequestBodies = loadObjectMap(c, n, loadRequestBody)
		},
		"headers": func(c *parseContext, o *Components, n parseNode) {
			o.Headers = loadObjectMap(c, n, loadHeader)
		},
		"securitySchemes": func(c *parseContext, o *Components, n parseNode) {
			o.SecuritySchemes = loadObjectMap(c, n, loadSecurityScheme)
		},
		"links": func(c *parseContext, o *Components, n parseNode) {
			o.Links = loadObjectMap(c, n, loadLink)
		},
		"callbacks": func(c *parseContext, o *Components, n parseNode) {
			o.Callbacks = loadObjectMap(c, n, loadCallback)
		},
		"pathItems": func(c *parseContext, o *Components, n parseNode) {
			o.PathItems = loadObjectMap(c, n, loadPathItem)
		},
		"mediaTypes": func(c *parseContext, o *Components, n parseNode) {
			o.MediaTypes = loadObjectMap(c, n, loadMediaType)
		},
	}
}

// objectLoader returns a loader that dispatches a mapping into a new T.
func objectLoader[T any](fixed fixedFields[*T], patterns patternFields[*T]) func(*parseContext, parseNode) *T {
	return func(c *parseContext, n parseNode) *T {
		m, ok := c.asMap(n)
		if !ok {
			return nil
		}
		obj := new(T)
		dispatch(c, m, obj, fixed, patterns)
		return obj
	}
}

// loadDocument loads the root of an OAS 3.x document.
func loadDocument(c *parseContext, n parseNode) *Document {
	doc := &Document{OASVersion: c.version}
	m, ok := c.asMap(n)
	if !ok {
		return doc
	}
	dispatch(c, m, doc, documentFields, documentPatterns)
	return doc
}

func loadServer(c *parseContext, n parseNode) *Server {
	return objectLoader(serverFields, serverPatterns)(c, n)
}

func loadExternalDocs(c *parseContext, n parseNode) *ExternalDocs {
	return objectLoader(externalDocsFields, externalDocsPatterns)(c, n)
}

// detectVersion reads the openapi field of the root mapping.
func detectVersion(root parseNode) (string, OASVersion, error) {
	m, ok := root.(*mapNode)
	if !ok {
		return "", Unknown, fmt.Errorf("document root must be a mapping, got %s", describe(root))
	}
	n, ok := m.get("openapi").(*valueNode)
	if !ok || n.isNull() {
		if m.get("swagger") != nil {
			return "", Unknown, fmt.Errorf("swagger 2.0 documents are not supported; only OpenAPI 3.x")
		}
		return "", Unknown, fmt.Errorf("missing openapi version field")
	}
	v, ok := ParseVersion(n.text)
	if !ok {
		return n.text, Unknown, fmt.Errorf("unsupported OpenAPI version: %s", n.text)
	}
	return n.text, v, nil
}
