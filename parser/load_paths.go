package parser

import (
	"strings"
)

var (
	pathItemFields    fixedFields[*PathItem]
	operationFields   fixedFields[*Operation]
	mediaTypeFields   fixedFields[*MediaType]
	encodingFields    fixedFields[*Encoding]
	requestBodyFields fixedFields[*RequestBody]
	responseFields    fixedFields[*Response]
	responsesFields   fixedFields[*Responses]
	linkFields        fixedFields[*Link]

	pathItemPatterns = patternFields[*PathItem]{
		extensionField(func(p *PathItem) *map[string]any { return &p.Extra }),
	}
	operationPatterns = patternFields[*Operation]{
		extensionField(func(o *Operation) *map[string]any { return &o.Extra }),
	}
	mediaTypePatterns = patternFields[*MediaType]{
		extensionField(func(m *MediaType) *map[string]any { return &m.Extra }),
	}
	encodingPatterns = patternFields[*Encoding]{
		extensionField(func(e *Encoding) *map[string]any { return &e.Extra }),
	}
	requestBodyPatterns = patternFields[*RequestBody]{
		extensionField(func(r *RequestBody) *map[string]any { return &r.Extra }),
	}
	responsePatterns = patternFields[*Response]{
		extensionField(func(r *Response) *map[string]any { return &r.Extra }),
	}
	responsesPatterns patternFields[*Responses]
	pathsPatterns     patternFields[Paths]
	callbackPatterns  patternFields[*Callback]

	linkPatterns = patternFields[*Link]{
		extensionField(func(l *Link) *map[string]any { return &l.Extra }),
	}

	examplePatterns = patternFields[*Example]{
		extensionField(func(e *Example) *map[string]any { return &e.Extra }),
	}
	exampleFields = fixedFields[*Example]{
		"summary":         stringField(func(e *Example) *string { return &e.Summary }),
		"description":     stringField(func(e *Example) *string { return &e.Description }),
		"value":           func(c *parseContext, e *Example, n parseNode) { e.raw = n.raw() },
		"dataValue":       structuralField(func(e *Example) *any { return &e.DataValue }),
		"serializedValue": stringField(func(e *Example) *string { return &e.SerializedValue }),
		"externalValue":   stringField(func(e *Example) *string { return &e.ExternalValue }),
	}
	exampleAnyFields = anyFields[*Example]{
		"value": {
			value: func(e *Example) any { return e.raw },
			set:   func(e *Example, v any) { e.Value = v },
		},
	}

	mediaTypeAnyFields = anyFields[*MediaType]{
		"example": {
			value:  func(m *MediaType) any { return m.Example },
			set:    func(m *MediaType, v any) { m.Example = v },
			schema: func(m *MediaType) *Schema { return m.Schema },
		},
	}
	mediaTypeAnyMapFields = anyMapFields[*MediaType]{
		"examples": {
			values:  func(m *MediaType) map[string]any { return exampleValues(m.Examples) },
			set:     func(m *MediaType, key string, v any) { setExampleValue(m.Examples, key, v) },
			schema:  func(m *MediaType) *Schema { return m.Schema },
			element: "value",
		},
	}
)

func init() {
	operation := func(field func(*PathItem) **Operation) func(*parseContext, *PathItem, parseNode) {
		return func(c *parseContext, p *PathItem, n parseNode) { *field(p) = loadOperation(c, n) }
	}
	pathItemFields = fixedFields[*PathItem]{
		// $ref sits beside the other fields and is read by loadPathItem.
		"$ref":        func(*parseContext, *PathItem, parseNode) {},
		"summary":     stringField(func(p *PathItem) *string { return &p.Summary }),
		"description": stringField(func(p *PathItem) *string { return &p.Description }),
		"get":         operation(func(p *PathItem) **Operation { return &p.Get }),
		"put":         operation(func(p *PathItem) **Operation { return &p.Put }),
		"post":        operation(func(p *PathItem) **Operation { return &p.Post }),
		"delete":      operation(func(p *PathItem) **Operation { return &p.Delete }),
		"options":     operation(func(p *PathItem) **Operation { return &p.Options }),
		"head":        operation(func(p *PathItem) **Operation { return &p.Head }),
		"patch":       operation(func(p *PathItem) **Operation { return &p.Patch }),
		"trace":       operation(func(p *PathItem) **Operation { return &p.Trace }),
		"query":       operation(func(p *PathItem) **Operation { return &p.Query }),
		"servers": func(c *parseContext, p *PathItem, n parseNode) {
			p.Servers = loadObjectList(c, n, loadServer)
		},
		"parameters": func(c *parseContext, p *PathItem, n parseNode) {
			p.Parameters = loadObjectList(c, n, loadParameter)
		},
		"additionalOperations": func(c *parseContext, p *PathItem, n parseNode) {
			p.AdditionalOperations = loadObjectMap(c, n, loadOperation)
		},
	}

	operationFields = fixedFields[*Operation]{
		"tags":        stringListField(func(o *Operation) *[]string { return &o.Tags }),
		"summary":     stringField(func(o *Operation) *string { return &o.Summary }),
		"description": stringField(func(o *Operation) *string { return &o.Description }),
		"operationId": stringField(func(o *Operation) *string { return &o.OperationID }),
		"deprecated":  boolField(func(o *Operation) *bool { return &o.Deprecated }),
		"externalDocs": func(c *parseContext, o *Operation, n parseNode) {
			o.ExternalDocs = loadExternalDocs(c, n)
		},
		"parameters": func(c *parseContext, o *Operation, n parseNode) {
			o.Parameters = loadObjectList(c, n, loadParameter)
		},
		"requestBody": func(c *parseContext, o *Operation, n parseNode) {
			o.RequestBody = loadRequestBody(c, n)
		},
		"responses": func(c *parseContext, o *Operation, n parseNode) {
			o.Responses = loadResponses(c, n)
		},
		"callbacks": func(c *parseContext, o *Operation, n parseNode) {
			o.Callbacks = loadObjectMap(c, n, loadCallback)
		},
		"security": func(c *parseContext, o *Operation, n parseNode) {
			o.Security = loadObjectList(c, n, loadSecurityRequirement)
		},
		"servers": func(c *parseContext, o *Operation, n parseNode) {
			o.Servers = loadObjectList(c, n, loadServer)
		},
	}

	requestBodyFields = fixedFields[*RequestBody]{
		"description": stringField(func(r *RequestBody) *string { return &r.Description }),
		"required":    boolField(func(r *RequestBody) *bool { return &r.Required }),
		"content": func(c *parseContext, r *RequestBody, n parseNode) {
			r.Content = loadObjectMap(c, n, loadMediaType)
		},
	}

	mediaTypeFields = fixedFields[*MediaType]{
		"schema":  schemaField(func(m *MediaType) **Schema { return &m.Schema }),
		"example": rawField(func(m *MediaType) *any { return &m.Example }),
		"examples": func(c *parseContext, m *MediaType, n parseNode) {
			m.Examples = loadObjectMap(c, n, loadExample)
		},
		"encoding": func(c *parseContext, m *MediaType, n parseNode) {
			m.Encoding = loadObjectMap(c, n, objectLoader(encodingFields, encodingPatterns))
		},
	}

	encodingFields = fixedFields[*Encoding]{
		"contentType":   stringField(func(e *Encoding) *string { return &e.ContentType }),
		"style":         stringField(func(e *Encoding) *string { return &e.Style }),
		"allowReserved": boolField(func(e *Encoding) *bool { return &e.AllowReserved }),
		"explode":       optionalBoolField(func(e *Encoding) **bool { return &e.Explode }),
		"headers": func(c *parseContext, e *Encoding, n parseNode) {
			e.Headers = loadObjectMap(c, n, loadHeader)
		},
	}

	responsesFields = fixedFields[*Responses]{
		"default": func(c *parseContext, r *Responses, n parseNode) {
			r.Default = loadResponse(c, n)
		},
	}
	responsesPatterns = patternFields[*Responses]{
		extensionField(func(r *Responses) *map[string]any { return &r.Extra }),
		{
			match: isStatusCode,
			load: func(c *parseContext, r *Responses, code string, n parseNode) {
				if r.Codes == nil {
					r.Codes = make(map[string]*Response)
				}
				r.Codes[code] = loadResponse(c, n)
			},
		},
	}

	responseFields = fixedFields[*Response]{
		"summary":     stringField(func(r *Response) *string { return &r.Summary }),
		"description": stringField(func(r *Response) *string { return &r.Description }),
		"headers": func(c *parseContext, r *Response, n parseNode) {
			r.Headers = loadObjectMap(c, n, loadHeader)
		},
		"content": func(c *parseContext, r *Response, n parseNode) {
			r.Content = loadObjectMap(c, n, loadMediaType)
		},
		"links": func(c *parseContext, r *Response, n parseNode) {
			r.Links = loadObjectMap(c, n, loadLink)
		},
	}

	linkFields = fixedFields[*Link]{
		"operationRef": stringField(func(l *Link) *string { return &l.OperationRef }),
		"operationId":  stringField(func(l *Link) *string { return &l.OperationID }),
		"description":  stringField(func(l *Link) *string { return &l.Description }),
		"parameters": func(c *parseContext, l *Link, n parseNode) {
			l.Parameters = loadObjectMap(c, n, func(c *parseContext, n parseNode) ExpressionOrValue {
				return c.loadExpressionOrAny(n)
			})
		},
		"requestBody": func(c *parseContext, l *Link, n parseNode) {
			v := c.loadExpressionOrAny(n)
			l.RequestBody = &v
		},
		"server": func(c *parseContext, l *Link, n parseNode) {
			l.Server = loadServer(c, n)
		},
	}

	pathsPatterns = patternFields[Paths]{
		{
			match: func(name string) bool { return strings.HasPrefix(name, "/") },
			load: func(c *parseContext, p Paths, name string, n parseNode) {
				p[name] = loadPathItem(c, n)
			},
		},
	}

	callbackPatterns = patternFields[*Callback]{
		extensionField(func(cb *Callback) *map[string]any { return &cb.Extra }),
		{
			match: func(string) bool { return true },
			load:  loadCallbackExpression,
		},
	}
}

// isStatusCode matches response keys: a three digit code or a range such as "2XX".
func isStatusCode(name string) bool {
	if len(name) != 3 || name[0] < '1' || name[0] > '5' {
		return false
	}
	if strings.EqualFold(name[1:], "XX") {
		return true
	}
	return name[1] >= '0' && name[1] <= '9' && name[2] >= '0' && name[2] <= '9'
}

func loadPaths(c *parseContext, n parseNode) Paths {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	paths := make(Paths, len(m.entries))
	dispatch(c, m, paths, nil, pathsPatterns)
	return paths
}

func loadPathItem(c *parseContext, n parseNode) *PathItem {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	p := &PathItem{Ref: refOf(c, m)}
	dispatch(c, m, p, pathItemFields, pathItemPatterns)
	return p
}

func loadOperation(c *parseContext, n parseNode) *Operation {
	return objectLoader(operationFields, operationPatterns)(c, n)
}

func loadRequestBody(c *parseContext, n parseNode) *RequestBody {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &RequestBody{Ref: ref}
	}
	r := &RequestBody{}
	dispatch(c, m, r, requestBodyFields, requestBodyPatterns)
	return r
}

func loadMediaType(c *parseContext, n parseNode) *MediaType {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &MediaType{Ref: ref}
	}
	mt := &MediaType{}
	dispatch(c, m, mt, mediaTypeFields, mediaTypePatterns)
	processAnyFields(c, mt, mediaTypeAnyFields)
	processAnyMapFields(c, mt, mediaTypeAnyMapFields)
	return mt
}

func loadResponses(c *parseContext, n parseNode) *Responses {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	r := &Responses{}
	dispatch(c, m, r, responsesFields, responsesPatterns)
	return r
}

func loadResponse(c *parseContext, n parseNode) *Response {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &Response{Ref: ref}
	}
	r := &Response{}
	dispatch(c, m, r, responseFields, responsePatterns)
	return r
}

func loadLink(c *parseContext, n parseNode) *Link {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &Link{Ref: ref}
	}
	l := &Link{}
	dispatch(c, m, l, linkFields, linkPatterns)
	return l
}

func loadCallback(c *parseContext, n parseNode) *Callback {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &Callback{Ref: ref}
	}
	cb := &Callback{}
	dispatch(c, m, cb, nil, callbackPatterns)
	return cb
}

// loadCallbackExpression loads one callback entry: the key is a runtime
// expression and the value a path item.
func loadCallbackExpression(c *parseContext, cb *Callback, key string, n parseNode) {
	if cb.PathItems == nil {
		cb.PathItems = make(map[string]*PathItem)
		cb.Expressions = make(map[string]*RuntimeExpression)
	}
	expr, err := ParseRuntimeExpression(key)
	if err != nil {
		c.addError(err.Error(), err)
	} else {
		cb.Expressions[key] = expr
	}
	cb.PathItems[key] = loadPathItem(c, n)
}

func loadExample(c *parseContext, n parseNode) *Example {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &Example{Ref: ref}
	}
	e := &Example{}
	dispatch(c, m, e, exampleFields, examplePatterns)
	processAnyFields(c, e, exampleAnyFields)
	return e
}

// exampleValues returns the unconverted values of the inline examples in m.
func exampleValues(m map[string]*Example) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for key, e := range m {
		if e != nil && e.raw != nil {
			out[key] = e.raw
		}
	}
	return out
}

func setExampleValue(m map[string]*Example, key string, v any) {
	if e, ok := m[key]; ok && e != nil {
		e.Value = v
	}
}
