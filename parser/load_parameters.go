package parser

var (
	parameterPatterns = patternFields[*Parameter]{
		extensionField(func(p *Parameter) *map[string]any { return &p.Extra }),
	}
	parameterFields = fixedFields[*Parameter]{
		"name":            stringField(func(p *Parameter) *string { return &p.Name }),
		"in":              stringField(func(p *Parameter) *string { return &p.In }),
		"description":     stringField(func(p *Parameter) *string { return &p.Description }),
		"required":        boolField(func(p *Parameter) *bool { return &p.Required }),
		"deprecated":      boolField(func(p *Parameter) *bool { return &p.Deprecated }),
		"allowEmptyValue": boolField(func(p *Parameter) *bool { return &p.AllowEmpty }),
		"style":           stringField(func(p *Parameter) *string { return &p.Style }),
		"explode":         optionalBoolField(func(p *Parameter) **bool { return &p.Explode }),
		"allowReserved":   boolField(func(p *Parameter) *bool { return &p.AllowReserved }),
		"schema":          schemaField(func(p *Parameter) **Schema { return &p.Schema }),
		"example":         rawField(func(p *Parameter) *any { return &p.Example }),
		"examples": func(c *parseContext, p *Parameter, n parseNode) {
			p.Examples = loadObjectMap(c, n, loadExample)
		},
		"content": func(c *parseContext, p *Parameter, n parseNode) {
			p.Content = loadObjectMap(c, n, loadMediaType)
		},
	}
	parameterAnyFields = anyFields[*Parameter]{
		"example": {
			value:  func(p *Parameter) any { return p.Example },
			set:    func(p *Parameter, v any) { p.Example = v },
			schema: func(p *Parameter) *Schema { return p.Schema },
		},
	}
	parameterAnyMapFields = anyMapFields[*Parameter]{
		"examples": {
			values:  func(p *Parameter) map[string]any { return exampleValues(p.Examples) },
			set:     func(p *Parameter, key string, v any) { setExampleValue(p.Examples, key, v) },
			schema:  func(p *Parameter) *Schema { return p.Schema },
			element: "value",
		},
	}

	headerPatterns = patternFields[*Header]{
		extensionField(func(h *Header) *map[string]any { return &h.Extra }),
	}
	headerFields = fixedFields[*Header]{
		"description": stringField(func(h *Header) *string { return &h.Description }),
		"required":    boolField(func(h *Header) *bool { return &h.Required }),
		"deprecated":  boolField(func(h *Header) *bool { return &h.Deprecated }),
		"style":       stringField(func(h *Header) *string { return &h.Style }),
		"explode":     optionalBoolField(func(h *Header) **bool { return &h.Explode }),
		"schema":      schemaField(func(h *Header) **Schema { return &h.Schema }),
		"example":     rawField(func(h *Header) *any { return &h.Example }),
		"examples": func(c *parseContext, h *Header, n parseNode) {
			h.Examples = loadObjectMap(c, n, loadExample)
		},
		"content": func(c *parseContext, h *Header, n parseNode) {
			h.Content = loadObjectMap(c, n, loadMediaType)
		},
	}
	headerAnyFields = anyFields[*Header]{
		"example": {
			value:  func(h *Header) any { return h.Example },
			set:    func(h *Header, v any) { h.Example = v },
			schema: func(h *Header) *Schema { return h.Schema },
		},
	}
	headerAnyMapFields = anyMapFields[*Header]{
		"examples": {
			values:  func(h *Header) map[string]any { return exampleValues(h.Examples) },
			set:     func(h *Header, key string, v any) { setExampleValue(h.Examples, key, v) },
			schema:  func(h *Header) *Schema { return h.Schema },
			element: "value",
		},
	}
)

func loadParameter(c *parseContext, n parseNode) *Parameter {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &Parameter{Ref: ref}
	}
	p := &Parameter{}
	dispatch(c, m, p, parameterFields, parameterPatterns)
	processAnyFields(c, p, parameterAnyFields)
	processAnyMapFields(c, p, parameterAnyMapFields)
	return p
}

func loadHeader(c *parseContext, n parseNode) *Header {
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &Header{Ref: ref}
	}
	h := &Header{}
	dispatch(c, m, h, headerFields, headerPatterns)
	processAnyFields(c, h, headerAnyFields)
	processAnyMapFields(c, h, headerAnyMapFields)
	return h
}
