package parser

var (
	schemaFields   fixedFields[*Schema]
	schemaPatterns = patternFields[*Schema]{
		extensionField(func(s *Schema) *map[string]any { return &s.Extra }),
	}

	// Example values are guided by the schema that declares them.
	schemaAnyFields = anyFields[*Schema]{
		"default": {
			value:  func(s *Schema) any { return s.Default },
			set:    func(s *Schema, v any) { s.Default = v },
			schema: selfSchema,
		},
		"example": {
			value:  func(s *Schema) any { return s.Example },
			set:    func(s *Schema, v any) { s.Example = v },
			schema: selfSchema,
		},
		"const": {
			value:  func(s *Schema) any { return s.Const },
			set:    func(s *Schema, v any) { s.Const = v },
			schema: selfSchema,
		},
	}
	schemaAnyListFields = anyListFields[*Schema]{
		"enum": {
			values: func(s *Schema) []any { return s.Enum },
			set:    func(s *Schema, i int, v any) { setIndex(s.Enum, i, v) },
			schema: selfSchema,
		},
		"examples": {
			values: func(s *Schema) []any { return s.Examples },
			set:    func(s *Schema, i int, v any) { setIndex(s.Examples, i, v) },
			schema: selfSchema,
		},
	}

	discriminatorFields = fixedFields[*Discriminator]{
		"propertyName": stringField(func(d *Discriminator) *string { return &d.PropertyName }),
		"mapping": func(c *parseContext, d *Discriminator, n parseNode) {
			d.Mapping = c.asStringMap(n)
		},
	}
	discriminatorPatterns = patternFields[*Discriminator]{
		extensionField(func(d *Discriminator) *map[string]any { return &d.Extra }),
	}

	xmlFields = fixedFields[*XML]{
		"name":      stringField(func(x *XML) *string { return &x.Name }),
		"namespace": stringField(func(x *XML) *string { return &x.Namespace }),
		"prefix":    stringField(func(x *XML) *string { return &x.Prefix }),
		"attribute": boolField(func(x *XML) *bool { return &x.Attribute }),
		"wrapped":   boolField(func(x *XML) *bool { return &x.Wrapped }),
	}
	xmlPatterns = patternFields[*XML]{
		extensionField(func(x *XML) *map[string]any { return &x.Extra }),
	}
)

// schemaFields refers back to loadSchema, so it is built in init.
func init() {
	schemaFields = fixedFields[*Schema]{
		"$schema":  stringField(func(s *Schema) *string { return &s.Schema }),
		"$id":      stringField(func(s *Schema) *string { return &s.ID }),
		"$anchor":  stringField(func(s *Schema) *string { return &s.Anchor }),
		"$comment": stringField(func(s *Schema) *string { return &s.Comment }),
		"$defs":    schemaMapField(func(s *Schema) *map[string]*Schema { return &s.Defs }),

		"title":       stringField(func(s *Schema) *string { return &s.Title }),
		"description": stringField(func(s *Schema) *string { return &s.Description }),
		"default":     rawField(func(s *Schema) *any { return &s.Default }),
		"examples":    rawListField(func(s *Schema) *[]any { return &s.Examples }),
		"example":     rawField(func(s *Schema) *any { return &s.Example }),
		"deprecated":  boolField(func(s *Schema) *bool { return &s.Deprecated }),
		"readOnly":    boolField(func(s *Schema) *bool { return &s.ReadOnly }),
		"writeOnly":   boolField(func(s *Schema) *bool { return &s.WriteOnly }),

		"type":     loadSchemaType,
		"format":   stringField(func(s *Schema) *string { return &s.Format }),
		"enum":     rawListField(func(s *Schema) *[]any { return &s.Enum }),
		"const":    rawField(func(s *Schema) *any { return &s.Const }),
		"nullable": boolField(func(s *Schema) *bool { return &s.Nullable }),

		"multipleOf":       floatField(func(s *Schema) **float64 { return &s.MultipleOf }),
		"maximum":          floatField(func(s *Schema) **float64 { return &s.Maximum }),
		"exclusiveMaximum": structuralField(func(s *Schema) *any { return &s.ExclusiveMaximum }),
		"minimum":          floatField(func(s *Schema) **float64 { return &s.Minimum }),
		"exclusiveMinimum": structuralField(func(s *Schema) *any { return &s.ExclusiveMinimum }),

		"maxLength": intField(func(s *Schema) **int { return &s.MaxLength }),
		"minLength": intField(func(s *Schema) **int { return &s.MinLength }),
		"pattern":   stringField(func(s *Schema) *string { return &s.Pattern }),

		"items":       schemaField(func(s *Schema) **Schema { return &s.Items }),
		"prefixItems": schemaListField(func(s *Schema) *[]*Schema { return &s.PrefixItems }),
		"contains":    schemaField(func(s *Schema) **Schema { return &s.Contains }),
		"maxItems":    intField(func(s *Schema) **int { return &s.MaxItems }),
		"minItems":    intField(func(s *Schema) **int { return &s.MinItems }),
		"uniqueItems": boolField(func(s *Schema) *bool { return &s.UniqueItems }),

		"properties":           schemaMapField(func(s *Schema) *map[string]*Schema { return &s.Properties }),
		"patternProperties":    schemaMapField(func(s *Schema) *map[string]*Schema { return &s.PatternProperties }),
		"additionalProperties": loadAdditionalProperties,
		"required":             stringListField(func(s *Schema) *[]string { return &s.Required }),
		"propertyNames":        schemaField(func(s *Schema) **Schema { return &s.PropertyNames }),
		"maxProperties":        intField(func(s *Schema) **int { return &s.MaxProperties }),
		"minProperties":        intField(func(s *Schema) **int { return &s.MinProperties }),

		"allOf": schemaListField(func(s *Schema) *[]*Schema { return &s.AllOf }),
		"anyOf": schemaListField(func(s *Schema) *[]*Schema { return &s.AnyOf }),
		"oneOf": schemaListField(func(s *Schema) *[]*Schema { return &s.OneOf }),
		"not":   schemaField(func(s *Schema) **Schema { return &s.Not }),
		"if":    schemaField(func(s *Schema) **Schema { return &s.If }),
		"then":  schemaField(func(s *Schema) **Schema { return &s.Then }),
		"else":  schemaField(func(s *Schema) **Schema { return &s.Else }),

		"discriminator": func(c *parseContext, s *Schema, n parseNode) {
			s.Discriminator = &Discriminator{}
			loadMap(c, n, s.Discriminator, discriminatorFields, discriminatorPatterns)
		},
		"xml": func(c *parseContext, s *Schema, n parseNode) {
			s.XML = &XML{}
			loadMap(c, n, s.XML, xmlFields, xmlPatterns)
		},
		"externalDocs": func(c *parseContext, s *Schema, n parseNode) {
			s.ExternalDocs = loadExternalDocs(c, n)
		},
	}
}

func selfSchema(s *Schema) *Schema { return s }

// setIndex writes v to l[i] if the element still exists.
func setIndex(l []any, i int, v any) {
	if i >= 0 && i < len(l) {
		l[i] = v
	}
}

// loadSchema loads a Schema Object. A $ref yields a placeholder, and the
// OAS 3.1 boolean schemas true and false yield an empty schema and a schema
// matching nothing. Null yields nil.
func loadSchema(c *parseContext, n parseNode) *Schema {
	if v, ok := n.(*valueNode); ok && !v.quoted {
		if b, ok := parseBoolText(v.text); ok {
			if b {
				return &Schema{}
			}
			return &Schema{Not: &Schema{}}
		}
	}
	m, ok := c.asMap(n)
	if !ok {
		return nil
	}
	if ref := refOf(c, m); ref != "" {
		return &Schema{Ref: ref}
	}
	s := &Schema{}
	dispatch(c, m, s, schemaFields, schemaPatterns)
	processAnyFields(c, s, schemaAnyFields)
	processAnyListFields(c, s, schemaAnyListFields)
	return s
}

func loadSchemaType(c *parseContext, s *Schema, n parseNode) {
	if _, ok := n.(*listNode); ok {
		s.Type = c.asStringList(n)
		return
	}
	if t := c.asString(n); t != "" {
		s.Type = SchemaTypes{t}
	}
}

func loadAdditionalProperties(c *parseContext, s *Schema, n parseNode) {
	if v, ok := n.(*valueNode); ok && !v.quoted {
		if b, ok := parseBoolText(v.text); ok {
			s.AdditionalPropertiesAllowed = &b
			return
		}
	}
	s.AdditionalProperties = loadSchema(c, n)
}

func schemaField[T any](field func(T) **Schema) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = loadSchema(c, n) }
}

func schemaListField[T any](field func(T) *[]*Schema) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = loadObjectList(c, n, loadSchema) }
}

func schemaMapField[T any](field func(T) *map[string]*Schema) func(*parseContext, T, parseNode) {
	return func(c *parseContext, obj T, n parseNode) { *field(obj) = loadObjectMap(c, n, loadSchema) }
}
