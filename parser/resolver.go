package parser

import (
	"github.com/erraggy/oasload/internal/pathutil"
	"github.com/erraggy/oasload/oaserrors"
)

func component[T any](m map[string]*T, name string) (any, bool) {
	v, ok := m[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Resolve looks up a local component reference such as
// "#/components/schemas/Pet". The name is unescaped as a JSON pointer token.
// It reports false for external references, unknown kinds and missing
// components.
func (d *Document) Resolve(ref string) (any, bool) {
	if d == nil || d.Components == nil {
		return nil, false
	}
	kind, name, ok := pathutil.ParseComponentRef(ref)
	if !ok {
		return nil, false
	}
	c := d.Components
	switch kind {
	case pathutil.KindSchemas:
		return component(c.Schemas, name)
	case pathutil.KindResponses:
		return component(c.Responses, name)
	case pathutil.KindParameters:
		return component(c.Parameters, name)
	case pathutil.KindExamples:
		return component(c.Examples, name)
	case pathutil.KindRequestBodies:
		return component(c.RequestBodies, name)
	case pathutil.KindHeaders:
		return component(c.Headers, name)
	case pathutil.KindSecuritySchemes:
		return component(c.SecuritySchemes, name)
	case pathutil.KindLinks:
		return component(c.Links, name)
	case pathutil.KindCallbacks:
		return component(c.Callbacks, name)
	case pathutil.KindPathItems:
		return component(c.PathItems, name)
	case pathutil.KindMediaTypes:
		return component(c.MediaTypes, name)
	}
	return nil, false
}

// ResolveSchema looks up a schema component. Its signature matches
// SchemaResolver.
func (d *Document) ResolveSchema(ref string) (*Schema, bool) {
	v, ok := d.Resolve(ref)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Schema)
	return s, ok
}

// SchemaResolver returns a resolver over the schema components of d.
func (d *Document) SchemaResolver() SchemaResolver {
	return d.ResolveSchema
}

// linker replaces reference placeholders with the component objects they
// name. References that would close a cycle keep their placeholder, so the
// linked document stays acyclic.
type linker struct {
	c      *parseContext
	doc    *Document
	active map[any]bool
	done   map[any]bool

	resolved   int
	unresolved int
	circular   int
}

func (c *parseContext) linkReferences(doc *Document) {
	l := &linker{c: c, doc: doc, active: make(map[any]bool), done: make(map[any]bool)}
	l.walkDocument(doc)
	c.logger.Debug("references linked",
		"resolved", l.resolved,
		"unresolved", l.unresolved,
		"circular", l.circular)
}

// lookup follows ref, and any chain of component references behind it, to
// a concrete object of type T. It also returns the reference that names
// that object directly.
func lookup[T any](l *linker, ref string, refOf func(*T) string) (*T, string, error) {
	seen := make(map[string]bool)
	for hops := 0; ; hops++ {
		if !pathutil.IsLocalRef(ref) {
			return nil, "", &oaserrors.ReferenceError{Ref: ref, IsExternal: true}
		}
		if seen[ref] || hops >= maxRefHops {
			return nil, "", &oaserrors.ReferenceError{Ref: ref, IsCircular: true}
		}
		seen[ref] = true
		v, ok := l.doc.Resolve(ref)
		if !ok {
			return nil, "", &oaserrors.ReferenceError{Ref: ref, Message: "not found"}
		}
		t, ok := v.(*T)
		if !ok {
			return nil, "", &oaserrors.ReferenceError{Ref: ref, Message: "points to a different kind of object"}
		}
		next := refOf(t)
		if next == "" {
			return t, ref, nil
		}
		ref = next
	}
}

// link resolves the placeholder at *p, if it is one, and walks the object.
func link[T any](l *linker, p **T, refOf func(*T) string, walk func(*linker, *T)) {
	if *p == nil {
		return
	}
	ref := refOf(*p)
	if ref == "" {
		l.visit(*p, func() { walk(l, *p) })
		return
	}
	target, direct, err := lookup(l, ref, refOf)
	if err != nil {
		l.unresolved++
		l.c.addDiagnosticAt(pathutil.Join(l.c.pointer(), "$ref"), SeverityWarning, err.Error(), err)
		return
	}
	if l.active[target] {
		l.circular++
		return
	}
	*p = target
	l.resolved++
	if l.done[target] {
		return
	}

	// The target is walked at its own location.
	saved := l.c.path.Snapshot()
	defer l.c.path.Restore(saved)
	l.c.path.Reset()
	for _, token := range pathutil.Split(direct) {
		l.c.path.Push(token)
	}
	l.visit(target, func() { walk(l, target) })
}

func (l *linker) visit(obj any, walk func()) {
	if l.done[obj] || l.active[obj] {
		return
	}
	l.active[obj] = true
	walk()
	delete(l.active, obj)
	l.done[obj] = true
}

func linkMap[T any](l *linker, field string, m map[string]*T, refOf func(*T) string, walk func(*linker, *T)) {
	if len(m) == 0 {
		return
	}
	l.c.push(field)
	defer l.c.pop()
	for _, key := range sortedNames(m) {
		v := m[key]
		l.c.push(key)
		link(l, &v, refOf, walk)
		l.c.pop()
		m[key] = v
	}
}

func linkList[T any](l *linker, field string, list []*T, refOf func(*T) string, walk func(*linker, *T)) {
	if len(list) == 0 {
		return
	}
	l.c.push(field)
	defer l.c.pop()
	for i := range list {
		l.c.pushIndex(i)
		link(l, &list[i], refOf, walk)
		l.c.pop()
	}
}

func linkField[T any](l *linker, field string, p **T, refOf func(*T) string, walk func(*linker, *T)) {
	if *p == nil {
		return
	}
	l.c.push(field)
	defer l.c.pop()
	link(l, p, refOf, walk)
}

func schemaRef(s *Schema) string                 { return s.Ref }
func parameterRef(p *Parameter) string           { return p.Ref }
func responseRef(r *Response) string             { return r.Ref }
func requestBodyRef(r *RequestBody) string       { return r.Ref }
func headerRef(h *Header) string                 { return h.Ref }
func exampleRef(e *Example) string               { return e.Ref }
func linkRef(k *Link) string                     { return k.Ref }
func callbackRef(cb *Callback) string            { return cb.Ref }
func securitySchemeRef(s *SecurityScheme) string { return s.Ref }
func pathItemRef(p *PathItem) string             { return p.Ref }
func mediaTypeRef(m *MediaType) string           { return m.Ref }

func walkNothing[T any](*linker, *T) {}

func (l *linker) walkDocument(d *Document) {
	if d == nil {
		return
	}
	// Components first, so their objects are linked at their own pointers.
	if c := d.Components; c != nil {
		l.c.push("components")
		linkMap(l, pathutil.KindSchemas, c.Schemas, schemaRef, walkSchema)
		linkMap(l, pathutil.KindResponses, c.Responses, responseRef, walkResponse)
		linkMap(l, pathutil.KindParameters, c.Parameters, parameterRef, walkParameter)
		linkMap(l, pathutil.KindExamples, c.Examples, exampleRef, walkNothing[Example])
		linkMap(l, pathutil.KindRequestBodies, c.RequestBodies, requestBodyRef, walkRequestBody)
		linkMap(l, pathutil.KindHeaders, c.Headers, headerRef, walkHeader)
		linkMap(l, pathutil.KindSecuritySchemes, c.SecuritySchemes, securitySchemeRef, walkNothing[SecurityScheme])
		linkMap(l, pathutil.KindLinks, c.Links, linkRef, walkNothing[Link])
		linkMap(l, pathutil.KindCallbacks, c.Callbacks, callbackRef, walkCallback)
		linkMap(l, pathutil.KindPathItems, c.PathItems, pathItemRef, walkPathItem)
		linkMap(l, pathutil.KindMediaTypes, c.MediaTypes, mediaTypeRef, walkMediaType)
		l.c.pop()
	}
	linkMap(l, "paths", d.Paths, pathItemRef, walkPathItem)
	linkMap(l, "webhooks", d.Webhooks, pathItemRef, walkPathItem)
}

func walkPathItem(l *linker, p *PathItem) {
	linkList(l, "parameters", p.Parameters, parameterRef, walkParameter)
	for _, op := range []struct {
		method string
		op     *Operation
	}{
		{"get", p.Get}, {"put", p.Put}, {"post", p.Post}, {"delete", p.Delete},
		{"options", p.Options}, {"head", p.Head}, {"patch", p.Patch},
		{"trace", p.Trace}, {"query", p.Query},
	} {
		if op.op != nil {
			l.c.push(op.method)
			walkOperation(l, op.op)
			l.c.pop()
		}
	}
	if len(p.AdditionalOperations) > 0 {
		l.c.push("additionalOperations")
		for _, method := range sortedNames(p.AdditionalOperations) {
			if op := p.AdditionalOperations[method]; op != nil {
				l.c.push(method)
				walkOperation(l, op)
				l.c.pop()
			}
		}
		l.c.pop()
	}
}

func walkOperation(l *linker, op *Operation) {
	linkList(l, "parameters", op.Parameters, parameterRef, walkParameter)
	linkField(l, "requestBody", &op.RequestBody, requestBodyRef, walkRequestBody)
	if r := op.Responses; r != nil {
		l.c.push("responses")
		linkField(l, "default", &r.Default, responseRef, walkResponse)
		for _, code := range sortedNames(r.Codes) {
			v := r.Codes[code]
			l.c.push(code)
			link(l, &v, responseRef, walkResponse)
			l.c.pop()
			r.Codes[code] = v
		}
		l.c.pop()
	}
	linkMap(l, "callbacks", op.Callbacks, callbackRef, walkCallback)
}

func walkCallback(l *linker, cb *Callback) {
	for _, key := range sortedNames(cb.PathItems) {
		v := cb.PathItems[key]
		l.c.push(key)
		link(l, &v, pathItemRef, walkPathItem)
		l.c.pop()
		cb.PathItems[key] = v
	}
}

func walkRequestBody(l *linker, r *RequestBody) {
	linkMap(l, "content", r.Content, mediaTypeRef, walkMediaType)
}

func walkResponse(l *linker, r *Response) {
	linkMap(l, "headers", r.Headers, headerRef, walkHeader)
	linkMap(l, "content", r.Content, mediaTypeRef, walkMediaType)
	linkMap(l, "links", r.Links, linkRef, walkNothing[Link])
}

func walkMediaType(l *linker, m *MediaType) {
	linkField(l, "schema", &m.Schema, schemaRef, walkSchema)
	linkMap(l, "examples", m.Examples, exampleRef, walkNothing[Example])
	if len(m.Encoding) > 0 {
		l.c.push("encoding")
		for _, name := range sortedNames(m.Encoding) {
			if e := m.Encoding[name]; e != nil {
				l.c.push(name)
				linkMap(l, "headers", e.Headers, headerRef, walkHeader)
				l.c.pop()
			}
		}
		l.c.pop()
	}
}

func walkParameter(l *linker, p *Parameter) {
	linkField(l, "schema", &p.Schema, schemaRef, walkSchema)
	linkMap(l, "examples", p.Examples, exampleRef, walkNothing[Example])
	linkMap(l, "content", p.Content, mediaTypeRef, walkMediaType)
}

func walkHeader(l *linker, h *Header) {
	linkField(l, "schema", &h.Schema, schemaRef, walkSchema)
	linkMap(l, "examples", h.Examples, exampleRef, walkNothing[Example])
	linkMap(l, "content", h.Content, mediaTypeRef, walkMediaType)
}

func walkSchema(l *linker, s *Schema) {
	linkMap(l, "$defs", s.Defs, schemaRef, walkSchema)
	linkField(l, "items", &s.Items, schemaRef, walkSchema)
	linkList(l, "prefixItems", s.PrefixItems, schemaRef, walkSchema)
	linkField(l, "contains", &s.Contains, schemaRef, walkSchema)
	linkMap(l, "properties", s.Properties, schemaRef, walkSchema)
	linkMap(l, "patternProperties", s.PatternProperties, schemaRef, walkSchema)
	linkField(l, "additionalProperties", &s.AdditionalProperties, schemaRef, walkSchema)
	linkField(l, "propertyNames", &s.PropertyNames, schemaRef, walkSchema)
	linkList(l, "allOf", s.AllOf, schemaRef, walkSchema)
	linkList(l, "anyOf", s.AnyOf, schemaRef, walkSchema)
	linkList(l, "oneOf", s.OneOf, schemaRef, walkSchema)
	linkField(l, "not", &s.Not, schemaRef, walkSchema)
	linkField(l, "if", &s.If, schemaRef, walkSchema)
	linkField(l, "then", &s.Then, schemaRef, walkSchema)
	linkField(l, "else", &s.Else, schemaRef, walkSchema)
}
