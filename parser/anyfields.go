package parser

import "sort"

// anyField describes a single Any-valued field of T and the schema that
// guides its conversion. schema may be nil for unguided fields.
type anyField[T any] struct {
	value  func(T) any
	set    func(T, any)
	schema func(T) *Schema
}

// anyListField describes a list of Any values sharing one guiding schema.
type anyListField[T any] struct {
	values func(T) []any
	set    func(T, int, any)
	schema func(T) *Schema
}

// anyMapField describes a map of Any values sharing one guiding schema.
// element, when set, is an extra pointer token naming the value inside each
// entry (e.g. "value" for a map of Example objects).
type anyMapField[T any] struct {
	values  func(T) map[string]any
	set     func(T, string, any)
	schema  func(T) *Schema
	element string
}

type (
	anyFields[T any]     map[string]anyField[T]
	anyListFields[T any] map[string]anyListField[T]
	anyMapFields[T any]  map[string]anyMapField[T]
)

// conversionTarget is where a converted value is written. The slot is looked
// up when assign runs, so a deferred conversion writes to the element that is
// there at replay time.
type conversionTarget interface {
	assign(v any)
}

type fieldTarget[T any] struct {
	obj T
	set func(T, any)
}

func (t fieldTarget[T]) assign(v any) { t.set(t.obj, v) }

type indexTarget[T any] struct {
	obj   T
	index int
	set   func(T, int, any)
}

func (t indexTarget[T]) assign(v any) { t.set(t.obj, t.index, v) }

type keyTarget[T any] struct {
	obj T
	key string
	set func(T, string, any)
}

func (t keyTarget[T]) assign(v any) { t.set(t.obj, t.key, v) }

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// processAnyFields converts every single-valued Any field of obj, in name order.
func processAnyFields[T any](c *parseContext, obj T, fields anyFields[T]) {
	for _, name := range sortedNames(fields) {
		f := fields[name]
		func() {
			c.push(name)
			defer c.pop()
			raw := f.value(obj)
			if raw == nil {
				return
			}
			c.convertInto(raw, schemaOf(f.schema, obj), fieldTarget[T]{obj: obj, set: f.set})
		}()
	}
}

// processAnyListFields converts every element of every list-valued Any field
// of obj, addressing each element by its index.
func processAnyListFields[T any](c *parseContext, obj T, fields anyListFields[T]) {
	for _, name := range sortedNames(fields) {
		f := fields[name]
		func() {
			c.push(name)
			defer c.pop()
			schema := schemaOf(f.schema, obj)
			for i, raw := range f.values(obj) {
				c.pushIndex(i)
				c.convertInto(raw, schema, indexTarget[T]{obj: obj, index: i, set: f.set})
				c.pop()
			}
		}()
	}
}

// processAnyMapFields converts every non-nil value of every map-valued Any
// field of obj, addressing each value by its key.
func processAnyMapFields[T any](c *parseContext, obj T, fields anyMapFields[T]) {
	for _, name := range sortedNames(fields) {
		f := fields[name]
		func() {
			c.push(name)
			defer c.pop()
			schema := schemaOf(f.schema, obj)
			values := f.values(obj)
			for _, key := range sortedNames(values) {
				raw := values[key]
				if raw == nil {
					continue
				}
				c.push(key)
				if f.element != "" {
					c.push(f.element)
				}
				c.convertInto(raw, schema, keyTarget[T]{obj: obj, key: key, set: f.set})
				if f.element != "" {
					c.pop()
				}
				c.pop()
			}
		}()
	}
}

func schemaOf[T any](get func(T) *Schema, obj T) *Schema {
	if get == nil {
		return nil
	}
	return get(obj)
}

// convertInto converts raw under schema and writes the result to target.
//
// When the schema is a $ref placeholder the value is converted structurally
// now and a deferred conversion is scheduled. When only nested schemas are
// placeholders the value is converted with the inline parts now and also
// scheduled; mismatches are then reported by the replay alone. Unscheduled
// conversions report mismatches immediately.
func (c *parseContext) convertInto(raw any, schema *Schema, target conversionTarget) {
	if schema != nil && schema.Ref != "" {
		c.schedule(raw, schema, target)
		target.assign(structural(raw))
		return
	}
	deferred := hasNestedRef(schema) && c.schedule(raw, schema, target)
	v, err := Convert(raw, schema, nil)
	target.assign(v)
	if err != nil && !deferred {
		c.conversionFailed(err)
	}
}
