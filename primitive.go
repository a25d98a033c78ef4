package primate

import (
	js "github.com/mumingpo/primate/jsonschema"
)

// PrimitiveCodec wraps a caller-supplied pair of conversion functions for a
// single value. It performs no checks of its own: the deserializer is expected
// to validate the runtime shape of its input, and any error either function
// returns is passed through unchanged.
type PrimitiveCodec[I, P any] struct {
	serialize   func(I) (P, error)
	deserialize func(any) (I, error)
	name        string
	schema      *js.Schema
}

// Primitive returns a codec over a single value.
func Primitive[I, P any](serialize func(I) (P, error), deserialize func(any) (I, error)) *PrimitiveCodec[I, P] {
	return &PrimitiveCodec[I, P]{serialize: serialize, deserialize: deserialize}
}

func (c *PrimitiveCodec[I, P]) Serialize(v I) (P, error)      { return c.serialize(v) }
func (c *PrimitiveCodec[I, P]) Deserialize(raw any) (I, error) { return c.deserialize(raw) }
func (c *PrimitiveCodec[I, P]) IsOptional() bool              { return false }
func (c *PrimitiveCodec[I, P]) Name() string                  { return c.name }

// Named returns a copy of c carrying the given diagnostic name.
func (c *PrimitiveCodec[I, P]) Named(name string) *PrimitiveCodec[I, P] {
	cp := *c
	cp.name = name
	return &cp
}

// WithSchema returns a copy of c that reports s as the JSON Schema of its
// primitive side.
func (c *PrimitiveCodec[I, P]) WithSchema(s *js.Schema) *PrimitiveCodec[I, P] {
	cp := *c
	cp.schema = s
	return &cp
}

// JSONSchema returns the schema set by WithSchema, or the empty schema.
func (c *PrimitiveCodec[I, P]) JSONSchema() (*js.Schema, error) {
	if c.schema == nil {
		return &js.Schema{}, nil
	}
	cp := *c.schema
	return &cp, nil
}

func (c *PrimitiveCodec[I, P]) serializeAny(v any) (any, error) {
	iv, ok := castTo[I](v)
	if !ok {
		return nil, typeMismatch(label(KindPrimitive, c.name), OpSerialize, typeName[I](), v)
	}
	return c.serialize(iv)
}

func (c *PrimitiveCodec[I, P]) deserializeAny(raw any) (any, error) { return c.deserialize(raw) }
