package primate

import (
	js "github.com/mumingpo/primate/jsonschema"
)

// OptionalCodec marks its child's value as omittable. Absent values
// short-circuit in both directions without reaching the child; everything
// else, including nil, is delegated.
//
// It is meant to be the direct codec of an ObjectCodec field. ArrayCodec does
// not special-case absent elements, so holes in sequences are not supported.
type OptionalCodec[I, P any] struct {
	inner Codec[I, P]
}

// Optional wraps c so that an enclosing ObjectCodec accepts a missing key.
func Optional[I, P any](c Codec[I, P]) *OptionalCodec[I, P] {
	return &OptionalCodec[I, P]{inner: c}
}

func (c *OptionalCodec[I, P]) IsOptional() bool { return true }

// Name reports the child's name.
func (c *OptionalCodec[I, P]) Name() string { return c.inner.Name() }

// Inner returns the wrapped codec.
func (c *OptionalCodec[I, P]) Inner() Codec[I, P] { return c.inner }

func (c *OptionalCodec[I, P]) Serialize(v Maybe[I]) (Maybe[P], error) {
	iv, ok := v.Get()
	if !ok {
		return None[P](), nil
	}
	p, err := c.inner.Serialize(iv)
	if err != nil {
		return None[P](), err
	}
	return Some(p), nil
}

// Deserialize returns None for Absent (or an empty Maybe) and otherwise
// delegates to the child.
func (c *OptionalCodec[I, P]) Deserialize(raw any) (Maybe[I], error) {
	if IsAbsent(raw) {
		return None[I](), nil
	}
	v, err := c.inner.Deserialize(raw)
	if err != nil {
		return None[I](), err
	}
	return Some(v), nil
}

func (c *OptionalCodec[I, P]) JSONSchema() (*js.Schema, error) {
	return erase(c.inner).JSONSchema()
}

// serializeAny and deserializeAny work on unwrapped values so that object
// records hold plain I and P for present optional fields.
func (c *OptionalCodec[I, P]) serializeAny(v any) (any, error) {
	if IsAbsent(v) {
		return Absent, nil
	}
	return erase(c.inner).serializeAny(v)
}

func (c *OptionalCodec[I, P]) deserializeAny(raw any) (any, error) {
	if IsAbsent(raw) {
		return Absent, nil
	}
	return erase(c.inner).deserializeAny(raw)
}
