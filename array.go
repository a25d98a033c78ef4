package primate

import (
	js "github.com/mumingpo/primate/jsonschema"
)

// ArrayCodec applies one child codec uniformly to every element of an
// ordered sequence. Length and order are preserved in both directions and the
// input is never mutated.
type ArrayCodec[I, P any] struct {
	elem Codec[I, P]
	name string
}

// Array returns a codec over sequences of the values elem converts.
func Array[I, P any](elem Codec[I, P]) *ArrayCodec[I, P] {
	return &ArrayCodec[I, P]{elem: elem}
}

// Named returns a copy of c carrying the given diagnostic name.
func (c *ArrayCodec[I, P]) Named(name string) *ArrayCodec[I, P] {
	cp := *c
	cp.name = name
	return &cp
}

func (c *ArrayCodec[I, P]) IsOptional() bool { return false }
func (c *ArrayCodec[I, P]) Name() string     { return c.name }

// Elem returns the element codec.
func (c *ArrayCodec[I, P]) Elem() Codec[I, P] { return c.elem }

func (c *ArrayCodec[I, P]) Serialize(seq []I) ([]P, error) {
	out := make([]P, len(seq))
	for i := range seq {
		p, err := c.elem.Serialize(seq[i])
		if err != nil {
			return nil, c.wrap(OpSerialize, i, err)
		}
		out[i] = p
	}
	return out, nil
}

// Deserialize fails unless raw is sequence-shaped, then converts each element
// in order. The first element failure aborts the whole operation.
func (c *ArrayCodec[I, P]) Deserialize(raw any) ([]I, error) {
	src, ok := asSequence(raw)
	if !ok {
		return nil, newError(label(KindArray, c.name), OpDeserialize, CodeNotArray, nil)
	}
	out := make([]I, len(src))
	for i := range src {
		v, err := c.elem.Deserialize(src[i])
		if err != nil {
			return nil, c.wrap(OpDeserialize, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (c *ArrayCodec[I, P]) wrap(op Op, i int, err error) error {
	e := wrapElement(label(KindArray, c.name), op, i, err)
	logWrapped(e)
	return e
}

func (c *ArrayCodec[I, P]) JSONSchema() (*js.Schema, error) {
	es, err := erase(c.elem).JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "array", Items: es}, nil
}

// serializeAny accepts []I as well as any other sequence whose elements are
// I, such as []any read back from an untyped record.
func (c *ArrayCodec[I, P]) serializeAny(v any) (any, error) {
	if seq, ok := v.([]I); ok {
		return c.Serialize(seq)
	}
	src, ok := asSequence(v)
	if !ok {
		return nil, typeMismatch(label(KindArray, c.name), OpSerialize, typeName[[]I](), v)
	}
	seq := make([]I, len(src))
	for i := range src {
		iv, ok := castTo[I](src[i])
		if !ok {
			return nil, c.wrap(OpSerialize, i, typeMismatch(label(KindArray, c.name), OpSerialize, typeName[I](), src[i]))
		}
		seq[i] = iv
	}
	return c.Serialize(seq)
}

func (c *ArrayCodec[I, P]) deserializeAny(raw any) (any, error) { return c.Deserialize(raw) }
