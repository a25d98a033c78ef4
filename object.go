package primate

import (
	"sort"

	js "github.com/mumingpo/primate/jsonschema"
)

// FieldSpec is one entry of an ObjectCodec schema.
type FieldSpec struct {
	key   string
	codec fieldCodec
}

// Field registers codec c under key. Whether the key is required follows from
// c.IsOptional().
func Field[I, P any](key string, c Codec[I, P]) FieldSpec {
	return FieldSpec{key: key, codec: erase(c)}
}

// Key returns the field name.
func (f FieldSpec) Key() string { return f.key }

// IsOptional reports whether the field may be omitted.
func (f FieldSpec) IsOptional() bool { return f.codec.IsOptional() }

// ObjectCodec converts keyed records through a fixed, ordered schema of named
// child codecs. Internal and primitive records are both map[string]any.
type ObjectCodec struct {
	fields        []FieldSpec
	index         map[string]int
	name          string
	unknownPolicy UnknownPolicy
}

// Object builds an object codec. Fields are processed in argument order;
// registering the same key twice panics.
func Object(fields ...FieldSpec) *ObjectCodec {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := index[f.key]; dup {
			panic("primate: duplicate object field " + f.key)
		}
		index[f.key] = i
	}
	return &ObjectCodec{fields: append([]FieldSpec(nil), fields...), index: index}
}

// Named returns a copy of c carrying the given diagnostic name.
func (c *ObjectCodec) Named(name string) *ObjectCodec {
	cp := *c
	cp.name = name
	return &cp
}

// UnknownStrip returns a copy of c that ignores keys outside the schema (the
// default).
func (c *ObjectCodec) UnknownStrip() *ObjectCodec {
	cp := *c
	cp.unknownPolicy = UnknownStrip
	return &cp
}

// UnknownStrict returns a copy of c that rejects keys outside the schema.
func (c *ObjectCodec) UnknownStrict() *ObjectCodec {
	cp := *c
	cp.unknownPolicy = UnknownStrict
	return &cp
}

func (c *ObjectCodec) IsOptional() bool { return false }
func (c *ObjectCodec) Name() string     { return c.name }

// Fields returns the schema entries in declared order.
func (c *ObjectCodec) Fields() []FieldSpec { return append([]FieldSpec(nil), c.fields...) }

func (c *ObjectCodec) label() string { return label(KindObject, c.name) }

// Serialize converts obj field by field in schema order. A missing required
// key is a caller contract violation; a missing optional key is omitted from
// the output.
func (c *ObjectCodec) Serialize(obj map[string]any) (map[string]any, error) {
	if err := c.checkUnknown(OpSerialize, obj); err != nil {
		return nil, err
	}
	return c.convert(OpSerialize, obj)
}

// Deserialize validates that raw is a non-null object and converts it field
// by field in schema order. Keys outside the schema are ignored unless the
// codec is UnknownStrict.
func (c *ObjectCodec) Deserialize(raw any) (map[string]any, error) {
	src, isNull, ok := asRecord(raw)
	if isNull {
		return nil, newError(c.label(), OpDeserialize, CodeNull, nil)
	}
	if !ok {
		return nil, newError(c.label(), OpDeserialize, CodeNotObject, nil)
	}
	if err := c.checkUnknown(OpDeserialize, src); err != nil {
		return nil, err
	}
	return c.convert(OpDeserialize, src)
}

func (c *ObjectCodec) convert(op Op, src map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(c.fields))
	for _, f := range c.fields {
		val, exists := src[f.key]
		if !exists || IsAbsent(val) {
			if f.codec.IsOptional() {
				continue
			}
			return nil, newError(c.label(), op, CodeMissingKey, map[string]string{"key": f.key})
		}
		var (
			res any
			err error
		)
		if op == OpSerialize {
			res, err = f.codec.serializeAny(val)
		} else {
			res, err = f.codec.deserializeAny(val)
		}
		if err != nil {
			e := wrapField(c.label(), op, f.key, err)
			logWrapped(e)
			return nil, e
		}
		if IsAbsent(res) {
			continue
		}
		out[f.key] = res
	}
	return out, nil
}

// checkUnknown enforces UnknownStrict, reporting the first unknown key in
// sorted order.
func (c *ObjectCodec) checkUnknown(op Op, src map[string]any) error {
	if c.unknownPolicy != UnknownStrict {
		return nil
	}
	var uks []string
	for k := range src {
		if _, known := c.index[k]; !known {
			uks = append(uks, k)
		}
	}
	if len(uks) == 0 {
		return nil
	}
	sort.Strings(uks)
	return newError(c.label(), op, CodeUnknownKey, map[string]string{"key": uks[0]})
}

// JSONSchema describes the primitive side of c. Required lists the keys whose
// codec is not optional, in schema order.
func (c *ObjectCodec) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(c.fields))
	var req []string
	for _, f := range c.fields {
		ps, err := f.codec.JSONSchema()
		if err != nil {
			return nil, err
		}
		props[f.key] = ps
		if !f.codec.IsOptional() {
			req = append(req, f.key)
		}
	}
	s := &js.Schema{Type: "object", Properties: props, Required: req}
	if c.unknownPolicy == UnknownStrict {
		s.AdditionalProperties = false
	}
	return s, nil
}

func (c *ObjectCodec) serializeAny(v any) (any, error) {
	m, isNull, ok := asRecord(v)
	if !ok && !isNull {
		return nil, typeMismatch(c.label(), OpSerialize, "map[string]any", v)
	}
	return c.Serialize(m)
}

func (c *ObjectCodec) deserializeAny(raw any) (any, error) { return c.Deserialize(raw) }
