package primate

import (
	"fmt"
	"reflect"

	js "github.com/mumingpo/primate/jsonschema"
)

// StructCodec binds an ObjectCodec to struct type T. Schema keys map to
// exported struct fields resolved by ResolveStructKey. An optional field may be
// a pointer, in which case nil means absent.
type StructCodec[T any] struct {
	inner      *ObjectCodec
	t          reflect.Type
	fieldByKey map[string]int // schema key -> struct field index
}

// Bind binds o to struct type T. Every schema key must resolve to an exported
// field of T.
func Bind[T any](o *ObjectCodec) (*StructCodec[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("primate: Bind requires a struct type, got %s", rt)
	}
	idxByName := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		idxByName[name] = i
	}
	fm := make(map[string]int, len(o.fields))
	for _, f := range o.fields {
		i, ok := idxByName[f.key]
		if !ok {
			return nil, fmt.Errorf("primate: %s has no field for key %q", rt, f.key)
		}
		fm[f.key] = i
	}
	return &StructCodec[T]{inner: o, t: rt, fieldByKey: fm}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](o *ObjectCodec) *StructCodec[T] {
	s, err := Bind[T](o)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *StructCodec[T]) IsOptional() bool { return false }
func (s *StructCodec[T]) Name() string     { return s.inner.Name() }

// Object returns the bound object codec.
func (s *StructCodec[T]) Object() *ObjectCodec { return s.inner }

// Serialize flattens v into a record and serializes it through the object
// codec. Nil pointer fields are treated as missing keys.
func (s *StructCodec[T]) Serialize(v T) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	m := make(map[string]any, len(s.fieldByKey))
	for key, idx := range s.fieldByKey {
		fv := rv.Field(idx)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			f := s.inner.fields[s.inner.index[key]]
			if f.codec.IsOptional() {
				fv = fv.Elem()
			}
		}
		m[key] = fv.Interface()
	}
	return s.inner.Serialize(m)
}

// Deserialize converts raw through the object codec and assigns the result
// onto a new T.
func (s *StructCodec[T]) Deserialize(raw any) (T, error) {
	var zero T
	m, err := s.inner.Deserialize(raw)
	if err != nil {
		return zero, err
	}
	rv := reflect.New(s.t).Elem()
	for key, val := range m {
		idx, ok := s.fieldByKey[key]
		if !ok {
			continue
		}
		if err := assign(rv.Field(idx), val); err != nil {
			return zero, wrapField(label(KindStruct, s.inner.name), OpDeserialize, key, err)
		}
	}
	return rv.Interface().(T), nil
}

func (s *StructCodec[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

func (s *StructCodec[T]) serializeAny(v any) (any, error) {
	tv, ok := castTo[T](v)
	if !ok {
		return nil, typeMismatch(label(KindStruct, s.inner.name), OpSerialize, typeName[T](), v)
	}
	return s.Serialize(tv)
}

func (s *StructCodec[T]) deserializeAny(raw any) (any, error) { return s.Deserialize(raw) }

// assign stores val into fv, allocating a pointer when fv is one and
// converting between compatible types.
func assign(fv reflect.Value, val any) error {
	if val == nil {
		switch fv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		return fmt.Errorf("cannot assign null to %s", fv.Type())
	}
	vv := reflect.ValueOf(val)
	target := fv
	alloc := fv.Kind() == reflect.Pointer && !vv.Type().AssignableTo(fv.Type())
	if alloc {
		target = reflect.New(fv.Type().Elem()).Elem()
	}
	switch {
	case vv.Type().AssignableTo(target.Type()):
		target.Set(vv)
	case isNumber(vv.Kind()) && isNumber(target.Kind()):
		cv := vv.Convert(target.Type())
		if cv.Convert(vv.Type()).Interface() != vv.Interface() {
			return fmt.Errorf("cannot assign %v to %s without loss", val, fv.Type())
		}
		target.Set(cv)
	case vv.Type().ConvertibleTo(target.Type()) && (vv.Kind() == reflect.String) == (target.Kind() == reflect.String):
		target.Set(vv.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot assign %s to %s", vv.Type(), fv.Type())
	}
	if alloc {
		fv.Set(target.Addr())
	}
	return nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
