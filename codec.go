package primate

import (
	"reflect"

	json "github.com/goccy/go-json"

	js "github.com/mumingpo/primate/jsonschema"
)

// Codec converts between an internal value I and its primitive form P.
//
// Serialize is expected to succeed for every well-formed I. Deserialize accepts
// arbitrary untrusted input and must be treated as fallible.
type Codec[I, P any] interface {
	Serialize(v I) (P, error)
	Deserialize(raw any) (I, error)
	// IsOptional reports whether an enclosing ObjectCodec may omit the field
	// this codec is assigned to.
	IsOptional() bool
	// Name is a diagnostic label propagated into error messages.
	Name() string
}

// Kind identifies the codec variant in diagnostics.
type Kind string

const (
	KindPrimitive Kind = "PrimitiveCodec"
	KindArray     Kind = "ArrayCodec"
	KindObject    Kind = "ObjectCodec"
	KindOptional  Kind = "OptionalCodec"
	KindStruct    Kind = "StructCodec"
	// KindCustom labels codecs implemented outside this package.
	KindCustom Kind = "Codec"
)

// label renders "ObjectCodec" or "ObjectCodec userCodec".
func label(k Kind, name string) string {
	if name == "" {
		return string(k)
	}
	return string(k) + " " + name
}

// AbsentValue is the type of the Absent sentinel.
type AbsentValue struct{}

// Absent marks a value that is not there at all. It is distinct from nil,
// which stands for the primitive null.
var Absent AbsentValue

// IsAbsent reports whether v is the Absent sentinel or an empty Maybe.
func IsAbsent(v any) bool {
	switch t := v.(type) {
	case AbsentValue:
		return true
	case maybe:
		_, ok := t.present()
		return !ok
	}
	return false
}

// Maybe carries a value that may be absent. It is the internal and primitive
// type of an OptionalCodec.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some returns a present Maybe.
func Some[T any](v T) Maybe[T] { return Maybe[T]{value: v, ok: true} }

// None returns an absent Maybe.
func None[T any]() Maybe[T] { return Maybe[T]{} }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.ok }

// IsPresent reports whether m holds a value.
func (m Maybe[T]) IsPresent() bool { return m.ok }

func (m Maybe[T]) present() (any, bool) {
	if !m.ok {
		return nil, false
	}
	return m.value, true
}

// MarshalJSON renders a present value as itself and an absent one as null.
func (m Maybe[T]) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// MarshalYAML renders a present value as itself and an absent one as null.
func (m Maybe[T]) MarshalYAML() (any, error) {
	if !m.ok {
		return nil, nil
	}
	return m.value, nil
}

type maybe interface{ present() (any, bool) }

// fieldCodec is the type-erased view of a codec used by ObjectCodec entries
// and ArrayCodec elements stored in untyped containers.
type fieldCodec interface {
	serializeAny(v any) (any, error)
	deserializeAny(raw any) (any, error)
	IsOptional() bool
	Name() string
	JSONSchema() (*js.Schema, error)
}

// erase adapts a typed codec to fieldCodec. Codecs of this package already
// implement it and are returned unchanged.
func erase[I, P any](c Codec[I, P]) fieldCodec {
	if fc, ok := any(c).(fieldCodec); ok {
		return fc
	}
	return typedField[I, P]{c: c}
}

type typedField[I, P any] struct{ c Codec[I, P] }

func (f typedField[I, P]) serializeAny(v any) (any, error) {
	iv, ok := castTo[I](v)
	if !ok {
		return nil, typeMismatch(label(KindCustom, f.c.Name()), OpSerialize, typeName[I](), v)
	}
	return f.c.Serialize(iv)
}

func (f typedField[I, P]) deserializeAny(raw any) (any, error) { return f.c.Deserialize(raw) }
func (f typedField[I, P]) IsOptional() bool                   { return f.c.IsOptional() }
func (f typedField[I, P]) Name() string                       { return f.c.Name() }

func (f typedField[I, P]) JSONSchema() (*js.Schema, error) {
	if d, ok := any(f.c).(interface{ JSONSchema() (*js.Schema, error) }); ok {
		return d.JSONSchema()
	}
	return &js.Schema{}, nil
}

// castTo asserts v to T. A nil v yields the zero T when T can hold nil, and a
// present Maybe is unwrapped first.
func castTo[T any](v any) (T, bool) {
	if m, ok := v.(maybe); ok {
		if _, isT := v.(T); !isT {
			inner, present := m.present()
			if !present {
				var zero T
				return zero, false
			}
			v = inner
		}
	}
	if tv, ok := v.(T); ok {
		return tv, true
	}
	var zero T
	if v == nil {
		switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return zero, true
		}
	}
	return zero, false
}

func typeName[T any]() string { return reflect.TypeOf((*T)(nil)).Elem().String() }
