// Package enum builds codecs over fixed sets of allowed values.
//
// Membership is decided by value equality. A codec built with WithDefault
// substitutes the default instead of failing when the input has the wrong
// kind or is not a member.
package enum

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mumingpo/primate"
	"github.com/mumingpo/primate/strict"
	js "github.com/mumingpo/primate/jsonschema"
)

// Option configures an enum codec.
type Option[T comparable] func(*config[T])

type config[T comparable] struct {
	name       string
	def        T
	hasDefault bool
}

// WithDefault substitutes v for inputs of the wrong kind or outside the
// allowed set. v must itself be allowed.
func WithDefault[T comparable](v T) Option[T] {
	return func(c *config[T]) { c.def, c.hasDefault = v, true }
}

// WithName overrides the diagnostic name.
func WithName[T comparable](name string) Option[T] {
	return func(c *config[T]) { c.name = name }
}

// Strings returns an enum codec over string values.
func Strings(allowed []string, opts ...Option[string]) *primate.PrimitiveCodec[string, string] {
	return Of(allowed, append([]Option[string]{WithName[string]("enumStringCodec")}, opts...)...)
}

// Numbers returns an enum codec over numeric values.
func Numbers(allowed []float64, opts ...Option[float64]) *primate.PrimitiveCodec[float64, float64] {
	return Of(allowed, append([]Option[float64]{WithName[float64]("enumNumberCodec")}, opts...)...)
}

// Of returns an enum codec over the allowed values of T. It panics when the
// default is not one of them.
func Of[T comparable](allowed []T, opts ...Option[T]) *primate.PrimitiveCodec[T, T] {
	cfg := config[T]{name: "enumCodec"}
	for _, o := range opts {
		o(&cfg)
	}
	allowed = slices.Clone(allowed)
	if cfg.hasDefault && !slices.Contains(allowed, cfg.def) {
		panic(fmt.Sprintf("enum: default %v is not an allowed value", cfg.def))
	}
	rendered := render(allowed)
	kind := primate.KindOf(*new(T))

	deserialize := func(raw any) (T, error) {
		v, ok := coerce[T](raw)
		if !ok {
			if cfg.hasDefault {
				return cfg.def, nil
			}
			return v, primate.TypeError(cfg.name, primate.OpDeserialize, kind, raw)
		}
		if !slices.Contains(allowed, v) {
			if cfg.hasDefault {
				return cfg.def, nil
			}
			return v, primate.NewError(cfg.name, primate.OpDeserialize, primate.CodeInvalidEnum, map[string]string{
				"allowed": rendered,
				"value":   fmt.Sprint(raw),
			})
		}
		return v, nil
	}

	values := make([]any, len(allowed))
	for i, v := range allowed {
		values[i] = v
	}
	schema := &js.Schema{Type: kind, Enum: values}
	if cfg.hasDefault {
		schema.Default = cfg.def
	}

	return primate.Primitive(func(v T) (T, error) { return v, nil }, deserialize).
		Named(cfg.name).
		WithSchema(schema)
}

func render[T any](allowed []T) string {
	parts := make([]string, len(allowed))
	for i, v := range allowed {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}

// coerce reads raw as T. Values of the same kind family convert (a string
// into a named string type, an int into a float64); numbers must convert
// without loss.
func coerce[T comparable](raw any) (T, bool) {
	var zero T
	if v, ok := raw.(T); ok {
		return v, true
	}
	if raw == nil {
		return zero, false
	}
	target := reflect.TypeOf((*T)(nil)).Elem()
	if isNumeric(target.Kind()) {
		f, ok := strict.AsFloat(raw)
		if !ok {
			return zero, false
		}
		cv := reflect.ValueOf(f).Convert(target)
		if back, _ := strict.AsFloat(cv.Interface()); back != f {
			return zero, false
		}
		return cv.Interface().(T), true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != target.Kind() || !rv.Type().ConvertibleTo(target) {
		return zero, false
	}
	return rv.Convert(target).Interface().(T), true
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
