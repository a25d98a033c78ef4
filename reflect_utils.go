package primate

import (
	"encoding/json"
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by Bind.
// Priority: primate:"name" > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if pt := sf.Tag.Get("primate"); pt != "" {
		if i := strings.IndexByte(pt, ','); i >= 0 {
			pt = pt[:i]
		}
		if pt != "" {
			return pt
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}

// KindOf classifies v for diagnostics: "null", "boolean", "number", "string",
// "array", "object", or the Go type name for anything outside the primitive
// value space.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case AbsentValue:
		return "absent"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return "object"
		}
	}
	return rv.Type().String()
}

// asSequence returns the elements of a sequence-shaped value. nil is not a
// sequence.
func asSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case []any:
		return t, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asRecord returns the entries of an object-shaped value. isNull is set for
// nil and for nil maps, which stand for the primitive null.
func asRecord(v any) (m map[string]any, isNull bool, ok bool) {
	switch t := v.(type) {
	case nil:
		return nil, true, false
	case map[string]any:
		if t == nil {
			return nil, true, false
		}
		return t, false, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false, false
	}
	if rv.IsNil() {
		return nil, true, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, false, true
}
