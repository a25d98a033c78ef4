// Package strict provides identity codecs for the primitive kinds. Their
// deserializers fail unless the runtime kind already matches; nothing is
// coerced from another kind.
package strict

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	"github.com/mumingpo/primate"
	js "github.com/mumingpo/primate/jsonschema"
)

var (
	boolCodec = primate.Primitive(
		func(b bool) (bool, error) { return b, nil },
		func(raw any) (bool, error) {
			b, ok := raw.(bool)
			if !ok {
				return false, primate.TypeError("booleanCodec(strict)", primate.OpDeserialize, "boolean", raw)
			}
			return b, nil
		},
	).Named("booleanCodec(strict)").WithSchema(&js.Schema{Type: "boolean"})

	numberCodec = primate.Primitive(
		func(n float64) (float64, error) { return n, nil },
		func(raw any) (float64, error) {
			f, ok := AsFloat(raw)
			if !ok {
				return 0, primate.TypeError("numberCodec(strict)", primate.OpDeserialize, "number", raw)
			}
			return f, nil
		},
	).Named("numberCodec(strict)").WithSchema(&js.Schema{Type: "number"})

	intCodec = primate.Primitive(
		func(n int64) (int64, error) { return n, nil },
		func(raw any) (int64, error) {
			n, ok := AsInt(raw)
			if !ok {
				return 0, primate.TypeError("intCodec(strict)", primate.OpDeserialize, "integer", raw)
			}
			return n, nil
		},
	).Named("intCodec(strict)").WithSchema(&js.Schema{Type: "integer"})

	stringCodec = primate.Primitive(
		func(s string) (string, error) { return s, nil },
		func(raw any) (string, error) {
			s, ok := raw.(string)
			if !ok {
				return "", primate.TypeError("stringCodec(strict)", primate.OpDeserialize, "string", raw)
			}
			return s, nil
		},
	).Named("stringCodec(strict)").WithSchema(&js.Schema{Type: "string"})
)

// Bool returns the strict boolean codec.
func Bool() *primate.PrimitiveCodec[bool, bool] { return boolCodec }

// Number returns the strict number codec. Every Go numeric kind and
// json.Number are accepted as numbers.
func Number() *primate.PrimitiveCodec[float64, float64] { return numberCodec }

// Int returns a strict codec for integral numbers.
func Int() *primate.PrimitiveCodec[int64, int64] { return intCodec }

// String returns the strict string codec.
func String() *primate.PrimitiveCodec[string, string] { return stringCodec }

// AsFloat reads v as a number.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// AsInt reads v as an integral number that fits into int64. Integer kinds
// and integer json.Number literals are read exactly; floats must have no
// fractional part.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	}
	return 0, false
}

// floatToInt accepts f when it is integral and inside [-2^63, 2^63).
func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
