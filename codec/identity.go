// Package codec holds ready-made leaf codecs for common internal types.
package codec

import (
	"reflect"

	"github.com/mumingpo/primate"
)

// Identity returns a codec that passes values of type T through unchanged.
// Deserialize fails unless the input already is a T.
func Identity[T any]() *primate.PrimitiveCodec[T, T] {
	name := "identityCodec(" + reflect.TypeOf((*T)(nil)).Elem().String() + ")"
	return primate.Primitive(
		func(v T) (T, error) { return v, nil },
		func(raw any) (T, error) {
			v, ok := raw.(T)
			if !ok {
				return v, primate.TypeError(name, primate.OpDeserialize, reflect.TypeOf((*T)(nil)).Elem().String(), raw)
			}
			return v, nil
		},
	).Named(name)
}
