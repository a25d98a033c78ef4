package wire

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"

	"github.com/mumingpo/primate"
)

// DecodeJSON parses a single JSON document into primitive values.
func DecodeJSON(data []byte, opts ...Options) (any, error) {
	opt := pickOptions(opts)
	if err := checkSize(data, opt); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if opt.NumberMode == NumberJSONNumber {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	if err := checkDepth(v, opt.MaxDepth); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeJSON renders a primitive value as compact JSON.
func EncodeJSON(v any) ([]byte, error) { return json.Marshal(v) }

// UnmarshalJSON decodes data and deserializes the document through c.
func UnmarshalJSON[I, P any](c primate.Codec[I, P], data []byte, opts ...Options) (I, error) {
	raw, err := DecodeJSON(data, opts...)
	if err != nil {
		var zero I
		return zero, err
	}
	return c.Deserialize(raw)
}

// MarshalJSON serializes v through c and renders the result as JSON.
func MarshalJSON[I, P any](c primate.Codec[I, P], v I) ([]byte, error) {
	p, err := c.Serialize(v)
	if err != nil {
		return nil, err
	}
	return EncodeJSON(p)
}
