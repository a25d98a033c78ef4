package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mumingpo/primate"
)

// DecodeYAML parses a single-document YAML stream into primitive values.
// Mapping keys are rendered as strings and integers become numbers according
// to Options.NumberMode. An empty stream decodes to nil; a second document
// yields ErrTrailingData.
func DecodeYAML(data []byte, opts ...Options) (any, error) {
	opt := pickOptions(opts)
	if err := checkSize(data, opt); err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	v := normalizeYAML(node, opt.NumberMode)
	if err := checkDepth(v, opt.MaxDepth); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeYAML renders a primitive value as YAML.
func EncodeYAML(v any) ([]byte, error) { return yaml.Marshal(v) }

// UnmarshalYAML decodes data and deserializes the document through c.
func UnmarshalYAML[I, P any](c primate.Codec[I, P], data []byte, opts ...Options) (I, error) {
	raw, err := DecodeYAML(data, opts...)
	if err != nil {
		var zero I
		return zero, err
	}
	return c.Deserialize(raw)
}

// MarshalYAML serializes v through c and renders the result as YAML.
func MarshalYAML[I, P any](c primate.Codec[I, P], v I) ([]byte, error) {
	p, err := c.Serialize(v)
	if err != nil {
		return nil, err
	}
	return EncodeYAML(p)
}

// normalizeYAML maps yaml.v3 decoding results onto the primitive value space.
func normalizeYAML(v any, mode NumberMode) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val, mode)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val, mode)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val, mode)
		}
		return out
	case int:
		if mode == NumberJSONNumber {
			return json.Number(strconv.Itoa(t))
		}
		return float64(t)
	case int64:
		if mode == NumberJSONNumber {
			return json.Number(strconv.FormatInt(t, 10))
		}
		return float64(t)
	case uint64:
		if mode == NumberJSONNumber {
			return json.Number(strconv.FormatUint(t, 10))
		}
		return float64(t)
	case float64:
		if mode == NumberJSONNumber {
			return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case []byte:
		return string(t)
	}
	return v
}
