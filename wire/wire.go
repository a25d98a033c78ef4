// Package wire moves values between byte encodings (JSON, YAML) and the
// primitive value space that codecs deserialize from and serialize to.
//
// Decoded documents only ever contain nil, bool, float64 (or json.Number),
// string, []any and map[string]any.
package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NumberMode dictates how numbers are represented after decoding.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // Fast mode (with potential precision loss).
	NumberJSONNumber                   // Preserve the literal as json.Number.
)

// Options bundles decoding limits. The zero value means no limits.
type Options struct {
	MaxDepth   int   // Maximum container nesting; 0 disables the check.
	MaxBytes   int64 // Maximum input size; 0 disables the check.
	NumberMode NumberMode
}

var (
	// ErrMaxBytes is returned when the input is larger than Options.MaxBytes.
	ErrMaxBytes = errors.New("wire: max bytes exceeded")
	// ErrMaxDepth is returned when a document nests deeper than Options.MaxDepth.
	ErrMaxDepth = errors.New("wire: max depth exceeded")
	// ErrTrailingData is returned when a JSON input holds more than one value
	// or a YAML stream holds more than one document.
	ErrTrailingData = errors.New("wire: trailing data after document")
)

func pickOptions(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}

func checkSize(data []byte, opt Options) error {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return ErrMaxBytes
	}
	return nil
}

// checkDepth walks a decoded document and reports the JSON Pointer of the
// first container nested deeper than maxDepth.
func checkDepth(v any, maxDepth int) error {
	if maxDepth <= 0 {
		return nil
	}
	return walkDepth(v, "", 0, maxDepth)
}

func walkDepth(v any, path string, depth, maxDepth int) error {
	switch t := v.(type) {
	case map[string]any:
		depth++
		if depth > maxDepth {
			return fmt.Errorf("%w at %s", ErrMaxDepth, pointer(path))
		}
		for k, val := range t {
			if err := walkDepth(val, path+"/"+escapeKey(k), depth, maxDepth); err != nil {
				return err
			}
		}
	case []any:
		depth++
		if depth > maxDepth {
			return fmt.Errorf("%w at %s", ErrMaxDepth, pointer(path))
		}
		for i, val := range t {
			if err := walkDepth(val, path+"/"+strconv.Itoa(i), depth, maxDepth); err != nil {
				return err
			}
		}
	}
	return nil
}

func pointer(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// escapeKey applies RFC 6901 escaping to one pointer segment.
func escapeKey(k string) string {
	return strings.ReplaceAll(strings.ReplaceAll(k, "~", "~0"), "/", "~1")
}
