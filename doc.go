// Package primate builds bidirectional converters ("codecs") between an
// internal representation (arbitrary Go values such as time.Time or enums) and
// a primitive representation restricted to JSON-compatible kinds: nil, bool,
// numbers, string, []any and map[string]any.
//
// Codecs compose bottom-up:
//
//   - Primitive wraps a pair of caller-supplied conversion functions.
//   - Array lifts a codec over ordered sequences.
//   - Object lifts an ordered schema of named fields over keyed records.
//   - Optional marks a field as omittable inside an Object.
//
// Typical usage:
//
//	user := primate.Object(
//		primate.Field("username", strict.String()),
//		primate.Field("birthday", primate.Optional(codec.Time())),
//	).Named("userCodec")
//
//	raw, err := user.Serialize(map[string]any{"username": "x"})
//	v, err := user.Deserialize(raw)
//
// Deserialize must be treated as fallible on untrusted input. Failures are
// reported as *Error values whose cause chain records the path of field keys
// and element indexes from the outermost codec to the failing leaf; use Path
// or IssuesOf to inspect them.
//
// Codecs are immutable after construction and safe for concurrent use,
// provided the caller-supplied conversion functions are.
//
// Design policy:
//   - Keep the composition engine in the root package; leaf codecs live under
//     strict/, enum/ and codec/.
//   - Wire formats (JSON, YAML) are adapters under wire/; the root package
//     only teaches Maybe how to marshal itself.
//   - Prefer black-box testing against public APIs.
package primate
