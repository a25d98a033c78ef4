package primate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mumingpo/primate/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeNotArray      = "not_array"
	CodeNotObject     = "not_object"
	CodeNull          = "null"
	CodeMissingKey    = "missing_key"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidType   = "invalid_type"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	// Wrapping codes: the failure happened below a field or element.
	CodeField   = "field"
	CodeElement = "element"
	// CodeConversion classifies leaf errors that are not *Error values, such
	// as errors returned by caller-supplied conversion functions.
	CodeConversion = "conversion"
)

// Op is the direction of a conversion.
type Op uint8

const (
	OpSerialize Op = iota
	OpDeserialize
)

func (o Op) String() string {
	if o == OpSerialize {
		return "serialize"
	}
	return "deserialize"
}

func (o Op) gerund() string {
	if o == OpSerialize {
		return "serializing"
	}
	return "deserializing"
}

// Error is the structured failure produced by codecs. Wrapping errors
// (CodeField, CodeElement) carry one path segment and the child's failure as
// Cause; the full message chain is rendered on demand by Error.
type Error struct {
	Codec   string // diagnostic label, e.g. "ObjectCodec userCodec"
	Op      Op
	Code    string
	Key     string // set for CodeField, CodeMissingKey and CodeUnknownKey
	Index   int    // element index for CodeElement, -1 otherwise
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	if e.Code == CodeField || e.Code == CodeElement {
		return e.Message + "\n" + e.Cause.Error()
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code, so errors.Is(err, &Error{Code: CodeNull})
// finds a null failure anywhere in the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

func newError(codec string, op Op, code string, data map[string]string) *Error {
	if data == nil {
		data = map[string]string{}
	}
	data["codec"] = codec
	data["op"] = op.String()
	data["doing"] = op.gerund()
	return &Error{Codec: codec, Op: op, Code: code, Key: data["key"], Index: -1, Message: i18n.T(code, data)}
}

func wrapField(codec string, op Op, key string, cause error) *Error {
	e := newError(codec, op, CodeField, map[string]string{"key": key})
	e.Cause = cause
	return e
}

func wrapElement(codec string, op Op, index int, cause error) *Error {
	e := newError(codec, op, CodeElement, map[string]string{"index": strconv.Itoa(index)})
	e.Index = index
	e.Cause = cause
	return e
}

func typeMismatch(codec string, op Op, expected string, got any) *Error {
	return newError(codec, op, CodeInvalidType, map[string]string{"expected": expected, "kind": KindOf(got)})
}

// NewError builds a leaf failure for codecs implemented outside this package
// (strict, enum and time codecs use it). data fills the message placeholders
// of the code; see package i18n.
func NewError(codec string, op Op, code string, data map[string]string) *Error {
	cp := make(map[string]string, len(data)+3)
	for k, v := range data {
		cp[k] = v
	}
	return newError(codec, op, code, cp)
}

// TypeError reports that a value has the wrong runtime kind.
func TypeError(codec string, op Op, expected string, got any) *Error {
	return typeMismatch(codec, op, expected, got)
}

// Path renders the JSON Pointer of the failure described by err, built from
// the field keys and element indexes recorded along its cause chain. It
// returns "/" when err carries no path information.
func Path(err error) string {
	p := &pathRef{}
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		switch e.Code {
		case CodeField, CodeMissingKey, CodeUnknownKey:
			p = p.Field(e.Key)
		case CodeElement:
			p = p.Index(e.Index)
		}
		err = e.Cause
	}
	return p.Pointer()
}

// Leaf returns the innermost failure of err: the first error in the chain
// that is not a field or element wrapper.
func Leaf(err error) error {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return err
		}
		if (e.Code != CodeField && e.Code != CodeElement) || e.Cause == nil {
			return e
		}
		err = e.Cause
	}
	return nil
}

// Issue is a flattened, report-friendly view of a codec failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /users/2/birthday).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// IssuesOf flattens err into Issues. Codec failures are fail-fast, so the
// result holds at most one entry; nil yields nil.
func IssuesOf(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	leaf := Leaf(err)
	it := Issue{Path: Path(err), Code: CodeConversion, Message: leaf.Error(), Cause: leaf}
	var e *Error
	if errors.As(leaf, &e) {
		it.Code = e.Code
		it.Message = e.Message
		if e.Cause != nil {
			it.Cause = e.Cause
		}
	}
	return Issues{it}
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
