// Package builtins implements the real operations of the compiled language
// that constant folding executes.
//
// Values are go.starlark.net values. Starlark is a Python dialect, and where
// its string and dict methods agree with Python byte for byte they are
// called directly; everything else (code point indexing, bytes methods,
// whitespace rules, full Unicode case mapping) is implemented here.
//
// Every function returns either a value, a *pyexc.Error the source program
// would raise at runtime, or an error wrapping ErrNotFoldable when the host
// cannot reproduce the result with certainty.
package builtins

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

// ErrNotFoldable marks computations the compiler declines to evaluate.
var ErrNotFoldable = errors.New("not foldable")

func notFoldable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFoldable, fmt.Sprintf(format, args...))
}

// IsNotFoldable reports whether err declines a fold.
func IsNotFoldable(err error) bool {
	return errors.Is(err, ErrNotFoldable)
}

// hardResultLimit caps any string or bytes result before it is allocated.
const hardResultLimit = 1 << 24

func checkResultLen(n int) error {
	if n > hardResultLimit || n < 0 {
		return notFoldable("result of %d elements exceeds the fold limit", n)
	}
	return nil
}

type omitted struct{}

// Omitted stands for an argument the source left out. It is not None: an
// omitted maxsplit means -1, an explicit None raises TypeError.
var Omitted starlark.Value = omitted{}

func (omitted) String() string        { return "<omitted>" }
func (omitted) Type() string          { return "omitted" }
func (omitted) Freeze()               {}
func (omitted) Truth() starlark.Bool  { return starlark.False }
func (omitted) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: omitted") }

// IsOmitted reports whether v is the omitted-argument sentinel.
func IsOmitted(v starlark.Value) bool {
	_, ok := v.(omitted)
	return ok
}

// isNoneOrOmitted is true for both spellings of "use the default".
func isNoneOrOmitted(v starlark.Value) bool {
	return v == starlark.None || IsOmitted(v)
}

// TypeName returns the compiled language's type name for v.
func TypeName(v starlark.Value) string {
	switch v.(type) {
	case starlark.String:
		return "str"
	case starlark.Bytes:
		return "bytes"
	case starlark.Int:
		return "int"
	case starlark.Bool:
		return "bool"
	case starlark.Float:
		return "float"
	case starlark.NoneType:
		return "NoneType"
	case *starlark.List:
		return "list"
	case starlark.Tuple:
		return "tuple"
	case *starlark.Dict:
		return "dict"
	case omitted:
		return "omitted"
	}
	return v.Type()
}

func typeError(format string, args ...interface{}) error {
	return pyexc.Newf(pyexc.TypeError, format, args...)
}

func valueError(format string, args ...interface{}) error {
	return pyexc.Newf(pyexc.ValueError, format, args...)
}

func descriptorError(method, owner string, v starlark.Value) error {
	return typeError("descriptor '%s' for '%s' objects doesn't apply to a '%s' object", method, owner, TypeName(v))
}

func strRecv(method string, v starlark.Value) (string, error) {
	s, ok := v.(starlark.String)
	if !ok {
		return "", descriptorError(method, "str", v)
	}
	return string(s), nil
}

func bytesRecv(method string, v starlark.Value) (string, error) {
	b, ok := v.(starlark.Bytes)
	if !ok {
		return "", descriptorError(method, "bytes", v)
	}
	return string(b), nil
}

func dictRecv(method string, v starlark.Value) (*starlark.Dict, error) {
	d, ok := v.(*starlark.Dict)
	if !ok {
		return nil, descriptorError(method, "dict", v)
	}
	return d, nil
}

// foldThread runs delegated Starlark builtins. Builtins never suspend, so a
// fresh thread per call is enough.
func foldThread() *starlark.Thread {
	return &starlark.Thread{Name: "fold"}
}

// delegate calls recv.name(args...) through Starlark and reports any
// Starlark error as an exception of class c.
func delegate(c *pyexc.Class, recv starlark.Value, name string, args ...starlark.Value) (starlark.Value, error) {
	attrs, ok := recv.(starlark.HasAttrs)
	if !ok {
		return nil, notFoldable("%s has no attributes", TypeName(recv))
	}
	fn, err := attrs.Attr(name)
	if err != nil || fn == nil {
		return nil, notFoldable("%s.%s is not available", TypeName(recv), name)
	}
	v, err := starlark.Call(foldThread(), fn, starlark.Tuple(args), nil)
	if err != nil {
		return nil, pyexc.Newf(c, "%s", trimStarlarkPrefix(err.Error()))
	}
	return v, nil
}

// trimStarlarkPrefix drops the "name: " prefix Starlark adds to builtin errors.
func trimStarlarkPrefix(msg string) string {
	if i := strings.Index(msg, ": "); i >= 0 && !strings.ContainsAny(msg[:i], " '\"") {
		return msg[i+2:]
	}
	return msg
}

func newList(elems []starlark.Value) *starlark.List {
	return starlark.NewList(elems)
}

func stringList(parts []string) *starlark.List {
	elems := make([]starlark.Value, len(parts))
	for i, p := range parts {
		elems[i] = starlark.String(p)
	}
	return newList(elems)
}

func bytesList(parts []string) *starlark.List {
	elems := make([]starlark.Value, len(parts))
	for i, p := range parts {
		elems[i] = starlark.Bytes(p)
	}
	return newList(elems)
}
