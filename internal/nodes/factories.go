package nodes

import (
	cerrors "github.com/serpent-lang/serpent/internal/errors"
	"github.com/serpent-lang/serpent/internal/position"
)

// MakeOperation builds the arity variant of a method ("str.split") that
// fits children, the receiver first. A nil argument counts as omitted:
// trailing ones select a shorter variant, inner ones are filled with the
// Omitted constant.
func MakeOperation(name string, span position.Span, children ...Node) (*Operation, error) {
	m, ok := methods[name]
	if !ok {
		return nil, cerrors.UnknownKind(name)
	}
	if len(children) == 0 || children[0] == nil {
		return nil, cerrors.MissingChild(name, m.receiver, "no receiver given")
	}
	params := m.params()
	args := children[1:]
	if len(args) > len(params) {
		return nil, cerrors.MissingChild(name, "", "too many arguments")
	}
	n := len(args)
	for n > 0 && args[n-1] == nil {
		n--
	}
	for i, role := range m.required {
		if i >= n || args[i] == nil {
			return nil, cerrors.MissingChild(name, role, "required argument missing")
		}
	}
	full := make([]Node, 0, n+1)
	full = append(full, children[0])
	for _, a := range args[:n] {
		if a == nil {
			a = NewOmitted(span)
		}
		full = append(full, a)
	}
	spec := variants[name][n-len(m.required)]
	return NewOperation(spec, span, full...)
}

func MakeStrCenter(span position.Span, str, width, fillchar Node) (*Operation, error) {
	return MakeOperation("str.center", span, str, width, fillchar)
}

func MakeStrCount(span position.Span, str, sub, start, end Node) (*Operation, error) {
	return MakeOperation("str.count", span, str, sub, start, end)
}

func MakeStrEncode(span position.Span, str, encoding, errors Node) (*Operation, error) {
	return MakeOperation("str.encode", span, str, encoding, errors)
}

func MakeStrEndswith(span position.Span, str, suffix, start, end Node) (*Operation, error) {
	return MakeOperation("str.endswith", span, str, suffix, start, end)
}

func MakeStrExpandtabs(span position.Span, str, tabsize Node) (*Operation, error) {
	return MakeOperation("str.expandtabs", span, str, tabsize)
}

func MakeStrFind(span position.Span, str, sub, start, end Node) (*Operation, error) {
	return MakeOperation("str.find", span, str, sub, start, end)
}

func MakeStrIndex(span position.Span, str, sub, start, end Node) (*Operation, error) {
	return MakeOperation("str.index", span, str, sub, start, end)
}

func MakeStrLjust(span position.Span, str, width, fillchar Node) (*Operation, error) {
	return MakeOperation("str.ljust", span, str, width, fillchar)
}

func MakeStrLstrip(span position.Span, str, chars Node) (*Operation, error) {
	return MakeOperation("str.lstrip", span, str, chars)
}

func MakeStrReplace(span position.Span, str, old, repl, count Node) (*Operation, error) {
	return MakeOperation("str.replace", span, str, old, repl, count)
}

func MakeStrRfind(span position.Span, str, sub, start, end Node) (*Operation, error) {
	return MakeOperation("str.rfind", span, str, sub, start, end)
}

func MakeStrRindex(span position.Span, str, sub, start, end Node) (*Operation, error) {
	return MakeOperation("str.rindex", span, str, sub, start, end)
}

func MakeStrRjust(span position.Span, str, width, fillchar Node) (*Operation, error) {
	return MakeOperation("str.rjust", span, str, width, fillchar)
}

func MakeStrRsplit(span position.Span, str, sep, maxsplit Node) (*Operation, error) {
	return MakeOperation("str.rsplit", span, str, sep, maxsplit)
}

func MakeStrRstrip(span position.Span, str, chars Node) (*Operation, error) {
	return MakeOperation("str.rstrip", span, str, chars)
}

func MakeStrSplit(span position.Span, str, sep, maxsplit Node) (*Operation, error) {
	return MakeOperation("str.split", span, str, sep, maxsplit)
}

func MakeStrSplitlines(span position.Span, str, keepends Node) (*Operation, error) {
	return MakeOperation("str.splitlines", span, str, keepends)
}

func MakeStrStartswith(span position.Span, str, prefix, start, end Node) (*Operation, error) {
	return MakeOperation("str.startswith", span, str, prefix, start, end)
}

func MakeStrStrip(span position.Span, str, chars Node) (*Operation, error) {
	return MakeOperation("str.strip", span, str, chars)
}

func MakeBytesCenter(span position.Span, bytes, width, fillchar Node) (*Operation, error) {
	return MakeOperation("bytes.center", span, bytes, width, fillchar)
}

func MakeBytesCount(span position.Span, bytes, sub, start, end Node) (*Operation, error) {
	return MakeOperation("bytes.count", span, bytes, sub, start, end)
}

func MakeBytesDecode(span position.Span, bytes, encoding, errors Node) (*Operation, error) {
	return MakeOperation("bytes.decode", span, bytes, encoding, errors)
}

func MakeBytesEndswith(span position.Span, bytes, suffix, start, end Node) (*Operation, error) {
	return MakeOperation("bytes.endswith", span, bytes, suffix, start, end)
}

func MakeBytesExpandtabs(span position.Span, bytes, tabsize Node) (*Operation, error) {
	return MakeOperation("bytes.expandtabs", span, bytes, tabsize)
}

func MakeBytesFind(span position.Span, bytes, sub, start, end Node) (*Operation, error) {
	return MakeOperation("bytes.find", span, bytes, sub, start, end)
}

func MakeBytesIndex(span position.Span, bytes, sub, start, end Node) (*Operation, error) {
	return MakeOperation("bytes.index", span, bytes, sub, start, end)
}

func MakeBytesLjust(span position.Span, bytes, width, fillchar Node) (*Operation, error) {
	return MakeOperation("bytes.ljust", span, bytes, width, fillchar)
}

func MakeBytesLstrip(span position.Span, bytes, chars Node) (*Operation, error) {
	return MakeOperation("bytes.lstrip", span, bytes, chars)
}

func MakeBytesReplace(span position.Span, bytes, old, repl, count Node) (*Operation, error) {
	return MakeOperation("bytes.replace", span, bytes, old, repl, count)
}

func MakeBytesRfind(span position.Span, bytes, sub, start, end Node) (*Operation, error) {
	return MakeOperation("bytes.rfind", span, bytes, sub, start, end)
}

func MakeBytesRindex(span position.Span, bytes, sub, start, end Node) (*Operation, error) {
	return MakeOperation("bytes.rindex", span, bytes, sub, start, end)
}

func MakeBytesRjust(span position.Span, bytes, width, fillchar Node) (*Operation, error) {
	return MakeOperation("bytes.rjust", span, bytes, width, fillchar)
}

func MakeBytesRsplit(span position.Span, bytes, sep, maxsplit Node) (*Operation, error) {
	return MakeOperation("bytes.rsplit", span, bytes, sep, maxsplit)
}

func MakeBytesRstrip(span position.Span, bytes, chars Node) (*Operation, error) {
	return MakeOperation("bytes.rstrip", span, bytes, chars)
}

func MakeBytesSplit(span position.Span, bytes, sep, maxsplit Node) (*Operation, error) {
	return MakeOperation("bytes.split", span, bytes, sep, maxsplit)
}

func MakeBytesSplitlines(span position.Span, bytes, keepends Node) (*Operation, error) {
	return MakeOperation("bytes.splitlines", span, bytes, keepends)
}

func MakeBytesStartswith(span position.Span, bytes, prefix, start, end Node) (*Operation, error) {
	return MakeOperation("bytes.startswith", span, bytes, prefix, start, end)
}

func MakeBytesStrip(span position.Span, bytes, chars Node) (*Operation, error) {
	return MakeOperation("bytes.strip", span, bytes, chars)
}

func MakeDictGet(span position.Span, dict, key, def Node) (*Operation, error) {
	return MakeOperation("dict.get", span, dict, key, def)
}

func MakeDictPop(span position.Span, dict, key, def Node) (*Operation, error) {
	return MakeOperation("dict.pop", span, dict, key, def)
}

func MakeDictSetdefault(span position.Span, dict, key, def Node) (*Operation, error) {
	return MakeOperation("dict.setdefault", span, dict, key, def)
}

// MakeLen builds len(value).
func MakeLen(span position.Span, value Node) (*Operation, error) {
	return MakeOperation("builtin.len", span, value)
}
