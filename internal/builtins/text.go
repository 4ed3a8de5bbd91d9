package builtins

import (
	"unicode"
	"unicode/utf8"

	"go.starlark.net/starlark"
)

// isSpace is Python's str whitespace: category Zs plus the C0 separators,
// NEL, LINE SEPARATOR and PARAGRAPH SEPARATOR. Go's unicode.IsSpace misses
// U+001C..U+001F.
func isSpace(r rune) bool {
	switch {
	case r >= 0x09 && r <= 0x0d:
		return true
	case r >= 0x1c && r <= 0x1f:
		return true
	case r == 0x85 || r == 0x2028 || r == 0x2029:
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', 0x0b, 0x0c, 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// Bytes methods only know ASCII.

func isByteSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', 0x0b, 0x0c:
		return true
	}
	return false
}

func isByteLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isByteUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isByteAlpha(c byte) bool { return isByteLower(c) || isByteUpper(c) }
func isByteDigit(c byte) bool { return c >= '0' && c <= '9' }

func byteToLower(c byte) byte {
	if isByteUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

func byteToUpper(c byte) byte {
	if isByteLower(c) {
		return c - ('a' - 'A')
	}
	return c
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// runeLen is the length of a str in code points.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// iterate yields the elements Python's iter() would produce.
func iterate(v starlark.Value) ([]starlark.Value, bool) {
	switch x := v.(type) {
	case starlark.String:
		out := make([]starlark.Value, 0, len(x))
		for _, r := range string(x) {
			out = append(out, starlark.String(string(r)))
		}
		return out, true
	case starlark.Bytes:
		out := make([]starlark.Value, len(x))
		for i := 0; i < len(x); i++ {
			out[i] = starlark.MakeInt(int(x[i]))
		}
		return out, true
	case starlark.Tuple:
		return append([]starlark.Value(nil), x...), true
	case *starlark.List:
		out := make([]starlark.Value, x.Len())
		for i := range out {
			out[i] = x.Index(i)
		}
		return out, true
	case *starlark.Dict:
		return x.Keys(), true
	}
	return nil, false
}

// containsBool reports whether v is or holds a bool. Python treats True as
// equal to 1 when hashing, Starlark does not, so such keys are never folded.
func containsBool(v starlark.Value) bool {
	switch x := v.(type) {
	case starlark.Bool:
		return true
	case starlark.Tuple:
		for _, e := range x {
			if containsBool(e) {
				return true
			}
		}
	}
	return false
}

func dictHasBoolKeys(d *starlark.Dict) bool {
	for _, k := range d.Keys() {
		if containsBool(k) {
			return true
		}
	}
	return false
}
