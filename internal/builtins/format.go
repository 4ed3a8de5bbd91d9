package builtins

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

// StrFormat folds str.format. args is the positional tuple and pairs the
// keyword dict. Format specs are folded for the fill, align, sign, width
// and s/d subset; conversions, other specs, attribute and index access
// are declined, as are arguments whose str() differs between the
// languages.
func StrFormat(recv, args, pairs starlark.Value) (starlark.Value, error) {
	tmpl, err := strRecv("format", recv)
	if err != nil {
		return nil, err
	}
	positional, ok := args.(starlark.Tuple)
	if !ok {
		return nil, notFoldable("format positional arguments of type %s", TypeName(args))
	}
	var keywords *starlark.Dict
	if d, ok := pairs.(*starlark.Dict); ok {
		keywords = d
	} else if !isNoneOrOmitted(pairs) {
		return nil, notFoldable("format keyword arguments of type %s", TypeName(pairs))
	}

	var b strings.Builder
	auto, manual := 0, false
	numbering := false
	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i += 2
			continue
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i += 2
			continue
		case c == '}':
			return nil, valueError("Single '}' encountered in format string")
		case c != '{':
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(tmpl[i+1:], '}')
		if end < 0 {
			return nil, valueError("expected '}' before end of string")
		}
		field := tmpl[i+1 : i+1+end]
		i += end + 2
		var spec string
		if colon := strings.IndexByte(field, ':'); colon >= 0 {
			field, spec = field[:colon], field[colon+1:]
		}
		if strings.ContainsAny(field, "!.[{") || strings.ContainsRune(spec, '{') {
			return nil, notFoldable("format field %q", field)
		}

		var v starlark.Value
		switch {
		case field == "":
			if numbering && manual {
				return nil, valueError("cannot switch from manual field specification to automatic field numbering")
			}
			numbering = true
			if auto >= len(positional) {
				return nil, pyexc.Newf(pyexc.IndexError, "Replacement index %d out of range for positional args tuple", auto)
			}
			v = positional[auto]
			auto++
		case isDecimalField(field):
			if numbering && !manual {
				return nil, valueError("cannot switch from automatic field numbering to manual field specification")
			}
			numbering, manual = true, true
			idx, err := strconv.Atoi(field)
			if err != nil {
				return nil, notFoldable("format index %q", field)
			}
			if idx >= len(positional) {
				return nil, pyexc.Newf(pyexc.IndexError, "Replacement index %d out of range for positional args tuple", idx)
			}
			v = positional[idx]
		default:
			var found bool
			if keywords != nil {
				v, found, _ = keywords.Get(starlark.String(field))
			}
			if !found {
				return nil, pyexc.Newf(pyexc.KeyError, "'%s'", field)
			}
		}

		text, err := formatValue(v, spec)
		if err != nil {
			return nil, err
		}
		b.WriteString(text)
		if err := checkResultLen(b.Len()); err != nil {
			return nil, err
		}
	}
	return starlark.String(b.String()), nil
}

func isDecimalField(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isByteDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

// plainStr is str(v) for the types whose text form both languages share.
func plainStr(v starlark.Value) (string, bool) {
	switch x := v.(type) {
	case starlark.String:
		return string(x), true
	case starlark.Int:
		return x.String(), true
	case starlark.Bool:
		if x {
			return "True", true
		}
		return "False", true
	case starlark.NoneType:
		return "None", true
	}
	return "", false
}

// formatSpec is the parsed [[fill]align][sign][width][type] subset.
type formatSpec struct {
	fill  rune
	align byte
	sign  byte
	width int
	kind  byte
}

func parseFormatSpec(spec string) (formatSpec, error) {
	fs := formatSpec{fill: ' '}
	isAlign := func(c byte) bool { return strings.IndexByte("<>^=", c) >= 0 }
	if r, size := utf8.DecodeRuneInString(spec); size > 0 && size < len(spec) && isAlign(spec[size]) {
		fs.fill, fs.align = r, spec[size]
		spec = spec[size+1:]
	} else if spec != "" && isAlign(spec[0]) {
		fs.align = spec[0]
		spec = spec[1:]
	}
	if spec != "" && strings.IndexByte("+- ", spec[0]) >= 0 {
		fs.sign = spec[0]
		spec = spec[1:]
	}
	digits := 0
	for digits < len(spec) && isByteDigit(spec[digits]) {
		digits++
	}
	if digits > 0 {
		if spec[0] == '0' {
			return fs, notFoldable("zero padded format spec")
		}
		w, err := strconv.Atoi(spec[:digits])
		if err != nil {
			return fs, notFoldable("format width %q", spec[:digits])
		}
		if err := checkResultLen(w); err != nil {
			return fs, err
		}
		fs.width = w
		spec = spec[digits:]
	}
	switch spec {
	case "":
	case "s", "d":
		fs.kind = spec[0]
	default:
		return fs, notFoldable("format spec type %q", spec)
	}
	return fs, nil
}

// formatValue is format(v, spec) for str and int arguments. Everything
// else only folds with an empty spec.
func formatValue(v starlark.Value, spec string) (string, error) {
	if spec == "" {
		text, ok := plainStr(v)
		if !ok {
			return "", notFoldable("format argument of type %s", TypeName(v))
		}
		return text, nil
	}
	fs, err := parseFormatSpec(spec)
	if err != nil {
		return "", err
	}
	switch x := v.(type) {
	case starlark.String:
		if fs.kind == 'd' {
			return "", valueError("Unknown format code 'd' for object of type 'str'")
		}
		if fs.sign != 0 {
			return "", valueError("Sign not allowed in string format specifier")
		}
		if fs.align == '=' {
			return "", valueError("'=' alignment not allowed in string format specifier")
		}
		return padFormat(fs, "", string(x), '<'), nil
	case starlark.Int:
		if fs.kind == 's' {
			return "", valueError("Unknown format code 's' for object of type 'int'")
		}
		digits := x.String()
		sign := ""
		if x.Sign() < 0 {
			sign, digits = "-", digits[1:]
		} else if fs.sign == '+' || fs.sign == ' ' {
			sign = string(fs.sign)
		}
		return padFormat(fs, sign, digits, '>'), nil
	}
	return "", notFoldable("format spec for %s", TypeName(v))
}

// padFormat aligns sign+body in the spec width. def is the default alignment.
func padFormat(fs formatSpec, sign, body string, def byte) string {
	n := utf8.RuneCountInString(sign) + utf8.RuneCountInString(body)
	if n >= fs.width {
		return sign + body
	}
	fill := fs.width - n
	align := fs.align
	if align == 0 {
		align = def
	}
	f := string(fs.fill)
	switch align {
	case '<':
		return sign + body + strings.Repeat(f, fill)
	case '^':
		left := fill / 2
		return strings.Repeat(f, left) + sign + body + strings.Repeat(f, fill-left)
	case '=':
		return sign + strings.Repeat(f, fill) + body
	}
	return strings.Repeat(f, fill) + sign + body
}
