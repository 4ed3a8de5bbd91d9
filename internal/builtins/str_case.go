package builtins

import (
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Python's case mappings are the locale-independent full mappings of
// SpecialCasing.txt, which is what x/text produces for the root locale.
// Go's strings.ToUpper only does simple mappings (ß stays ß).
var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	foldCaser  = cases.Fold()
)

const capitalSigma = "Σ"

func mapCase(method string, recv starlark.Value, c cases.Caser) (starlark.Value, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return nil, err
	}
	if isASCII(s) {
		switch method {
		case "upper":
			return starlark.String(strings.ToUpper(s)), nil
		default:
			return starlark.String(strings.ToLower(s)), nil
		}
	}
	var out string
	if method == "lower" && strings.Contains(s, capitalSigma) {
		out, err = lowerSigmas(s)
		if err != nil {
			return nil, err
		}
	} else {
		out = c.String(s)
	}
	if err := checkResultLen(len(out)); err != nil {
		return nil, err
	}
	return starlark.String(out), nil
}

// lowerSigmas lowercases s, choosing between σ and ς for each capital
// sigma by Python's Final_Sigma rule. The text between sigmas is mapped
// separately so x/text applies no sigma context of its own.
func lowerSigmas(s string) (string, error) {
	rs := []rune(s)
	var b strings.Builder
	from := 0
	for i, r := range rs {
		if r != 'Σ' {
			continue
		}
		b.WriteString(lowerCaser.String(string(rs[from:i])))
		final, ok := finalSigma(rs, i)
		if !ok {
			return "", notFoldable("lower of a sigma next to case-ignorable text")
		}
		if final {
			b.WriteRune('ς')
		} else {
			b.WriteRune('σ')
		}
		from = i + 1
	}
	b.WriteString(lowerCaser.String(string(rs[from:])))
	return b.String(), nil
}

// finalSigma reports whether the sigma at i ends a word: a cased letter
// precedes it and none follows. Case-ignorable neighbours make ok false,
// since Go's tables only approximate that property.
func finalSigma(rs []rune, i int) (final, ok bool) {
	if i > 0 && caseIgnorable(rs[i-1]) || i+1 < len(rs) && caseIgnorable(rs[i+1]) {
		return false, false
	}
	before := i > 0 && cased(rs[i-1])
	after := i+1 < len(rs) && cased(rs[i+1])
	return before && !after, true
}

func cased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r) ||
		unicode.Is(unicode.Other_Lowercase, r) || unicode.Is(unicode.Other_Uppercase, r)
}

// caseIgnorable covers the general categories and word-break classes that
// make up Unicode's Case_Ignorable property.
func caseIgnorable(r rune) bool {
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk) {
		return true
	}
	return strings.ContainsRune("'.:\u00b7\u0387\u055f\u05f4\u2018\u2019\u2024\u2027\ufe13\ufe52\ufe55\uff07\uff0e\uff1a", r)
}

func StrUpper(recv starlark.Value) (starlark.Value, error) {
	return mapCase("upper", recv, upperCaser)
}

func StrLower(recv starlark.Value) (starlark.Value, error) {
	return mapCase("lower", recv, lowerCaser)
}

func StrCasefold(recv starlark.Value) (starlark.Value, error) {
	return mapCase("casefold", recv, foldCaser)
}

// asciiMap rewrites an ASCII str byte by byte and declines other text:
// titlecase and swapcase need Unicode properties Go does not expose.
func asciiMap(method string, recv starlark.Value, f func(i int, prev, c byte) byte) (starlark.Value, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return nil, err
	}
	if !isASCII(s) {
		return nil, notFoldable("%s on non-ASCII text", method)
	}
	b := make([]byte, len(s))
	var prev byte
	for i := 0; i < len(s); i++ {
		b[i] = f(i, prev, s[i])
		prev = s[i]
	}
	return starlark.String(b), nil
}

func StrCapitalize(recv starlark.Value) (starlark.Value, error) {
	return asciiMap("capitalize", recv, func(i int, _, c byte) byte {
		if i == 0 {
			return byteToUpper(c)
		}
		return byteToLower(c)
	})
}

func StrSwapcase(recv starlark.Value) (starlark.Value, error) {
	return asciiMap("swapcase", recv, func(_ int, _, c byte) byte {
		if isByteUpper(c) {
			return byteToLower(c)
		}
		return byteToUpper(c)
	})
}

func StrTitle(recv starlark.Value) (starlark.Value, error) {
	return asciiMap("title", recv, func(i int, prev, c byte) byte {
		if i > 0 && isByteAlpha(prev) {
			return byteToLower(c)
		}
		return byteToUpper(c)
	})
}
