package builtins

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

func strArg(v starlark.Value) (string, error) {
	s, ok := v.(starlark.String)
	if !ok {
		return "", typeError("must be str, not %s", TypeName(v))
	}
	return string(s), nil
}

func fillRune(method string, v starlark.Value) (string, error) {
	if IsOmitted(v) {
		return " ", nil
	}
	s, ok := v.(starlark.String)
	if !ok {
		return "", typeError("%s() argument 2 must be str, not %s", method, TypeName(v))
	}
	if runeLen(string(s)) != 1 {
		return "", typeError("The fill character must be exactly one character long")
	}
	return string(s), nil
}

// pad surrounds s with left and right copies of fill.
func pad(s string, left, right int, fill string) (string, error) {
	if err := checkResultLen(len(s) + (left+right)*len(fill)); err != nil {
		return "", err
	}
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, right), nil
}

func StrCenter(recv, width, fillchar starlark.Value) (starlark.Value, error) {
	s, err := strRecv("center", recv)
	if err != nil {
		return nil, err
	}
	w, err := asSize(width)
	if err != nil {
		return nil, err
	}
	fill, err := fillRune("center", fillchar)
	if err != nil {
		return nil, err
	}
	n := runeLen(s)
	if w <= n {
		return recv, nil
	}
	marg := w - n
	left := marg/2 + (marg & w & 1)
	out, err := pad(s, left, marg-left, fill)
	if err != nil {
		return nil, err
	}
	return starlark.String(out), nil
}

func StrLjust(recv, width, fillchar starlark.Value) (starlark.Value, error) {
	return justify("ljust", recv, width, fillchar, false)
}

func StrRjust(recv, width, fillchar starlark.Value) (starlark.Value, error) {
	return justify("rjust", recv, width, fillchar, true)
}

func justify(method string, recv, width, fillchar starlark.Value, right bool) (starlark.Value, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return nil, err
	}
	w, err := asSize(width)
	if err != nil {
		return nil, err
	}
	fill, err := fillRune(method, fillchar)
	if err != nil {
		return nil, err
	}
	n := runeLen(s)
	if w <= n {
		return recv, nil
	}
	var out string
	if right {
		out, err = pad(s, w-n, 0, fill)
	} else {
		out, err = pad(s, 0, w-n, fill)
	}
	if err != nil {
		return nil, err
	}
	return starlark.String(out), nil
}

func StrZfill(recv, width starlark.Value) (starlark.Value, error) {
	s, err := strRecv("zfill", recv)
	if err != nil {
		return nil, err
	}
	w, err := asSize(width)
	if err != nil {
		return nil, err
	}
	n := runeLen(s)
	if w <= n {
		return recv, nil
	}
	out, err := pad(s, w-n, 0, "0")
	if err != nil {
		return nil, err
	}
	if n > 0 && (s[0] == '+' || s[0] == '-') {
		b := []byte(out)
		b[0], b[w-n] = s[0], '0'
		out = string(b)
	}
	return starlark.String(out), nil
}

func StrCount(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	s, err := strRecv("count", recv)
	if err != nil {
		return nil, err
	}
	needle, err := strArg(sub)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	lo, hi, err := sliceBounds(start, end, len(rs))
	if err != nil {
		return nil, err
	}
	nlen := runeLen(needle)
	if hi-lo < nlen {
		return starlark.MakeInt(0), nil
	}
	if nlen == 0 {
		return starlark.MakeInt(hi - lo + 1), nil
	}
	return starlark.MakeInt(strings.Count(string(rs[lo:hi]), needle)), nil
}

// search finds sub in recv[start:end] in code points, -1 when absent.
func search(method string, recv, sub, start, end starlark.Value, last bool) (int, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return 0, err
	}
	needle, err := strArg(sub)
	if err != nil {
		return 0, err
	}
	rs := []rune(s)
	lo, hi, err := sliceBounds(start, end, len(rs))
	if err != nil {
		return 0, err
	}
	if hi-lo < runeLen(needle) {
		return -1, nil
	}
	window := string(rs[lo:hi])
	var at int
	if last {
		at = strings.LastIndex(window, needle)
	} else {
		at = strings.Index(window, needle)
	}
	if at < 0 {
		return -1, nil
	}
	return lo + runeLen(window[:at]), nil
}

func StrFind(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	i, err := search("find", recv, sub, start, end, false)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(i), nil
}

func StrRfind(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	i, err := search("rfind", recv, sub, start, end, true)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(i), nil
}

func StrIndex(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	i, err := search("index", recv, sub, start, end, false)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, valueError("substring not found")
	}
	return starlark.MakeInt(i), nil
}

func StrRindex(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	i, err := search("rindex", recv, sub, start, end, true)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, valueError("substring not found")
	}
	return starlark.MakeInt(i), nil
}

// tailMatch tries the affix, or each element of an affix tuple in order.
// An element of the wrong type only raises once it is reached.
func tailMatch(method string, recv, affix, start, end starlark.Value, atEnd bool) (starlark.Value, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	lo, hi, err := sliceBounds(start, end, len(rs))
	if err != nil {
		return nil, err
	}
	matches := func(c string) bool {
		cr := []rune(c)
		last := hi - len(cr)
		if last < lo {
			return false
		}
		if atEnd {
			return string(rs[last:hi]) == c
		}
		return string(rs[lo:lo+len(cr)]) == c
	}

	switch x := affix.(type) {
	case starlark.String:
		return starlark.Bool(matches(string(x))), nil
	case starlark.Tuple:
		for _, e := range x {
			c, ok := e.(starlark.String)
			if !ok {
				return nil, typeError("tuple for %s must only contain str, not %s", method, TypeName(e))
			}
			if matches(string(c)) {
				return starlark.True, nil
			}
		}
		return starlark.False, nil
	}
	return nil, typeError("%s first arg must be str or a tuple of str, not %s", method, TypeName(affix))
}

func StrStartswith(recv, prefix, start, end starlark.Value) (starlark.Value, error) {
	return tailMatch("startswith", recv, prefix, start, end, false)
}

func StrEndswith(recv, suffix, start, end starlark.Value) (starlark.Value, error) {
	return tailMatch("endswith", recv, suffix, start, end, true)
}

func StrExpandtabs(recv, tabsize starlark.Value) (starlark.Value, error) {
	s, err := strRecv("expandtabs", recv)
	if err != nil {
		return nil, err
	}
	size, err := asOptionalCInt(tabsize, 8)
	if err != nil {
		return nil, err
	}
	// measure first so a huge tab size never allocates
	total, column := 0, 0
	for _, r := range s {
		switch {
		case r == '\t':
			if size > 0 {
				incr := size - column%size
				column += incr
				total += incr
			}
		default:
			column++
			total++
			if r == '\n' || r == '\r' {
				column = 0
			}
		}
		if err := checkResultLen(total); err != nil {
			return nil, err
		}
	}
	var b strings.Builder
	column = 0
	for _, r := range s {
		if r == '\t' {
			if size > 0 {
				incr := size - column%size
				column += incr
				b.WriteString(strings.Repeat(" ", incr))
			}
			continue
		}
		b.WriteRune(r)
		column++
		if r == '\n' || r == '\r' {
			column = 0
		}
	}
	return starlark.String(b.String()), nil
}

func StrJoin(recv, iterable starlark.Value) (starlark.Value, error) {
	sep, err := strRecv("join", recv)
	if err != nil {
		return nil, err
	}
	items, ok := iterate(iterable)
	if !ok {
		return nil, typeError("can only join an iterable")
	}
	total := 0
	for i, item := range items {
		s, ok := item.(starlark.String)
		if !ok {
			return nil, typeError("sequence item %d: expected str instance, %s found", i, TypeName(item))
		}
		total += len(s) + len(sep)
	}
	if err := checkResultLen(total); err != nil {
		return nil, err
	}
	return delegate(pyexc.TypeError, recv, "join", starlark.Tuple(items))
}

func stripChars(method string, recv, chars starlark.Value, left, right bool) (starlark.Value, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return nil, err
	}
	if isNoneOrOmitted(chars) {
		switch {
		case left && right:
			s = strings.TrimFunc(s, isSpace)
		case left:
			s = strings.TrimLeftFunc(s, isSpace)
		default:
			s = strings.TrimRightFunc(s, isSpace)
		}
		return starlark.String(s), nil
	}
	if _, ok := chars.(starlark.String); !ok {
		return nil, typeError("%s arg must be None or str", method)
	}
	// Starlark's strip(cutset) trims code points exactly like Python.
	return delegate(pyexc.TypeError, recv, method, chars)
}

func StrStrip(recv, chars starlark.Value) (starlark.Value, error) {
	return stripChars("strip", recv, chars, true, true)
}

func StrLstrip(recv, chars starlark.Value) (starlark.Value, error) {
	return stripChars("lstrip", recv, chars, true, false)
}

func StrRstrip(recv, chars starlark.Value) (starlark.Value, error) {
	return stripChars("rstrip", recv, chars, false, true)
}

func partition(method string, recv, sep starlark.Value) (starlark.Value, error) {
	if _, err := strRecv(method, recv); err != nil {
		return nil, err
	}
	p, err := strArg(sep)
	if err != nil {
		return nil, err
	}
	if p == "" {
		return nil, valueError("empty separator")
	}
	return delegate(pyexc.ValueError, recv, method, sep)
}

func StrPartition(recv, sep starlark.Value) (starlark.Value, error) {
	return partition("partition", recv, sep)
}

func StrRpartition(recv, sep starlark.Value) (starlark.Value, error) {
	return partition("rpartition", recv, sep)
}

func StrRemoveprefix(recv, prefix starlark.Value) (starlark.Value, error) {
	if _, err := strRecv("removeprefix", recv); err != nil {
		return nil, err
	}
	if _, err := strArg(prefix); err != nil {
		return nil, err
	}
	return delegate(pyexc.TypeError, recv, "removeprefix", prefix)
}

func StrRemovesuffix(recv, suffix starlark.Value) (starlark.Value, error) {
	if _, err := strRecv("removesuffix", recv); err != nil {
		return nil, err
	}
	if _, err := strArg(suffix); err != nil {
		return nil, err
	}
	return delegate(pyexc.TypeError, recv, "removesuffix", suffix)
}

func StrReplace(recv, old, new, count starlark.Value) (starlark.Value, error) {
	s, err := strRecv("replace", recv)
	if err != nil {
		return nil, err
	}
	o, err := strArg(old)
	if err != nil {
		return nil, err
	}
	n, err := strArg(new)
	if err != nil {
		return nil, err
	}
	c, err := asOptionalSize(count, -1)
	if err != nil {
		return nil, err
	}
	hits := strings.Count(s, o)
	if c >= 0 && c < hits {
		hits = c
	}
	if err := checkResultLen(len(s) + hits*(len(n)-len(o))); err != nil {
		return nil, err
	}
	return delegate(pyexc.TypeError, recv, "replace", old, new, starlark.MakeInt(c))
}

func splitArgs(sep, maxsplit starlark.Value) (string, bool, int, error) {
	limit, err := asOptionalSize(maxsplit, -1)
	if err != nil {
		return "", false, 0, err
	}
	if isNoneOrOmitted(sep) {
		return "", false, limit, nil
	}
	s, err := strArg(sep)
	if err != nil {
		return "", false, 0, err
	}
	if s == "" {
		return "", false, 0, valueError("empty separator")
	}
	return s, true, limit, nil
}

func StrSplit(recv, sep, maxsplit starlark.Value) (starlark.Value, error) {
	s, err := strRecv("split", recv)
	if err != nil {
		return nil, err
	}
	_, explicit, limit, err := splitArgs(sep, maxsplit)
	if err != nil {
		return nil, err
	}
	if explicit {
		return delegate(pyexc.ValueError, recv, "split", sep, starlark.MakeInt(limit))
	}
	return stringList(splitWhitespace([]rune(s), limit, isSpace)), nil
}

func StrRsplit(recv, sep, maxsplit starlark.Value) (starlark.Value, error) {
	s, err := strRecv("rsplit", recv)
	if err != nil {
		return nil, err
	}
	_, explicit, limit, err := splitArgs(sep, maxsplit)
	if err != nil {
		return nil, err
	}
	if explicit {
		return delegate(pyexc.ValueError, recv, "rsplit", sep, starlark.MakeInt(limit))
	}
	return stringList(rsplitWhitespace([]rune(s), limit, isSpace)), nil
}

// splitWhitespace splits on runs of whitespace, at most limit times when
// limit is non-negative. The unsplit remainder keeps trailing whitespace.
func splitWhitespace(rs []rune, limit int, space func(rune) bool) []string {
	out := []string{}
	i, n := 0, len(rs)
	for limit != 0 {
		for i < n && space(rs[i]) {
			i++
		}
		if i == n {
			break
		}
		j := i
		i++
		for i < n && !space(rs[i]) {
			i++
		}
		out = append(out, string(rs[j:i]))
		if limit > 0 {
			limit--
		}
	}
	if i < n {
		for i < n && space(rs[i]) {
			i++
		}
		if i != n {
			out = append(out, string(rs[i:]))
		}
	}
	return out
}

func rsplitWhitespace(rs []rune, limit int, space func(rune) bool) []string {
	var rev []string
	i := len(rs) - 1
	for limit != 0 {
		for i >= 0 && space(rs[i]) {
			i--
		}
		if i < 0 {
			break
		}
		j := i
		i--
		for i >= 0 && !space(rs[i]) {
			i--
		}
		rev = append(rev, string(rs[i+1:j+1]))
		if limit > 0 {
			limit--
		}
	}
	if i >= 0 {
		for i >= 0 && space(rs[i]) {
			i--
		}
		if i >= 0 {
			rev = append(rev, string(rs[:i+1]))
		}
	}
	out := make([]string, len(rev))
	for k, part := range rev {
		out[len(rev)-1-k] = part
	}
	return out
}

func StrSplitlines(recv, keepends starlark.Value) (starlark.Value, error) {
	s, err := strRecv("splitlines", recv)
	if err != nil {
		return nil, err
	}
	keep, err := truthArg(keepends, false)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	out := []string{}
	for i := 0; i < len(rs); {
		j := i
		for i < len(rs) && !isLineBreak(rs[i]) {
			i++
		}
		eol := i
		if i < len(rs) {
			if rs[i] == '\r' && i+1 < len(rs) && rs[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
			if keep {
				eol = i
			}
		}
		out = append(out, string(rs[j:eol]))
	}
	return stringList(out), nil
}

func StrTranslate(recv, table starlark.Value) (starlark.Value, error) {
	s, err := strRecv("translate", recv)
	if err != nil {
		return nil, err
	}
	d, ok := table.(*starlark.Dict)
	if !ok {
		return nil, notFoldable("translate table of type %s", TypeName(table))
	}
	if dictHasBoolKeys(d) {
		return nil, notFoldable("translate table with bool keys")
	}
	var b strings.Builder
	for _, r := range s {
		v, found, err := d.Get(starlark.MakeInt(int(r)))
		if err != nil {
			return nil, notFoldable("translate lookup: %v", err)
		}
		if !found {
			b.WriteRune(r)
			continue
		}
		switch x := v.(type) {
		case starlark.NoneType:
		case starlark.String:
			b.WriteString(string(x))
		case starlark.Int:
			cp, ok := x.Int64()
			if !ok || cp < 0 || cp > unicode.MaxRune {
				return nil, valueError("character mapping must be in range(0x110000)")
			}
			if cp >= 0xd800 && cp <= 0xdfff {
				return nil, notFoldable("surrogate code point in translate result")
			}
			b.WriteRune(rune(cp))
		default:
			return nil, typeError("character mapping must return integer, None or str")
		}
		if err := checkResultLen(b.Len()); err != nil {
			return nil, err
		}
	}
	return starlark.String(b.String()), nil
}

// Encode is never folded: codec names and error handlers form an open set.
// The function exists so descriptor tables stay uniform.
func StrEncode(recv, encoding, errors starlark.Value) (starlark.Value, error) {
	return nil, notFoldable("str.encode depends on the codec registry")
}

// str predicates

func StrIsascii(recv starlark.Value) (starlark.Value, error) {
	s, err := strRecv("isascii", recv)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(isASCII(s)), nil
}

func allRunes(method string, recv starlark.Value, pred func(rune) bool) (starlark.Value, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return starlark.False, nil
	}
	for _, r := range s {
		if !pred(r) {
			return starlark.False, nil
		}
	}
	return starlark.True, nil
}

func StrIsspace(recv starlark.Value) (starlark.Value, error) {
	return allRunes("isspace", recv, isSpace)
}

func StrIsalpha(recv starlark.Value) (starlark.Value, error) {
	return allRunes("isalpha", recv, unicode.IsLetter)
}

func StrIsdecimal(recv starlark.Value) (starlark.Value, error) {
	return allRunes("isdecimal", recv, func(r rune) bool { return unicode.Is(unicode.Nd, r) })
}

// numericClass answers isdigit/isnumeric/isalnum for one rune, declining
// for non-ASCII code points whose numeric type Go's tables do not expose.
func numericClass(method string, recv starlark.Value, letters bool, extra func(rune) bool) (starlark.Value, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return starlark.False, nil
	}
	undecided := false
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Nd, r):
		case letters && unicode.IsLetter(r) && !extra(r):
		case r < utf8.RuneSelf:
			return starlark.False, nil
		case extra(r):
			undecided = true
		default:
			return starlark.False, nil
		}
	}
	if undecided {
		return nil, notFoldable("%s on non-decimal numeric characters", method)
	}
	return starlark.True, nil
}

func StrIsdigit(recv starlark.Value) (starlark.Value, error) {
	return numericClass("isdigit", recv, false, func(r rune) bool { return unicode.Is(unicode.No, r) })
}

func StrIsnumeric(recv starlark.Value) (starlark.Value, error) {
	return numericClass("isnumeric", recv, false, func(r rune) bool { return r >= utf8.RuneSelf })
}

func StrIsalnum(recv starlark.Value) (starlark.Value, error) {
	return numericClass("isalnum", recv, true, func(r rune) bool {
		return unicode.In(r, unicode.No, unicode.Nl)
	})
}

// asciiOnly applies an ASCII predicate, declining for any other input.
func asciiOnly(method string, recv starlark.Value, pred func(string) bool) (starlark.Value, error) {
	s, err := strRecv(method, recv)
	if err != nil {
		return nil, err
	}
	if !isASCII(s) {
		return nil, notFoldable("%s on non-ASCII text", method)
	}
	return starlark.Bool(pred(s)), nil
}

func StrIslower(recv starlark.Value) (starlark.Value, error) {
	return asciiOnly("islower", recv, casedAll(isByteLower, isByteUpper))
}

func StrIsupper(recv starlark.Value) (starlark.Value, error) {
	return asciiOnly("isupper", recv, casedAll(isByteUpper, isByteLower))
}

func StrIstitle(recv starlark.Value) (starlark.Value, error) {
	return asciiOnly("istitle", recv, isTitleASCII)
}

func StrIsprintable(recv starlark.Value) (starlark.Value, error) {
	return asciiOnly("isprintable", recv, func(s string) bool {
		for i := 0; i < len(s); i++ {
			if s[i] < 0x20 || s[i] == 0x7f {
				return false
			}
		}
		return true
	})
}

func StrIsidentifier(recv starlark.Value) (starlark.Value, error) {
	return asciiOnly("isidentifier", recv, func(s string) bool {
		if s == "" {
			return false
		}
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c == '_' || isByteAlpha(c) || (i > 0 && isByteDigit(c)) {
				continue
			}
			return false
		}
		return true
	})
}

// casedAll is islower/isupper: at least one cased character and none of
// the opposite case.
func casedAll(want, reject func(byte) bool) func(string) bool {
	return func(s string) bool {
		cased := false
		for i := 0; i < len(s); i++ {
			if reject(s[i]) {
				return false
			}
			if want(s[i]) {
				cased = true
			}
		}
		return cased
	}
}

func isTitleASCII(s string) bool {
	cased, prevCased := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isByteUpper(c):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case isByteLower(c):
			if !prevCased {
				return false
			}
			prevCased, cased = true, true
		default:
			prevCased = false
		}
	}
	return cased
}
