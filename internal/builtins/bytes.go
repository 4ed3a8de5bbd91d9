package builtins

import (
	"strings"

	"go.starlark.net/starlark"
)

// Starlark's bytes type has almost no methods, so the bytes family is
// implemented here over Go strings holding raw bytes.

func bytesArg(v starlark.Value) (string, error) {
	b, ok := v.(starlark.Bytes)
	if !ok {
		return "", typeError("a bytes-like object is required, not '%s'", TypeName(v))
	}
	return string(b), nil
}

// bytesNeedle accepts a bytes subsequence or a single byte given as int.
func bytesNeedle(v starlark.Value) (string, error) {
	if i, ok := v.(starlark.Int); ok {
		n, ok := i.Int64()
		if !ok || n < 0 || n > 255 {
			return "", valueError("byte must be in range(0, 256)")
		}
		return string([]byte{byte(n)}), nil
	}
	if _, ok := v.(starlark.Bool); ok {
		return "", notFoldable("bool used as a byte value")
	}
	return bytesArg(v)
}

func bytesFill(method string, v starlark.Value) (string, error) {
	if IsOmitted(v) {
		return " ", nil
	}
	b, ok := v.(starlark.Bytes)
	if !ok || len(b) != 1 {
		return "", typeError("%s() argument 2 must be a byte string of length 1, not %s", method, TypeName(v))
	}
	return string(b), nil
}

func BytesCenter(recv, width, fillchar starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("center", recv)
	if err != nil {
		return nil, err
	}
	w, err := asSize(width)
	if err != nil {
		return nil, err
	}
	fill, err := bytesFill("center", fillchar)
	if err != nil {
		return nil, err
	}
	if w <= len(s) {
		return recv, nil
	}
	marg := w - len(s)
	left := marg/2 + (marg & w & 1)
	out, err := pad(s, left, marg-left, fill)
	if err != nil {
		return nil, err
	}
	return starlark.Bytes(out), nil
}

func bytesJustify(method string, recv, width, fillchar starlark.Value, right bool) (starlark.Value, error) {
	s, err := bytesRecv(method, recv)
	if err != nil {
		return nil, err
	}
	w, err := asSize(width)
	if err != nil {
		return nil, err
	}
	fill, err := bytesFill(method, fillchar)
	if err != nil {
		return nil, err
	}
	if w <= len(s) {
		return recv, nil
	}
	var out string
	if right {
		out, err = pad(s, w-len(s), 0, fill)
	} else {
		out, err = pad(s, 0, w-len(s), fill)
	}
	if err != nil {
		return nil, err
	}
	return starlark.Bytes(out), nil
}

func BytesLjust(recv, width, fillchar starlark.Value) (starlark.Value, error) {
	return bytesJustify("ljust", recv, width, fillchar, false)
}

func BytesRjust(recv, width, fillchar starlark.Value) (starlark.Value, error) {
	return bytesJustify("rjust", recv, width, fillchar, true)
}

func BytesZfill(recv, width starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("zfill", recv)
	if err != nil {
		return nil, err
	}
	w, err := asSize(width)
	if err != nil {
		return nil, err
	}
	if w <= len(s) {
		return recv, nil
	}
	out, err := pad(s, w-len(s), 0, "0")
	if err != nil {
		return nil, err
	}
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		b := []byte(out)
		b[0], b[w-len(s)] = s[0], '0'
		out = string(b)
	}
	return starlark.Bytes(out), nil
}

func BytesCount(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("count", recv)
	if err != nil {
		return nil, err
	}
	needle, err := bytesNeedle(sub)
	if err != nil {
		return nil, err
	}
	lo, hi, err := sliceBounds(start, end, len(s))
	if err != nil {
		return nil, err
	}
	if hi-lo < len(needle) {
		return starlark.MakeInt(0), nil
	}
	if needle == "" {
		return starlark.MakeInt(hi - lo + 1), nil
	}
	return starlark.MakeInt(strings.Count(s[lo:hi], needle)), nil
}

func bytesSearch(method string, recv, sub, start, end starlark.Value, last bool) (int, error) {
	s, err := bytesRecv(method, recv)
	if err != nil {
		return 0, err
	}
	needle, err := bytesNeedle(sub)
	if err != nil {
		return 0, err
	}
	lo, hi, err := sliceBounds(start, end, len(s))
	if err != nil {
		return 0, err
	}
	if hi-lo < len(needle) {
		return -1, nil
	}
	var at int
	if last {
		at = strings.LastIndex(s[lo:hi], needle)
	} else {
		at = strings.Index(s[lo:hi], needle)
	}
	if at < 0 {
		return -1, nil
	}
	return lo + at, nil
}

func BytesFind(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	i, err := bytesSearch("find", recv, sub, start, end, false)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(i), nil
}

func BytesRfind(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	i, err := bytesSearch("rfind", recv, sub, start, end, true)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(i), nil
}

func BytesIndex(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	i, err := bytesSearch("index", recv, sub, start, end, false)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, valueError("subsection not found")
	}
	return starlark.MakeInt(i), nil
}

func BytesRindex(recv, sub, start, end starlark.Value) (starlark.Value, error) {
	i, err := bytesSearch("rindex", recv, sub, start, end, true)
	if err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, valueError("subsection not found")
	}
	return starlark.MakeInt(i), nil
}

func bytesTailMatch(method string, recv, affix, start, end starlark.Value, atEnd bool) (starlark.Value, error) {
	s, err := bytesRecv(method, recv)
	if err != nil {
		return nil, err
	}
	lo, hi, err := sliceBounds(start, end, len(s))
	if err != nil {
		return nil, err
	}
	matches := func(c string) bool {
		last := hi - len(c)
		if last < lo {
			return false
		}
		if atEnd {
			return s[last:hi] == c
		}
		return s[lo:lo+len(c)] == c
	}

	switch x := affix.(type) {
	case starlark.Bytes:
		return starlark.Bool(matches(string(x))), nil
	case starlark.Tuple:
		for _, e := range x {
			b, ok := e.(starlark.Bytes)
			if !ok {
				return nil, typeError("a bytes-like object is required, not '%s'", TypeName(e))
			}
			if matches(string(b)) {
				return starlark.True, nil
			}
		}
		return starlark.False, nil
	}
	return nil, typeError("%s first arg must be bytes or a tuple of bytes, not %s", method, TypeName(affix))
}

func BytesStartswith(recv, prefix, start, end starlark.Value) (starlark.Value, error) {
	return bytesTailMatch("startswith", recv, prefix, start, end, false)
}

func BytesEndswith(recv, suffix, start, end starlark.Value) (starlark.Value, error) {
	return bytesTailMatch("endswith", recv, suffix, start, end, true)
}

func BytesExpandtabs(recv, tabsize starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("expandtabs", recv)
	if err != nil {
		return nil, err
	}
	size, err := asOptionalCInt(tabsize, 8)
	if err != nil {
		return nil, err
	}
	total, column := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			if size > 0 {
				incr := size - column%size
				column += incr
				total += incr
			}
		} else {
			column++
			total++
			if s[i] == '\n' || s[i] == '\r' {
				column = 0
			}
		}
		if err := checkResultLen(total); err != nil {
			return nil, err
		}
	}
	b := make([]byte, 0, total)
	column = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\t' {
			if size > 0 {
				incr := size - column%size
				column += incr
				for ; incr > 0; incr-- {
					b = append(b, ' ')
				}
			}
			continue
		}
		b = append(b, c)
		column++
		if c == '\n' || c == '\r' {
			column = 0
		}
	}
	return starlark.Bytes(b), nil
}

func BytesJoin(recv, iterable starlark.Value) (starlark.Value, error) {
	sep, err := bytesRecv("join", recv)
	if err != nil {
		return nil, err
	}
	items, ok := iterate(iterable)
	if !ok {
		return nil, typeError("can only join an iterable")
	}
	parts := make([]string, len(items))
	total := 0
	for i, item := range items {
		b, ok := item.(starlark.Bytes)
		if !ok {
			return nil, typeError("sequence item %d: expected a bytes-like object, %s found", i, TypeName(item))
		}
		parts[i] = string(b)
		total += len(b) + len(sep)
	}
	if err := checkResultLen(total); err != nil {
		return nil, err
	}
	return starlark.Bytes(strings.Join(parts, sep)), nil
}

func bytesStrip(method string, recv, chars starlark.Value, left, right bool) (starlark.Value, error) {
	s, err := bytesRecv(method, recv)
	if err != nil {
		return nil, err
	}
	in := isByteSpace
	if !isNoneOrOmitted(chars) {
		set, err := bytesArg(chars)
		if err != nil {
			return nil, err
		}
		in = func(c byte) bool { return strings.IndexByte(set, c) >= 0 }
	}
	lo, hi := 0, len(s)
	if left {
		for lo < hi && in(s[lo]) {
			lo++
		}
	}
	if right {
		for hi > lo && in(s[hi-1]) {
			hi--
		}
	}
	return starlark.Bytes(s[lo:hi]), nil
}

func BytesStrip(recv, chars starlark.Value) (starlark.Value, error) {
	return bytesStrip("strip", recv, chars, true, true)
}

func BytesLstrip(recv, chars starlark.Value) (starlark.Value, error) {
	return bytesStrip("lstrip", recv, chars, true, false)
}

func BytesRstrip(recv, chars starlark.Value) (starlark.Value, error) {
	return bytesStrip("rstrip", recv, chars, false, true)
}

func bytesPartition(method string, recv, sep starlark.Value, last bool) (starlark.Value, error) {
	s, err := bytesRecv(method, recv)
	if err != nil {
		return nil, err
	}
	p, err := bytesArg(sep)
	if err != nil {
		return nil, err
	}
	if p == "" {
		return nil, valueError("empty separator")
	}
	var at int
	if last {
		at = strings.LastIndex(s, p)
	} else {
		at = strings.Index(s, p)
	}
	if at < 0 {
		if last {
			return starlark.Tuple{starlark.Bytes(""), starlark.Bytes(""), starlark.Bytes(s)}, nil
		}
		return starlark.Tuple{starlark.Bytes(s), starlark.Bytes(""), starlark.Bytes("")}, nil
	}
	return starlark.Tuple{starlark.Bytes(s[:at]), starlark.Bytes(p), starlark.Bytes(s[at+len(p):])}, nil
}

func BytesPartition(recv, sep starlark.Value) (starlark.Value, error) {
	return bytesPartition("partition", recv, sep, false)
}

func BytesRpartition(recv, sep starlark.Value) (starlark.Value, error) {
	return bytesPartition("rpartition", recv, sep, true)
}

func BytesRemoveprefix(recv, prefix starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("removeprefix", recv)
	if err != nil {
		return nil, err
	}
	p, err := bytesArg(prefix)
	if err != nil {
		return nil, err
	}
	return starlark.Bytes(strings.TrimPrefix(s, p)), nil
}

func BytesRemovesuffix(recv, suffix starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("removesuffix", recv)
	if err != nil {
		return nil, err
	}
	p, err := bytesArg(suffix)
	if err != nil {
		return nil, err
	}
	return starlark.Bytes(strings.TrimSuffix(s, p)), nil
}

func BytesReplace(recv, old, new, count starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("replace", recv)
	if err != nil {
		return nil, err
	}
	o, err := bytesArg(old)
	if err != nil {
		return nil, err
	}
	n, err := bytesArg(new)
	if err != nil {
		return nil, err
	}
	c, err := asOptionalSize(count, -1)
	if err != nil {
		return nil, err
	}
	if o == "" {
		// strings.Replace would step over UTF-8 sequences, bytes step per byte
		return bytesInsertEverywhere(s, n, c)
	}
	hits := strings.Count(s, o)
	if c >= 0 && c < hits {
		hits = c
	}
	if err := checkResultLen(len(s) + hits*(len(n)-len(o))); err != nil {
		return nil, err
	}
	return starlark.Bytes(strings.Replace(s, o, n, c)), nil
}

func bytesInsertEverywhere(s, ins string, count int) (starlark.Value, error) {
	slots := len(s) + 1
	if count >= 0 && count < slots {
		slots = count
	}
	if err := checkResultLen(len(s) + slots*len(ins)); err != nil {
		return nil, err
	}
	var b strings.Builder
	for i := 0; i <= len(s); i++ {
		if i < slots {
			b.WriteString(ins)
		}
		if i < len(s) {
			b.WriteByte(s[i])
		}
	}
	return starlark.Bytes(b.String()), nil
}

func bytesSplitArgs(sep, maxsplit starlark.Value) (string, bool, int, error) {
	limit, err := asOptionalSize(maxsplit, -1)
	if err != nil {
		return "", false, 0, err
	}
	if isNoneOrOmitted(sep) {
		return "", false, limit, nil
	}
	p, err := bytesArg(sep)
	if err != nil {
		return "", false, 0, err
	}
	if p == "" {
		return "", false, 0, valueError("empty separator")
	}
	return p, true, limit, nil
}

// asciiRunes widens bytes so the whitespace splitter can be shared with str.
func asciiRunes(s string) []rune {
	rs := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		rs[i] = rune(s[i])
	}
	return rs
}

func isRuneByteSpace(r rune) bool { return r < 0x80 && isByteSpace(byte(r)) }

func runesToBytes(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		b := make([]byte, 0, len(p))
		for _, r := range p {
			b = append(b, byte(r))
		}
		out[i] = string(b)
	}
	return out
}

func BytesSplit(recv, sep, maxsplit starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("split", recv)
	if err != nil {
		return nil, err
	}
	p, explicit, limit, err := bytesSplitArgs(sep, maxsplit)
	if err != nil {
		return nil, err
	}
	if explicit {
		n := -1
		if limit >= 0 {
			n = limit + 1
		}
		return bytesList(strings.SplitN(s, p, n)), nil
	}
	return bytesList(runesToBytes(splitWhitespace(asciiRunes(s), limit, isRuneByteSpace))), nil
}

func BytesRsplit(recv, sep, maxsplit starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("rsplit", recv)
	if err != nil {
		return nil, err
	}
	p, explicit, limit, err := bytesSplitArgs(sep, maxsplit)
	if err != nil {
		return nil, err
	}
	if explicit {
		return bytesList(rsplitSep(s, p, limit)), nil
	}
	return bytesList(runesToBytes(rsplitWhitespace(asciiRunes(s), limit, isRuneByteSpace))), nil
}

func rsplitSep(s, sep string, limit int) []string {
	var rev []string
	for limit != 0 {
		at := strings.LastIndex(s, sep)
		if at < 0 {
			break
		}
		rev = append(rev, s[at+len(sep):])
		s = s[:at]
		if limit > 0 {
			limit--
		}
	}
	rev = append(rev, s)
	out := make([]string, len(rev))
	for i, part := range rev {
		out[len(rev)-1-i] = part
	}
	return out
}

func BytesSplitlines(recv, keepends starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("splitlines", recv)
	if err != nil {
		return nil, err
	}
	keep, err := truthArg(keepends, false)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for i := 0; i < len(s); {
		j := i
		for i < len(s) && s[i] != '\n' && s[i] != '\r' {
			i++
		}
		eol := i
		if i < len(s) {
			if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
			if keep {
				eol = i
			}
		}
		out = append(out, s[j:eol])
	}
	return bytesList(out), nil
}

// Decoding depends on the codec registry and error handlers at runtime.
func BytesDecode(recv, encoding, errors starlark.Value) (starlark.Value, error) {
	return nil, notFoldable("bytes.decode depends on the codec registry")
}

func bytesMap(method string, recv starlark.Value, f func(i int, prev, c byte) byte) (starlark.Value, error) {
	s, err := bytesRecv(method, recv)
	if err != nil {
		return nil, err
	}
	b := make([]byte, len(s))
	var prev byte
	for i := 0; i < len(s); i++ {
		b[i] = f(i, prev, s[i])
		prev = s[i]
	}
	return starlark.Bytes(b), nil
}

func BytesLower(recv starlark.Value) (starlark.Value, error) {
	return bytesMap("lower", recv, func(_ int, _, c byte) byte { return byteToLower(c) })
}

func BytesUpper(recv starlark.Value) (starlark.Value, error) {
	return bytesMap("upper", recv, func(_ int, _, c byte) byte { return byteToUpper(c) })
}

func BytesSwapcase(recv starlark.Value) (starlark.Value, error) {
	return bytesMap("swapcase", recv, func(_ int, _, c byte) byte {
		if isByteUpper(c) {
			return byteToLower(c)
		}
		return byteToUpper(c)
	})
}

func BytesCapitalize(recv starlark.Value) (starlark.Value, error) {
	return bytesMap("capitalize", recv, func(i int, _, c byte) byte {
		if i == 0 {
			return byteToUpper(c)
		}
		return byteToLower(c)
	})
}

func BytesTitle(recv starlark.Value) (starlark.Value, error) {
	return bytesMap("title", recv, func(i int, prev, c byte) byte {
		if i > 0 && isByteAlpha(prev) {
			return byteToLower(c)
		}
		return byteToUpper(c)
	})
}

func allBytes(method string, recv starlark.Value, pred func(byte) bool) (starlark.Value, error) {
	s, err := bytesRecv(method, recv)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return starlark.False, nil
	}
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return starlark.False, nil
		}
	}
	return starlark.True, nil
}

func BytesIsalnum(recv starlark.Value) (starlark.Value, error) {
	return allBytes("isalnum", recv, func(c byte) bool { return isByteAlpha(c) || isByteDigit(c) })
}

func BytesIsalpha(recv starlark.Value) (starlark.Value, error) {
	return allBytes("isalpha", recv, isByteAlpha)
}

func BytesIsdigit(recv starlark.Value) (starlark.Value, error) {
	return allBytes("isdigit", recv, isByteDigit)
}

func BytesIsspace(recv starlark.Value) (starlark.Value, error) {
	return allBytes("isspace", recv, isByteSpace)
}

func BytesIslower(recv starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("islower", recv)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(casedAll(isByteLower, isByteUpper)(s)), nil
}

func BytesIsupper(recv starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("isupper", recv)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(casedAll(isByteUpper, isByteLower)(s)), nil
}

func BytesIstitle(recv starlark.Value) (starlark.Value, error) {
	s, err := bytesRecv("istitle", recv)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(isTitleASCII(s)), nil
}
