package builtins

import (
	"math"
	"testing"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

type call = func() (starlark.Value, error)

func TestStrPadding(t *testing.T) {
	runFoldCases(t, []foldCase{
		{"center odd margin", func() (starlark.Value, error) { return StrCenter(S("ab"), I(5), O) }, S("  ab ")},
		{"center fill", func() (starlark.Value, error) { return StrCenter(S("a"), I(4), S("*")) }, S("*a**")},
		{"center narrow", func() (starlark.Value, error) { return StrCenter(S("abc"), I(2), O) }, S("abc")},
		{"center bad fill", func() (starlark.Value, error) { return StrCenter(S("ab"), I(3), S("xy")) }, pyexc.TypeError},
		{"center str width", func() (starlark.Value, error) { return StrCenter(S("ab"), S("3"), O) }, pyexc.TypeError},
		{"ljust", func() (starlark.Value, error) { return StrLjust(S("ab"), I(4), S("-")) }, S("ab--")},
		{"rjust unicode fill", func() (starlark.Value, error) { return StrRjust(S("ab"), I(3), S("é")) }, S("éab")},
		{"zfill sign", func() (starlark.Value, error) { return StrZfill(S("-42"), I(5)) }, S("-0042")},
		{"zfill plain", func() (starlark.Value, error) { return StrZfill(S("7"), I(3)) }, S("007")},
		{"zfill bool width", func() (starlark.Value, error) { return StrZfill(S(""), starlark.True) }, S("0")},
		{"expandtabs", func() (starlark.Value, error) { return StrExpandtabs(S("a\tb"), O) }, S("a       b")},
		{"expandtabs newline resets", func() (starlark.Value, error) { return StrExpandtabs(S("ab\n\tc"), I(4)) }, S("ab\n    c")},
		{"expandtabs zero", func() (starlark.Value, error) { return StrExpandtabs(S("a\tb"), I(0)) }, S("ab")},
		{"expandtabs c int overflow", func() (starlark.Value, error) {
			return StrExpandtabs(S("x"), starlark.MakeInt64(math.MaxInt32+1))
		}, pyexc.OverflowError},
		{"expandtabs c int underflow", func() (starlark.Value, error) {
			return StrExpandtabs(S("x"), starlark.MakeInt64(math.MinInt32-1))
		}, pyexc.OverflowError},
		{"expandtabs c int bound", func() (starlark.Value, error) {
			return StrExpandtabs(S("x"), starlark.MakeInt64(math.MinInt32))
		}, S("x")},
	})
}

func TestStrSearch(t *testing.T) {
	runFoldCases(t, []foldCase{
		{"count overlapping", func() (starlark.Value, error) { return StrCount(S("aaaa"), S("aa"), O, O) }, I(2)},
		{"count empty", func() (starlark.Value, error) { return StrCount(S("abc"), S(""), O, O) }, I(4)},
		{"count window", func() (starlark.Value, error) { return StrCount(S("abab"), S("ab"), I(1), O) }, I(1)},
		{"find code points", func() (starlark.Value, error) { return StrFind(S("héllo"), S("l"), O, O) }, I(2)},
		{"rfind code points", func() (starlark.Value, error) { return StrRfind(S("héllo"), S("l"), O, O) }, I(3)},
		{"find missing", func() (starlark.Value, error) { return StrFind(S("abc"), S("z"), O, O) }, I(-1)},
		{"find past end", func() (starlark.Value, error) { return StrFind(S("abc"), S(""), I(5), O) }, I(-1)},
		{"find negative start", func() (starlark.Value, error) { return StrFind(S("abcabc"), S("a"), I(-3), O) }, I(3)},
		{"find none bounds", func() (starlark.Value, error) {
			return StrFind(S("abc"), S("c"), starlark.None, starlark.None)
		}, I(2)},
		{"find bad sub", func() (starlark.Value, error) { return StrFind(S("abc"), I(1), O, O) }, pyexc.TypeError},
		{"find bad bound", func() (starlark.Value, error) { return StrFind(S("abc"), S("a"), S("0"), O) }, pyexc.TypeError},
		{"index missing", func() (starlark.Value, error) { return StrIndex(S("abc"), S("z"), O, O) }, pyexc.ValueError},
		{"rindex", func() (starlark.Value, error) { return StrRindex(S("abca"), S("a"), O, O) }, I(3)},
		{"startswith tuple", func() (starlark.Value, error) {
			return StrStartswith(S("hello"), starlark.Tuple{S("x"), S("he")}, O, O)
		}, starlark.True},
		{"endswith window", func() (starlark.Value, error) { return StrEndswith(S("hello"), S("lo"), I(0), I(4)) }, starlark.False},
		{"endswith empty past end", func() (starlark.Value, error) { return StrEndswith(S("ab"), S(""), I(3), O) }, starlark.False},
		{"startswith bad tuple", func() (starlark.Value, error) {
			return StrStartswith(S("a"), starlark.Tuple{I(1)}, O, O)
		}, pyexc.TypeError},
		{"startswith match before bad element", func() (starlark.Value, error) {
			return StrStartswith(S("abc"), starlark.Tuple{S("a"), I(1)}, O, O)
		}, starlark.True},
		{"endswith match before bad element", func() (starlark.Value, error) {
			return StrEndswith(S("abc"), starlark.Tuple{S("c"), I(1)}, O, O)
		}, starlark.True},
		{"startswith bad element after miss", func() (starlark.Value, error) {
			return StrStartswith(S("abc"), starlark.Tuple{S("x"), I(1)}, O, O)
		}, pyexc.TypeError},
	})
}

func TestStrSplitting(t *testing.T) {
	runFoldCases(t, []foldCase{
		{"split whitespace", func() (starlark.Value, error) { return StrSplit(S("  a  b  "), O, O) }, list(S("a"), S("b"))},
		{"split maxsplit keeps tail", func() (starlark.Value, error) { return StrSplit(S(" a b "), O, I(1)) }, list(S("a"), S("b "))},
		{"split none sep", func() (starlark.Value, error) { return StrSplit(S("a b"), starlark.None, O) }, list(S("a"), S("b"))},
		{"split python whitespace", func() (starlark.Value, error) { return StrSplit(S("a\x1cb"), O, O) }, list(S("a"), S("b"))},
		{"split sep", func() (starlark.Value, error) { return StrSplit(S("a,b,,c"), S(","), O) }, list(S("a"), S("b"), S(""), S("c"))},
		{"split sep limit", func() (starlark.Value, error) { return StrSplit(S("a,b,c"), S(","), I(1)) }, list(S("a"), S("b,c"))},
		{"split empty sep", func() (starlark.Value, error) { return StrSplit(S("a"), S(""), O) }, pyexc.ValueError},
		{"split none maxsplit", func() (starlark.Value, error) { return StrSplit(S("a b"), O, starlark.None) }, pyexc.TypeError},
		{"split empty string", func() (starlark.Value, error) { return StrSplit(S(""), O, O) }, list()},
		{"rsplit whitespace limit", func() (starlark.Value, error) { return StrRsplit(S("a b c"), O, I(1)) }, list(S("a b"), S("c"))},
		{"rsplit sep limit", func() (starlark.Value, error) { return StrRsplit(S("a,b,c"), S(","), I(1)) }, list(S("a,b"), S("c"))},
		{"splitlines", func() (starlark.Value, error) { return StrSplitlines(S("a\nb\r\nc"), O) }, list(S("a"), S("b"), S("c"))},
		{"splitlines keepends", func() (starlark.Value, error) {
			return StrSplitlines(S("a\nb\r\nc"), starlark.True)
		}, list(S("a\n"), S("b\r\n"), S("c"))},
		{"splitlines keepends overflow", func() (starlark.Value, error) {
			return StrSplitlines(S("a"), starlark.MakeInt64(math.MaxInt32+1))
		}, pyexc.OverflowError},
		{"splitlines keepends int", func() (starlark.Value, error) { return StrSplitlines(S("a\n"), I(2)) }, list(S("a\n"))},
		{"splitlines unicode breaks", func() (starlark.Value, error) { return StrSplitlines(S("a\u2028b\x0bc"), O) }, list(S("a"), S("b"), S("c"))},
		{"partition", func() (starlark.Value, error) { return StrPartition(S("a=b=c"), S("=")) }, starlark.Tuple{S("a"), S("="), S("b=c")}},
		{"rpartition", func() (starlark.Value, error) { return StrRpartition(S("a=b=c"), S("=")) }, starlark.Tuple{S("a=b"), S("="), S("c")}},
		{"partition missing", func() (starlark.Value, error) { return StrPartition(S("abc"), S("=")) }, starlark.Tuple{S("abc"), S(""), S("")}},
		{"partition empty", func() (starlark.Value, error) { return StrPartition(S("abc"), S("")) }, pyexc.ValueError},
	})
}

func TestStrJoinAndStrip(t *testing.T) {
	runFoldCases(t, []foldCase{
		{"strip", func() (starlark.Value, error) { return StrStrip(S("  x  "), O) }, S("x")},
		{"strip none", func() (starlark.Value, error) { return StrStrip(S("\u3000x\x1f"), starlark.None) }, S("x")},
		{"lstrip chars", func() (starlark.Value, error) { return StrLstrip(S("xxaxx"), S("x")) }, S("axx")},
		{"rstrip chars", func() (starlark.Value, error) { return StrRstrip(S("xxaxx"), S("x")) }, S("xxa")},
		{"strip bad chars", func() (starlark.Value, error) { return StrStrip(S("a"), I(1)) }, pyexc.TypeError},
		{"strip wrong receiver", func() (starlark.Value, error) { return StrStrip(B("a"), O) }, pyexc.TypeError},
		{"join list", func() (starlark.Value, error) { return StrJoin(S(","), list(S("a"), S("b"))) }, S("a,b")},
		{"join str iterable", func() (starlark.Value, error) { return StrJoin(S("-"), S("abc")) }, S("a-b-c")},
		{"join dict keys", func() (starlark.Value, error) { return StrJoin(S(""), dict(S("k"), I(1))) }, S("k")},
		{"join non-str item", func() (starlark.Value, error) { return StrJoin(S(","), list(S("a"), I(1))) }, pyexc.TypeError},
		{"join non-iterable", func() (starlark.Value, error) { return StrJoin(S(","), I(1)) }, pyexc.TypeError},
		{"removeprefix", func() (starlark.Value, error) { return StrRemoveprefix(S("foobar"), S("foo")) }, S("bar")},
		{"removesuffix", func() (starlark.Value, error) { return StrRemovesuffix(S("foobar"), S("baz")) }, S("foobar")},
		{"replace count", func() (starlark.Value, error) { return StrReplace(S("aaa"), S("a"), S("b"), I(2)) }, S("bba")},
		{"replace all", func() (starlark.Value, error) { return StrReplace(S("a.b.c"), S("."), S(""), O) }, S("abc")},
		{"replace empty old", func() (starlark.Value, error) { return StrReplace(S("ab"), S(""), S("-"), O) }, S("-a-b-")},
		{"translate", func() (starlark.Value, error) {
			return StrTranslate(S("abc"), dict(I(97), S("x"), I(98), starlark.None, I(99), I(100)))
		}, S("xd")},
		{"translate bool keys", func() (starlark.Value, error) {
			return StrTranslate(S("abc"), dict(starlark.True, S("x")))
		}, declined},
		{"encode never folds", func() (starlark.Value, error) { return StrEncode(S("a"), O, O) }, declined},
	})
}

func TestStrCase(t *testing.T) {
	runFoldCases(t, []foldCase{
		{"upper full mapping", func() (starlark.Value, error) { return StrUpper(S("straße")) }, S("STRASSE")},
		{"lower", func() (starlark.Value, error) { return StrLower(S("ÀB")) }, S("àb")},
		{"lower final sigma", func() (starlark.Value, error) { return StrLower(S("ΟΔΟΣ")) }, S("οδος")},
		{"lower sigma word start", func() (starlark.Value, error) { return StrLower(S("ΣΑΣ")) }, S("σας")},
		{"lower lone sigma", func() (starlark.Value, error) { return StrLower(S("Σ")) }, S("σ")},
		{"lower sigma before space", func() (starlark.Value, error) { return StrLower(S("ΟΣ ΚΑΙ")) }, S("ος και")},
		{"lower sigma next to apostrophe declines", func() (starlark.Value, error) { return StrLower(S("ΑΣ'")) }, declined},
		{"casefold sigma", func() (starlark.Value, error) { return StrCasefold(S("ΟΔΟΣ")) }, S("οδοσ")},
		{"casefold", func() (starlark.Value, error) { return StrCasefold(S("Straße")) }, S("strasse")},
		{"capitalize", func() (starlark.Value, error) { return StrCapitalize(S("hELLO")) }, S("Hello")},
		{"title", func() (starlark.Value, error) { return StrTitle(S("hello wORLD a1b")) }, S("Hello World A1B")},
		{"title non-ascii declines", func() (starlark.Value, error) { return StrTitle(S("héllo")) }, declined},
		{"swapcase", func() (starlark.Value, error) { return StrSwapcase(S("aB1")) }, S("Ab1")},
	})
}

func TestStrPredicates(t *testing.T) {
	tests := []struct {
		name string
		fn   func(starlark.Value) (starlark.Value, error)
		in   string
		want interface{}
	}{
		{"isdigit", StrIsdigit, "123", starlark.True},
		{"isdigit empty", StrIsdigit, "", starlark.False},
		{"isdigit superscript", StrIsdigit, "²", declined},
		{"isdigit letters", StrIsdigit, "12a", starlark.False},
		{"isdecimal arabic", StrIsdecimal, "١٢", starlark.True},
		{"isalpha", StrIsalpha, "abcé", starlark.True},
		{"isalpha digit", StrIsalpha, "ab1", starlark.False},
		{"isalnum", StrIsalnum, "ab1", starlark.True},
		{"isalnum space", StrIsalnum, "a b", starlark.False},
		{"isnumeric", StrIsnumeric, "42", starlark.True},
		{"isnumeric fraction", StrIsnumeric, "½", declined},
		{"isspace", StrIsspace, " \t\x1c", starlark.True},
		{"isspace empty", StrIsspace, "", starlark.False},
		{"isascii", StrIsascii, "abc", starlark.True},
		{"isascii empty", StrIsascii, "", starlark.True},
		{"islower", StrIslower, "ab1", starlark.True},
		{"islower uncased", StrIslower, "123", starlark.False},
		{"isupper", StrIsupper, "AB", starlark.True},
		{"istitle", StrIstitle, "Hello World", starlark.True},
		{"istitle inner upper", StrIstitle, "HeLlo", starlark.False},
		{"isidentifier", StrIsidentifier, "_a1", starlark.True},
		{"isidentifier digit start", StrIsidentifier, "1a", starlark.False},
		{"isprintable", StrIsprintable, "a\n", starlark.False},
		{"isprintable non-ascii", StrIsprintable, "é", declined},
	}
	cases := make([]foldCase, len(tests))
	for i, test := range tests {
		fn, in := test.fn, test.in
		cases[i] = foldCase{test.name, func() (starlark.Value, error) { return fn(S(in)) }, test.want}
	}
	runFoldCases(t, cases)
}

func TestStrFormat(t *testing.T) {
	kw := dict(S("x"), S("X"))
	format := func(tmpl string, args starlark.Tuple, pairs starlark.Value) call {
		return func() (starlark.Value, error) { return StrFormat(S(tmpl), args, pairs) }
	}
	runFoldCases(t, []foldCase{
		{"auto", format("{} {}", starlark.Tuple{S("a"), I(1)}, O), S("a 1")},
		{"manual", format("{1}{0}{1}", starlark.Tuple{S("a"), S("b")}, O), S("bab")},
		{"keyword", format("<{x}>", nil, kw), S("<X>")},
		{"escapes", format("{{}}{}", starlark.Tuple{starlark.None}, O), S("{}None")},
		{"bools", format("{}", starlark.Tuple{starlark.True}, O), S("True")},
		{"mixed numbering", format("{}{0}", starlark.Tuple{S("a")}, O), pyexc.ValueError},
		{"missing index", format("{2}", starlark.Tuple{S("a")}, O), pyexc.IndexError},
		{"missing auto", format("{}{}", starlark.Tuple{S("a")}, O), pyexc.IndexError},
		{"missing keyword", format("{y}", nil, kw), pyexc.KeyError},
		{"single close", format("a}", nil, O), pyexc.ValueError},
		{"unclosed", format("{", nil, O), pyexc.ValueError},
		{"align right", format("{:>3}", starlark.Tuple{S("a")}, O), S("  a")},
		{"str default left", format("[{:4}]", starlark.Tuple{S("ab")}, O), S("[ab  ]")},
		{"int default right", format("[{:4d}]", starlark.Tuple{I(42)}, O), S("[  42]")},
		{"fill center", format("{:*^6s}", starlark.Tuple{S("ab")}, O), S("**ab**")},
		{"center odd fill", format("{:^4}", starlark.Tuple{S("a")}, O), S(" a  ")},
		{"sign plus", format("{:+}|{:+}", starlark.Tuple{I(3), I(-3)}, O), S("+3|-3")},
		{"sign space", format("{: d}", starlark.Tuple{I(7)}, O), S(" 7")},
		{"sign aware padding", format("{0:=+5}", starlark.Tuple{I(3)}, O), S("+   3")},
		{"unicode fill", format("{x:é<3}", nil, kw), S("Xéé")},
		{"narrow width", format("{:1}", starlark.Tuple{S("abc")}, O), S("abc")},
		{"empty spec", format("{:}", starlark.Tuple{I(1)}, O), S("1")},
		{"d on str", format("{:d}", starlark.Tuple{S("a")}, O), pyexc.ValueError},
		{"s on int", format("{:s}", starlark.Tuple{I(1)}, O), pyexc.ValueError},
		{"sign on str", format("{:+}", starlark.Tuple{S("a")}, O), pyexc.ValueError},
		{"sign aware str", format("{:=5}", starlark.Tuple{S("a")}, O), pyexc.ValueError},
		{"zero pad declines", format("{:05}", starlark.Tuple{I(1)}, O), declined},
		{"precision declines", format("{:.2}", starlark.Tuple{S("abc")}, O), declined},
		{"bool spec declines", format("{:>5}", starlark.Tuple{starlark.True}, O), declined},
		{"conversion declines", format("{!r}", starlark.Tuple{S("a")}, O), declined},
		{"attribute declines", format("{0.real}", starlark.Tuple{I(1)}, O), declined},
		{"float declines", format("{}", starlark.Tuple{starlark.Float(1.5)}, O), declined},
		{"unused args ignored", format("x", starlark.Tuple{starlark.Float(1.5)}, O), S("x")},
	})
}
