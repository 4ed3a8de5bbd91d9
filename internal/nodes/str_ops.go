package nodes

import (
	"github.com/serpent-lang/serpent/internal/builtins"
	"github.com/serpent-lang/serpent/internal/shape"
)

func strMethod(name string, sh shape.Tag, fold interface{}) *method {
	return newMethod("str", "str_arg", name, sh, fold)
}

// strMethods is the str family in registration order.
var strMethods = []*method{
	strMethod("capitalize", shape.String, Fold1(builtins.StrCapitalize)),
	strMethod("casefold", shape.String, Fold1(builtins.StrCasefold)),
	strMethod("center", shape.String, Fold3(builtins.StrCenter)).args("width").opt("fillchar"),
	strMethod("count", shape.Int, Fold4(builtins.StrCount)).args("sub").opt("start", "end"),
	strMethod("encode", shape.Bytes, Fold3(builtins.StrEncode)).opt("encoding", "errors").
		raising("codec lookup and encoding errors").custom(computeNeverFold),
	strMethod("endswith", shape.Bool, Fold4(builtins.StrEndswith)).args("suffix").opt("start", "end"),
	strMethod("expandtabs", shape.String, Fold2(builtins.StrExpandtabs)).opt("tabsize"),
	strMethod("find", shape.Int, Fold4(builtins.StrFind)).args("sub").opt("start", "end"),
	strMethod("format", shape.String, Fold3(builtins.StrFormat)).args("args", "pairs").
		raising("format strings can fail for any argument"),
	strMethod("index", shape.Int, Fold4(builtins.StrIndex)).args("sub").opt("start", "end").
		raising("ValueError when the substring is missing"),
	strMethod("isalnum", shape.Bool, Fold1(builtins.StrIsalnum)),
	strMethod("isalpha", shape.Bool, Fold1(builtins.StrIsalpha)),
	strMethod("isascii", shape.Bool, Fold1(builtins.StrIsascii)),
	strMethod("isdecimal", shape.Bool, Fold1(builtins.StrIsdecimal)),
	strMethod("isdigit", shape.Bool, Fold1(builtins.StrIsdigit)),
	strMethod("isidentifier", shape.Bool, Fold1(builtins.StrIsidentifier)),
	strMethod("islower", shape.Bool, Fold1(builtins.StrIslower)),
	strMethod("isnumeric", shape.Bool, Fold1(builtins.StrIsnumeric)),
	strMethod("isprintable", shape.Bool, Fold1(builtins.StrIsprintable)),
	strMethod("isspace", shape.Bool, Fold1(builtins.StrIsspace)),
	strMethod("istitle", shape.Bool, Fold1(builtins.StrIstitle)),
	strMethod("isupper", shape.Bool, Fold1(builtins.StrIsupper)),
	strMethod("join", shape.StrOrUnicode, Fold2(builtins.StrJoin)).args("iterable"),
	strMethod("ljust", shape.String, Fold3(builtins.StrLjust)).args("width").opt("fillchar"),
	strMethod("lower", shape.String, Fold1(builtins.StrLower)),
	strMethod("lstrip", shape.String, Fold2(builtins.StrLstrip)).opt("chars"),
	strMethod("partition", shape.Tuple, Fold2(builtins.StrPartition)).args("sep").length(3),
	strMethod("removeprefix", shape.String, Fold2(builtins.StrRemoveprefix)).args("prefix"),
	strMethod("removesuffix", shape.String, Fold2(builtins.StrRemovesuffix)).args("suffix"),
	strMethod("replace", shape.StrOrUnicode, Fold4(builtins.StrReplace)).args("old", "new").opt("count"),
	strMethod("rfind", shape.Int, Fold4(builtins.StrRfind)).args("sub").opt("start", "end"),
	strMethod("rindex", shape.Int, Fold4(builtins.StrRindex)).args("sub").opt("start", "end").
		raising("ValueError when the substring is missing"),
	strMethod("rjust", shape.String, Fold3(builtins.StrRjust)).args("width").opt("fillchar"),
	strMethod("rpartition", shape.Tuple, Fold2(builtins.StrRpartition)).args("sep").length(3),
	strMethod("rsplit", shape.List, Fold3(builtins.StrRsplit)).opt("sep", "maxsplit"),
	strMethod("rstrip", shape.String, Fold2(builtins.StrRstrip)).opt("chars"),
	strMethod("split", shape.List, Fold3(builtins.StrSplit)).opt("sep", "maxsplit"),
	strMethod("splitlines", shape.List, Fold2(builtins.StrSplitlines)).opt("keepends"),
	strMethod("startswith", shape.Bool, Fold4(builtins.StrStartswith)).args("prefix").opt("start", "end"),
	strMethod("strip", shape.String, Fold2(builtins.StrStrip)).opt("chars"),
	strMethod("swapcase", shape.String, Fold1(builtins.StrSwapcase)),
	strMethod("title", shape.String, Fold1(builtins.StrTitle)),
	strMethod("translate", shape.String, Fold2(builtins.StrTranslate)).args("table"),
	strMethod("upper", shape.String, Fold1(builtins.StrUpper)),
	strMethod("zfill", shape.String, Fold2(builtins.StrZfill)).args("width"),
}
