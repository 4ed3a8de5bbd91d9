package nodes

import (
	"github.com/serpent-lang/serpent/internal/builtins"
	"github.com/serpent-lang/serpent/internal/shape"
)

func bytesMethod(name string, sh shape.Tag, fold interface{}) *method {
	return newMethod("bytes", "bytes_arg", name, sh, fold)
}

var bytesMethods = []*method{
	bytesMethod("capitalize", shape.Bytes, Fold1(builtins.BytesCapitalize)),
	bytesMethod("center", shape.Bytes, Fold3(builtins.BytesCenter)).args("width").opt("fillchar"),
	bytesMethod("count", shape.Int, Fold4(builtins.BytesCount)).args("sub").opt("start", "end"),
	bytesMethod("decode", shape.StrOrUnicode, Fold3(builtins.BytesDecode)).opt("encoding", "errors").
		raising("codec lookup and decoding errors").custom(computeNeverFold),
	bytesMethod("endswith", shape.Bool, Fold4(builtins.BytesEndswith)).args("suffix").opt("start", "end"),
	bytesMethod("expandtabs", shape.Bytes, Fold2(builtins.BytesExpandtabs)).opt("tabsize"),
	bytesMethod("find", shape.Int, Fold4(builtins.BytesFind)).args("sub").opt("start", "end"),
	bytesMethod("index", shape.Int, Fold4(builtins.BytesIndex)).args("sub").opt("start", "end").
		raising("ValueError when the subsection is missing"),
	bytesMethod("isalnum", shape.Bool, Fold1(builtins.BytesIsalnum)),
	bytesMethod("isalpha", shape.Bool, Fold1(builtins.BytesIsalpha)),
	bytesMethod("isdigit", shape.Bool, Fold1(builtins.BytesIsdigit)),
	bytesMethod("islower", shape.Bool, Fold1(builtins.BytesIslower)),
	bytesMethod("isspace", shape.Bool, Fold1(builtins.BytesIsspace)),
	bytesMethod("istitle", shape.Bool, Fold1(builtins.BytesIstitle)),
	bytesMethod("isupper", shape.Bool, Fold1(builtins.BytesIsupper)),
	bytesMethod("join", shape.Bytes, Fold2(builtins.BytesJoin)).args("iterable"),
	bytesMethod("ljust", shape.Bytes, Fold3(builtins.BytesLjust)).args("width").opt("fillchar"),
	bytesMethod("lower", shape.Bytes, Fold1(builtins.BytesLower)),
	bytesMethod("lstrip", shape.Bytes, Fold2(builtins.BytesLstrip)).opt("chars"),
	bytesMethod("partition", shape.Tuple, Fold2(builtins.BytesPartition)).args("sep").length(3),
	bytesMethod("removeprefix", shape.Bytes, Fold2(builtins.BytesRemoveprefix)).args("prefix"),
	bytesMethod("removesuffix", shape.Bytes, Fold2(builtins.BytesRemovesuffix)).args("suffix"),
	bytesMethod("replace", shape.Bytes, Fold4(builtins.BytesReplace)).args("old", "new").opt("count"),
	bytesMethod("rfind", shape.Int, Fold4(builtins.BytesRfind)).args("sub").opt("start", "end"),
	bytesMethod("rindex", shape.Int, Fold4(builtins.BytesRindex)).args("sub").opt("start", "end").
		raising("ValueError when the subsection is missing"),
	bytesMethod("rjust", shape.Bytes, Fold3(builtins.BytesRjust)).args("width").opt("fillchar"),
	bytesMethod("rpartition", shape.Tuple, Fold2(builtins.BytesRpartition)).args("sep").length(3),
	bytesMethod("rsplit", shape.List, Fold3(builtins.BytesRsplit)).opt("sep", "maxsplit"),
	bytesMethod("rstrip", shape.Bytes, Fold2(builtins.BytesRstrip)).opt("chars"),
	bytesMethod("split", shape.List, Fold3(builtins.BytesSplit)).opt("sep", "maxsplit"),
	bytesMethod("splitlines", shape.List, Fold2(builtins.BytesSplitlines)).opt("keepends"),
	bytesMethod("startswith", shape.Bool, Fold4(builtins.BytesStartswith)).args("prefix").opt("start", "end"),
	bytesMethod("strip", shape.Bytes, Fold2(builtins.BytesStrip)).opt("chars"),
	bytesMethod("swapcase", shape.Bytes, Fold1(builtins.BytesSwapcase)),
	bytesMethod("title", shape.Bytes, Fold1(builtins.BytesTitle)),
	bytesMethod("upper", shape.Bytes, Fold1(builtins.BytesUpper)),
	bytesMethod("zfill", shape.Bytes, Fold2(builtins.BytesZfill)).args("width"),
}
