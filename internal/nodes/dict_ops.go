package nodes

import (
	"github.com/serpent-lang/serpent/internal/builtins"
	"github.com/serpent-lang/serpent/internal/shape"
)

func dictMethod(name string, sh shape.Tag, fold interface{}) *method {
	return newMethod("dict", "dict_arg", name, sh, fold)
}

// keys, items and values return views; the folds always decline.
var dictMethods = []*method{
	dictMethod("clear", shape.NoneType, Fold1(builtins.DictClear)),
	dictMethod("copy", shape.Dict, Fold1(builtins.DictCopy)),
	dictMethod("get", shape.Unknown, Fold3(builtins.DictGet)).args("key").opt("default"),
	dictMethod("items", shape.Unknown, Fold1(builtins.DictItems)),
	dictMethod("keys", shape.Unknown, Fold1(builtins.DictKeys)),
	dictMethod("values", shape.Unknown, Fold1(builtins.DictValues)),
	dictMethod("pop", shape.Unknown, Fold3(builtins.DictPop)).args("key").opt("default").
		raising("KeyError for a missing key without default"),
	dictMethod("popitem", shape.Tuple, Fold1(builtins.DictPopitem)).length(2).
		raising("KeyError on an empty dict"),
	dictMethod("setdefault", shape.Unknown, Fold3(builtins.DictSetdefault)).args("key").opt("default"),
	dictMethod("update", shape.NoneType, Fold2(builtins.DictUpdate)).args("iterable"),
}
