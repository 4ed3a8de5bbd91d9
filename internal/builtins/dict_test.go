package builtins

import (
	"testing"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

func TestDictMethods(t *testing.T) {
	d := dict(S("a"), I(1), S("b"), I(2))
	runFoldCases(t, []foldCase{
		{"get present", func() (starlark.Value, error) { return DictGet(d, S("a"), O) }, I(1)},
		{"get absent", func() (starlark.Value, error) { return DictGet(d, S("z"), O) }, starlark.None},
		{"get default", func() (starlark.Value, error) { return DictGet(d, S("z"), I(9)) }, I(9)},
		{"get unhashable", func() (starlark.Value, error) { return DictGet(d, list(), O) }, pyexc.TypeError},
		{"get bool key declines", func() (starlark.Value, error) { return DictGet(d, starlark.True, O) }, declined},
		{"bool keyed dict declines", func() (starlark.Value, error) {
			return DictGet(dict(starlark.True, I(1)), I(1), O)
		}, declined},
		{"pop present", func() (starlark.Value, error) { return DictPop(d, S("b"), O) }, I(2)},
		{"pop missing", func() (starlark.Value, error) { return DictPop(d, S("z"), O) }, pyexc.KeyError},
		{"pop default", func() (starlark.Value, error) { return DictPop(d, S("z"), S("d")) }, S("d")},
		{"popitem last", func() (starlark.Value, error) { return DictPopitem(d) }, starlark.Tuple{S("b"), I(2)}},
		{"popitem empty", func() (starlark.Value, error) { return DictPopitem(dict()) }, pyexc.KeyError},
		{"setdefault present", func() (starlark.Value, error) { return DictSetdefault(d, S("a"), I(5)) }, I(1)},
		{"setdefault absent", func() (starlark.Value, error) { return DictSetdefault(d, S("z"), O) }, starlark.None},
		{"copy", func() (starlark.Value, error) { return DictCopy(d) }, d},
		{"clear", func() (starlark.Value, error) { return DictClear(d) }, starlark.None},
		{"keys declines", func() (starlark.Value, error) { return DictKeys(d) }, declined},
		{"items declines", func() (starlark.Value, error) { return DictItems(d) }, declined},
		{"values declines", func() (starlark.Value, error) { return DictValues(d) }, declined},
		{"update pairs", func() (starlark.Value, error) {
			return DictUpdate(d, list(starlark.Tuple{S("c"), I(3)}))
		}, starlark.None},
		{"update dict", func() (starlark.Value, error) { return DictUpdate(d, dict(S("c"), I(3))) }, starlark.None},
		{"update bad element", func() (starlark.Value, error) { return DictUpdate(d, list(S("abc"))) }, pyexc.ValueError},
		{"update non-sequence element", func() (starlark.Value, error) { return DictUpdate(d, list(I(1))) }, pyexc.TypeError},
		{"update non-iterable", func() (starlark.Value, error) { return DictUpdate(d, I(5)) }, pyexc.TypeError},
		{"wrong receiver", func() (starlark.Value, error) { return DictCopy(list()) }, pyexc.TypeError},
	})

	if d.Len() != 2 {
		t.Errorf("folding must not mutate the receiver, len = %d", d.Len())
	}
}
