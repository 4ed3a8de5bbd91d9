package builtins

import (
	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

// Dict folds always work on a copy; the receiver constant stays untouched.

// unstableKey reports keys whose equality differs between Python and
// Starlark: bools (True == 1 in Python) and floats (1.0 == 1).
func unstableKey(v starlark.Value) bool {
	switch x := v.(type) {
	case starlark.Bool, starlark.Float:
		return true
	case starlark.Tuple:
		for _, e := range x {
			if unstableKey(e) {
				return true
			}
		}
	}
	return false
}

func checkDict(method string, recv starlark.Value) (*starlark.Dict, error) {
	d, err := dictRecv(method, recv)
	if err != nil {
		return nil, err
	}
	for _, k := range d.Keys() {
		if unstableKey(k) {
			return nil, notFoldable("dict.%s on a dict with bool or float keys", method)
		}
	}
	return d, nil
}

func checkKey(k starlark.Value) error {
	if unstableKey(k) {
		return notFoldable("bool or float key")
	}
	if _, err := k.Hash(); err != nil {
		return typeError("unhashable type: '%s'", TypeName(k))
	}
	return nil
}

func copyDict(d *starlark.Dict) *starlark.Dict {
	out := starlark.NewDict(d.Len())
	for _, item := range d.Items() {
		_ = out.SetKey(item[0], item[1])
	}
	return out
}

func keyError(k starlark.Value) error {
	return pyexc.Newf(pyexc.KeyError, "%s", k.String())
}

func DictClear(recv starlark.Value) (starlark.Value, error) {
	if _, err := dictRecv("clear", recv); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func DictCopy(recv starlark.Value) (starlark.Value, error) {
	d, err := checkDict("copy", recv)
	if err != nil {
		return nil, err
	}
	return copyDict(d), nil
}

func DictGet(recv, key, def starlark.Value) (starlark.Value, error) {
	d, err := checkDict("get", recv)
	if err != nil {
		return nil, err
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	v, found, err := d.Get(key)
	if err != nil {
		return nil, notFoldable("dict lookup: %v", err)
	}
	if found {
		return v, nil
	}
	if IsOmitted(def) {
		return starlark.None, nil
	}
	return def, nil
}

// Views are live objects with no constant representation.
func dictView(method string, recv starlark.Value) (starlark.Value, error) {
	if _, err := dictRecv(method, recv); err != nil {
		return nil, err
	}
	return nil, notFoldable("dict.%s returns a view", method)
}

func DictKeys(recv starlark.Value) (starlark.Value, error)   { return dictView("keys", recv) }
func DictItems(recv starlark.Value) (starlark.Value, error)  { return dictView("items", recv) }
func DictValues(recv starlark.Value) (starlark.Value, error) { return dictView("values", recv) }

func DictPop(recv, key, def starlark.Value) (starlark.Value, error) {
	d, err := checkDict("pop", recv)
	if err != nil {
		return nil, err
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	v, found, err := d.Get(key)
	if err != nil {
		return nil, notFoldable("dict lookup: %v", err)
	}
	if found {
		return v, nil
	}
	if IsOmitted(def) {
		return nil, keyError(key)
	}
	return def, nil
}

// DictPopitem returns the most recently inserted pair.
func DictPopitem(recv starlark.Value) (starlark.Value, error) {
	d, err := checkDict("popitem", recv)
	if err != nil {
		return nil, err
	}
	items := d.Items()
	if len(items) == 0 {
		return nil, pyexc.Newf(pyexc.KeyError, "popitem(): dictionary is empty")
	}
	return items[len(items)-1], nil
}

func DictSetdefault(recv, key, def starlark.Value) (starlark.Value, error) {
	d, err := checkDict("setdefault", recv)
	if err != nil {
		return nil, err
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	v, found, err := d.Get(key)
	if err != nil {
		return nil, notFoldable("dict lookup: %v", err)
	}
	if found {
		return v, nil
	}
	if IsOmitted(def) {
		return starlark.None, nil
	}
	return def, nil
}

// DictUpdate validates the argument the way dict.update would and yields
// the None the call evaluates to.
func DictUpdate(recv, other starlark.Value) (starlark.Value, error) {
	d, err := checkDict("update", recv)
	if err != nil {
		return nil, err
	}
	target := copyDict(d)
	if src, ok := other.(*starlark.Dict); ok {
		for _, item := range src.Items() {
			if err := checkKey(item[0]); err != nil {
				return nil, err
			}
			_ = target.SetKey(item[0], item[1])
		}
		return starlark.None, nil
	}
	elems, ok := iterate(other)
	if !ok {
		return nil, typeError("'%s' object is not iterable", TypeName(other))
	}
	for i, e := range elems {
		pair, ok := iterate(e)
		if !ok {
			return nil, typeError("cannot convert dictionary update sequence element #%d to a sequence", i)
		}
		if len(pair) != 2 {
			return nil, valueError("dictionary update sequence element #%d has length %d; 2 is required", i, len(pair))
		}
		if err := checkKey(pair[0]); err != nil {
			return nil, err
		}
		_ = target.SetKey(pair[0], pair[1])
	}
	return starlark.None, nil
}
