package builtins

import "go.starlark.net/starlark"

// Len is the len() built-in. str length counts code points.
func Len(v starlark.Value) (starlark.Value, error) {
	n, ok := Length(v)
	if !ok {
		return nil, typeError("object of type '%s' has no len()", TypeName(v))
	}
	return starlark.MakeInt(n), nil
}

// Length reports the element count of a sized constant.
func Length(v starlark.Value) (int, bool) {
	switch x := v.(type) {
	case starlark.String:
		return runeLen(string(x)), true
	case starlark.Bytes:
		return len(x), true
	case starlark.Tuple:
		return len(x), true
	case *starlark.List:
		return x.Len(), true
	case *starlark.Dict:
		return x.Len(), true
	}
	return 0, false
}
