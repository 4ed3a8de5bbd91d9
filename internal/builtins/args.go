package builtins

import (
	"math"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

// asSize converts an index-like argument (int or bool) that must fit a
// host integer, as Python does for widths and counts.
func asSize(v starlark.Value) (int, error) {
	switch x := v.(type) {
	case starlark.Bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case starlark.Int:
		i, ok := x.Int64()
		if !ok || i > math.MaxInt || i < math.MinInt {
			return 0, pyexc.Newf(pyexc.OverflowError, "Python int too large to convert to C ssize_t")
		}
		return int(i), nil
	}
	return 0, typeError("'%s' object cannot be interpreted as an integer", TypeName(v))
}

// asOptionalSize is asSize with a default for an omitted argument.
func asOptionalSize(v starlark.Value, def int) (int, error) {
	if IsOmitted(v) {
		return def, nil
	}
	return asSize(v)
}

// asCInt converts an argument Python hands to a C int parameter, such as
// tabsize or keepends.
func asCInt(v starlark.Value) (int, error) {
	switch x := v.(type) {
	case starlark.Bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case starlark.Int:
		i, ok := x.Int64()
		if !ok || i > math.MaxInt32 || i < math.MinInt32 {
			return 0, pyexc.Newf(pyexc.OverflowError, "Python int too large to convert to C int")
		}
		return int(i), nil
	}
	return 0, typeError("'%s' object cannot be interpreted as an integer", TypeName(v))
}

func asOptionalCInt(v starlark.Value, def int) (int, error) {
	if IsOmitted(v) {
		return def, nil
	}
	return asCInt(v)
}

// asSliceIndex converts a slice bound. None and omitted select def; huge
// values are clipped instead of overflowing.
func asSliceIndex(v starlark.Value, def int) (int, error) {
	if isNoneOrOmitted(v) {
		return def, nil
	}
	switch x := v.(type) {
	case starlark.Bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case starlark.Int:
		i, ok := x.Int64()
		if !ok {
			if x.Sign() < 0 {
				return math.MinInt, nil
			}
			return math.MaxInt, nil
		}
		if i > math.MaxInt {
			return math.MaxInt, nil
		}
		if i < math.MinInt {
			return math.MinInt, nil
		}
		return int(i), nil
	}
	return 0, typeError("slice indices must be integers or None or have an __index__ method")
}

// adjustIndices clamps start/end against a sequence of length n the way
// sequence search methods do.
func adjustIndices(start, end, n int) (int, int) {
	if end > n {
		end = n
	} else if end < 0 {
		end += n
		if end < 0 {
			end = 0
		}
	}
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// sliceBounds resolves optional start/end arguments for a sequence of
// length n.
func sliceBounds(start, end starlark.Value, n int) (int, int, error) {
	s, err := asSliceIndex(start, 0)
	if err != nil {
		return 0, 0, err
	}
	e, err := asSliceIndex(end, n)
	if err != nil {
		return 0, 0, err
	}
	s, e = adjustIndices(s, e, n)
	return s, e, nil
}

// truthArg accepts the int-like flags Python allows for keepends.
func truthArg(v starlark.Value, def bool) (bool, error) {
	if IsOmitted(v) {
		return def, nil
	}
	switch v.(type) {
	case starlark.Bool, starlark.Int:
		i, err := asCInt(v)
		return i != 0, err
	}
	return false, notFoldable("keepends of type %s", TypeName(v))
}
