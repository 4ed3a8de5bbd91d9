package builtins

import (
	"testing"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

// declined marks an expectation that the fold is refused.
type declinedT struct{}

var declined = declinedT{}

var O = Omitted

type S = starlark.String
type B = starlark.Bytes

func I(i int) starlark.Value { return starlark.MakeInt(i) }

func list(vs ...starlark.Value) *starlark.List { return starlark.NewList(vs) }

func dict(kv ...starlark.Value) *starlark.Dict {
	d := starlark.NewDict(len(kv) / 2)
	for i := 0; i+1 < len(kv); i += 2 {
		if err := d.SetKey(kv[i], kv[i+1]); err != nil {
			panic(err)
		}
	}
	return d
}

type foldCase struct {
	name string
	call func() (starlark.Value, error)
	// want is a starlark.Value, a *pyexc.Class or declined.
	want interface{}
}

func runFoldCases(t *testing.T, tests []foldCase) {
	t.Helper()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.call()
			switch want := test.want.(type) {
			case declinedT:
				if !IsNotFoldable(err) {
					t.Errorf("expected the fold to be declined, got %v, %v", got, err)
				}
			case *pyexc.Class:
				c, ok := pyexc.ClassOf(err)
				if !ok || c != want {
					t.Errorf("expected %s, got %v, %v", want, got, err)
				}
			case starlark.Value:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				eq, cmpErr := starlark.Equal(got, want)
				if cmpErr != nil || !eq {
					t.Errorf("got %s, want %s", got, want)
				}
			default:
				t.Fatalf("bad expectation %T", test.want)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		v    starlark.Value
		want string
	}{
		{S("a"), "str"},
		{B("a"), "bytes"},
		{I(1), "int"},
		{starlark.True, "bool"},
		{starlark.None, "NoneType"},
		{list(), "list"},
		{starlark.Tuple{}, "tuple"},
		{dict(), "dict"},
		{O, "omitted"},
	}
	for _, test := range tests {
		if got := TypeName(test.v); got != test.want {
			t.Errorf("TypeName(%s) = %q, want %q", test.v, got, test.want)
		}
	}
}

func TestOmittedIsNotNone(t *testing.T) {
	if !IsOmitted(O) || IsOmitted(starlark.None) {
		t.Fatal("Omitted and None must be distinguishable")
	}
	if !isNoneOrOmitted(O) || !isNoneOrOmitted(starlark.None) {
		t.Error("both spellings of the default should be accepted where None is")
	}
}

func TestAdjustIndices(t *testing.T) {
	tests := []struct {
		start, end, n int
		ws, we        int
	}{
		{0, 10, 5, 0, 5},
		{-2, 5, 5, 3, 5},
		{-10, -10, 5, 0, 0},
		{1, -1, 5, 1, 4},
	}
	for _, test := range tests {
		s, e := adjustIndices(test.start, test.end, test.n)
		if s != test.ws || e != test.we {
			t.Errorf("adjustIndices(%d, %d, %d) = %d, %d; want %d, %d",
				test.start, test.end, test.n, s, e, test.ws, test.we)
		}
	}
}

func TestLen(t *testing.T) {
	runFoldCases(t, []foldCase{
		{"str counts code points", func() (starlark.Value, error) { return Len(S("héllo")) }, I(5)},
		{"bytes", func() (starlark.Value, error) { return Len(B("héllo")) }, I(6)},
		{"tuple", func() (starlark.Value, error) { return Len(starlark.Tuple{I(1), I(2)}) }, I(2)},
		{"dict", func() (starlark.Value, error) { return Len(dict(S("a"), I(1))) }, I(1)},
		{"int has no len", func() (starlark.Value, error) { return Len(I(3)) }, pyexc.TypeError},
	})
}

func TestResultLimit(t *testing.T) {
	_, err := StrCenter(S("x"), I(hardResultLimit+1), O)
	if !IsNotFoldable(err) {
		t.Errorf("huge widths should decline, got %v", err)
	}
	_, err = StrLjust(S("x"), starlark.MakeInt64(1<<62), O)
	if !IsNotFoldable(err) {
		t.Errorf("huge widths should decline, got %v", err)
	}
}
