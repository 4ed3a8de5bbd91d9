package nodes_test

import (
	"errors"
	"strings"
	"testing"

	cerrors "github.com/serpent-lang/serpent/internal/errors"
	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/shape"
)

func TestRegistryIsInjective(t *testing.T) {
	seen := make(map[*nodes.Spec]kinds.Kind)
	for _, kind := range nodes.Registry.Kinds() {
		spec, err := nodes.Lookup(kind)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", kind, err)
		}
		if spec.Kind != kind {
			t.Errorf("kind %s maps to descriptor %s", kind, spec.Kind)
		}
		if other, dup := seen[spec]; dup {
			t.Errorf("descriptor of %s is also registered as %s", kind, other)
		}
		seen[spec] = kind
	}
	if nodes.Registry.Len() < 150 {
		t.Errorf("catalog looks incomplete: %d kinds", nodes.Registry.Len())
	}
}

func TestRegistryRejectsRebinding(t *testing.T) {
	spec, err := nodes.Lookup("str.join")
	if err != nil {
		t.Fatal(err)
	}
	if err := nodes.Registry.Register("str.join", spec); err != nil {
		t.Errorf("re-registering the same descriptor must be a no-op: %v", err)
	}
	other := *spec
	err = nodes.Registry.Register("str.join", &other)
	if !errors.Is(err, cerrors.ErrConfiguration) {
		t.Errorf("rebinding a kind should be a configuration error, got %v", err)
	}
}

func TestKindNaming(t *testing.T) {
	present := []kinds.Kind{
		"constant", "constant.omitted", "variable.ref", "module",
		"str.join", "bytes.join", "str.split", "str.split(sep)", "str.split(sep,maxsplit)",
		"str.center(width)", "str.center(width,fillchar)",
		"str.count(sub)", "str.count(sub,start,end)",
		"str.format", "str.encode", "str.encode(encoding,errors)",
		"bytes.decode(encoding)", "dict.get(key)", "dict.get(key,default)",
		"dict.popitem", "dict.update", "builtin.len",
	}
	for _, k := range present {
		if !nodes.Registry.Has(k) {
			t.Errorf("expected kind %s to be registered", k)
		}
	}
	absent := []kinds.Kind{"str.center", "str.join(iterable)", "dict.get", "str.decode", "bytes.encode", "bytes.format"}
	for _, k := range absent {
		if nodes.Registry.Has(k) {
			t.Errorf("kind %s should not exist", k)
		}
	}
	if _, err := nodes.Lookup("str.nope"); !errors.Is(err, cerrors.ErrUnknownKind) {
		t.Errorf("unknown kinds should fail with ErrUnknownKind, got %v", err)
	}
}

func TestRegistrationOrderIsStable(t *testing.T) {
	strKinds := nodes.Registry.KindsByPrefix("str.")
	if len(strKinds) == 0 || strKinds[0] != "str.capitalize" {
		t.Fatalf("str family should start with str.capitalize, got %v", strKinds)
	}
	if strKinds[len(strKinds)-1] != "str.zfill" {
		t.Errorf("str family should end with str.zfill, got %s", strKinds[len(strKinds)-1])
	}
	for _, k := range nodes.Registry.KindsByPrefix("bytes.") {
		if k.Family() != "bytes" {
			t.Errorf("prefix iteration leaked %s", k)
		}
	}
}

func TestCatalogVersion(t *testing.T) {
	ok, err := nodes.Registry.Satisfies("^1")
	if err != nil || !ok {
		t.Errorf("catalog %s should satisfy ^1", nodes.CatalogVersion)
	}
}

// Every operation declares at most one exact shape; combining it with any
// other exact shape must be rejected.
func TestShapeTraitExclusivity(t *testing.T) {
	for _, kind := range nodes.Registry.Kinds() {
		spec, _ := nodes.Lookup(kind)
		if !spec.Shape.Valid() {
			t.Errorf("%s: invalid shape %v", kind, spec.Shape)
			continue
		}
		if !spec.Shape.IsExact() {
			continue
		}
		for _, other := range shape.All() {
			if !other.IsExact() || other == spec.Shape {
				continue
			}
			if _, err := shape.Declare(spec.Shape, other); err == nil {
				t.Errorf("%s: %v and %v should conflict", kind, spec.Shape, other)
			}
		}
	}
}

func TestMayRaisePolicies(t *testing.T) {
	for _, kind := range nodes.Registry.Kinds() {
		spec, _ := nodes.Lookup(kind)
		if spec.IsLeaf() {
			continue
		}
		if spec.Arity() > 1 && !spec.MayRaiseExceptionOperation() {
			t.Errorf("%s takes arguments but claims it never raises", kind)
		}
		if spec.MayRaise && spec.Note == "" {
			t.Errorf("%s: conservative may-raise policy without a note", kind)
		}
	}

	neverRaise := []kinds.Kind{"str.upper", "str.strip", "str.split", "bytes.lower", "dict.copy", "dict.keys"}
	for _, k := range neverRaise {
		spec, _ := nodes.Lookup(k)
		if spec.MayRaiseExceptionOperation() {
			t.Errorf("%s should not raise", k)
		}
	}
	for _, k := range []kinds.Kind{"str.encode", "bytes.decode", "str.format", "dict.popitem", "builtin.len"} {
		spec, _ := nodes.Lookup(k)
		if !spec.MayRaiseExceptionOperation() {
			t.Errorf("%s should always report may-raise", k)
		}
	}
}

func TestSignature(t *testing.T) {
	params, required, ok := nodes.Signature("str.split")
	if !ok || required != 0 || strings.Join(params, ",") != "sep,maxsplit" {
		t.Errorf("Signature(str.split) = %v, %d, %v", params, required, ok)
	}
	params, required, ok = nodes.Signature("str.replace")
	if !ok || required != 2 || strings.Join(params, ",") != "old,new,count" {
		t.Errorf("Signature(str.replace) = %v, %d, %v", params, required, ok)
	}
	if _, _, ok := nodes.Signature("list.append"); ok {
		t.Error("unknown methods have no signature")
	}
	if got := len(nodes.Variants("str.count")); got != 3 {
		t.Errorf("str.count should have 3 arity variants, got %d", got)
	}
}
