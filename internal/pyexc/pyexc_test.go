package pyexc

import (
	"errors"
	"testing"
)

func TestClassHierarchy(t *testing.T) {
	tests := []struct {
		name  string
		class *Class
		base  *Class
		want  bool
	}{
		{"KeyError is LookupError", KeyError, LookupError, true},
		{"KeyError is Exception", KeyError, Exception, true},
		{"TypeError is BaseException", TypeError, BaseException, true},
		{"ValueError is not TypeError", ValueError, TypeError, false},
		{"UnicodeDecodeError is ValueError", UnicodeDecodeError, ValueError, true},
		{"BaseException is not Exception", BaseException, Exception, false},
		{"class is its own subclass", IndexError, IndexError, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.class.IsSubclassOf(test.base); got != test.want {
				t.Errorf("%s.IsSubclassOf(%s) = %v, want %v", test.class, test.base, got, test.want)
			}
		})
	}
}

func TestRelated(t *testing.T) {
	if !BaseException.Related(KeyError) || !KeyError.Related(BaseException) {
		t.Error("BaseException and KeyError should be related in both directions")
	}
	if TypeError.Related(ValueError) {
		t.Error("TypeError and ValueError are siblings, not related")
	}
}

func TestLookup(t *testing.T) {
	for _, c := range All() {
		got, ok := Lookup(c.Name)
		if !ok || got != c {
			t.Errorf("Lookup(%q) = %v, %v", c.Name, got, ok)
		}
	}
	if _, ok := Lookup("NoSuchError"); ok {
		t.Error("Lookup of an unknown name should fail")
	}
}

func TestErrorMessage(t *testing.T) {
	var err error = Newf(TypeError, "expected %s, got %s", "str", "int")
	if err.Error() != "TypeError: expected str, got int" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var pe *Error
	if !errors.As(err, &pe) || pe.Class != TypeError {
		t.Error("errors.As should recover the class")
	}

	if (&Error{Class: KeyError}).Error() != "KeyError" {
		t.Error("message-less error should print the class name")
	}
}
