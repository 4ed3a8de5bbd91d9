package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   []error
		not  []error
	}{
		{"duplicate", DuplicateKind("str.join", 1, 2), []error{ErrConfiguration}, []error{ErrUnknownKind, ErrInvalidChild}},
		{"missing child", MissingChild("str.split(sep)", "sep", "no child given"), []error{ErrConfiguration}, []error{ErrInvalidChild}},
		{"bad descriptor", BadDescriptor("x", "bad"), []error{ErrConfiguration}, []error{ErrChildNotFound}},
		{"unknown kind", UnknownKind("str.nope"), []error{ErrUnknownKind}, []error{ErrConfiguration}},
		{"invalid child", InvalidChild("str.upper", "str_arg", "nil child"), []error{ErrInvalidChild}, []error{ErrChildNotFound}},
		{"not found", ChildNotFound("module", "x"), []error{ErrChildNotFound}, []error{ErrInvalidChild}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("while building: %w", tt.err)
			for _, target := range tt.is {
				if !stderrors.Is(wrapped, target) {
					t.Errorf("%v should match %v", tt.err, target)
				}
			}
			for _, target := range tt.not {
				if stderrors.Is(wrapped, target) {
					t.Errorf("%v should not match %v", tt.err, target)
				}
			}
		})
	}
}

func TestErrorFormat(t *testing.T) {
	err := MissingChild("str.split(sep)", "sep", "no child given")
	msg := err.Error()
	for _, want := range []string{"[CONFIGURATION:MISSING_CHILD]", `child "sep"`, "caller:"} {
		if !strings.Contains(msg, want) {
			t.Errorf("%q does not contain %q", msg, want)
		}
	}
	if err.Context["role"] != "sep" {
		t.Errorf("context = %v", err.Context)
	}
	if err.Caller == "unknown" || err.Caller == "" {
		t.Errorf("caller not recorded: %q", err.Caller)
	}
}
