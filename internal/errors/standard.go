// Package errors provides standardized error values for compiler-internal defects.
//
// These errors signal misuse of the node substrate by the compiler itself
// (duplicate kind registration, malformed trees). Exceptions of the compiled
// language live in package pyexc and never use this type.
package errors

import (
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "CONFIGURATION"
	CategoryLookup        ErrorCategory = "LOOKUP"
	CategoryTree          ErrorCategory = "TREE"
)

// Error codes.
const (
	CodeDuplicateKind = "DUPLICATE_KIND"
	CodeMissingChild  = "MISSING_CHILD"
	CodeUnknownKind   = "UNKNOWN_KIND"
	CodeInvalidChild  = "INVALID_CHILD"
	CodeChildNotFound = "CHILD_NOT_FOUND"
	CodeBadDescriptor = "BAD_DESCRIPTOR"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// Is matches sentinels by category, and by code when the target carries one.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	if t.Category != e.Category {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrConfiguration = &StandardError{Category: CategoryConfiguration}
	ErrUnknownKind   = &StandardError{Category: CategoryLookup, Code: CodeUnknownKind}
	ErrInvalidChild  = &StandardError{Category: CategoryTree, Code: CodeInvalidChild}
	ErrChildNotFound = &StandardError{Category: CategoryTree, Code: CodeChildNotFound}
)

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Common error constructors

func DuplicateKind(kind string, existing, replacement interface{}) *StandardError {
	return NewStandardError(CategoryConfiguration, CodeDuplicateKind,
		fmt.Sprintf("kind %q is already registered to %v, cannot register %v", kind, existing, replacement),
		map[string]interface{}{"kind": kind})
}

func MissingChild(kind, role, reason string) *StandardError {
	return NewStandardError(CategoryConfiguration, CodeMissingChild,
		fmt.Sprintf("%s: child %q: %s", kind, role, reason),
		map[string]interface{}{"kind": kind, "role": role})
}

func UnknownKind(kind string) *StandardError {
	return NewStandardError(CategoryLookup, CodeUnknownKind,
		fmt.Sprintf("unknown node kind %q", kind),
		map[string]interface{}{"kind": kind})
}

func InvalidChild(kind, role, reason string) *StandardError {
	return NewStandardError(CategoryTree, CodeInvalidChild,
		fmt.Sprintf("%s: invalid child for %q: %s", kind, role, reason),
		map[string]interface{}{"kind": kind, "role": role})
}

func ChildNotFound(kind string, child interface{}) *StandardError {
	return NewStandardError(CategoryTree, CodeChildNotFound,
		fmt.Sprintf("%s: %v is not a child", kind, child),
		map[string]interface{}{"kind": kind})
}

func BadDescriptor(kind, reason string) *StandardError {
	return NewStandardError(CategoryConfiguration, CodeBadDescriptor,
		fmt.Sprintf("descriptor %q: %s", kind, reason),
		map[string]interface{}{"kind": kind})
}
