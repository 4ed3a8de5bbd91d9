// Package pyexc models the exception classes of the compiled language.
//
// Classes form a single-inheritance tree rooted at BaseException. Nodes use
// them to describe which exceptions an operation may raise; folding records
// the class a constant computation raised instead of crashing the compiler.
package pyexc

import (
	"errors"
	"fmt"
)

// Class is an exception class of the compiled language.
type Class struct {
	Name string
	Base *Class
}

func (c *Class) String() string {
	if c == nil {
		return "<none>"
	}
	return c.Name
}

// IsSubclassOf reports whether c is other or derives from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for k := c; k != nil; k = k.Base {
		if k == other {
			return true
		}
	}
	return false
}

// Related reports whether a raise of c could be caught by a handler for
// other, or the other way around.
func (c *Class) Related(other *Class) bool {
	return c.IsSubclassOf(other) || other.IsSubclassOf(c)
}

var (
	BaseException      = &Class{Name: "BaseException"}
	Exception          = &Class{Name: "Exception", Base: BaseException}
	TypeError          = &Class{Name: "TypeError", Base: Exception}
	ValueError         = &Class{Name: "ValueError", Base: Exception}
	LookupError        = &Class{Name: "LookupError", Base: Exception}
	IndexError         = &Class{Name: "IndexError", Base: LookupError}
	KeyError           = &Class{Name: "KeyError", Base: LookupError}
	UnicodeError       = &Class{Name: "UnicodeError", Base: ValueError}
	UnicodeEncodeError = &Class{Name: "UnicodeEncodeError", Base: UnicodeError}
	UnicodeDecodeError = &Class{Name: "UnicodeDecodeError", Base: UnicodeError}
	ArithmeticError    = &Class{Name: "ArithmeticError", Base: Exception}
	OverflowError      = &Class{Name: "OverflowError", Base: ArithmeticError}
	MemoryError        = &Class{Name: "MemoryError", Base: Exception}
)

var classes = []*Class{
	BaseException, Exception, TypeError, ValueError, LookupError, IndexError,
	KeyError, UnicodeError, UnicodeEncodeError, UnicodeDecodeError,
	ArithmeticError, OverflowError, MemoryError,
}

// Lookup returns the class with the given name.
func Lookup(name string) (*Class, bool) {
	for _, c := range classes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// All returns every known class, base classes first.
func All() []*Class {
	out := make([]*Class, len(classes))
	copy(out, classes)
	return out
}

// Error is an exception raised by a computation in the compiled language's
// semantics.
type Error struct {
	Class   *Class
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Class.Name
	}
	return e.Class.Name + ": " + e.Message
}

// Newf creates an exception of class c.
func Newf(c *Class, format string, args ...interface{}) *Error {
	return &Error{Class: c, Message: fmt.Sprintf(format, args...)}
}

// ClassOf extracts the exception class carried by err.
func ClassOf(err error) (*Class, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return nil, false
}
