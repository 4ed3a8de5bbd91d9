// Package shape declares the statically known result shapes of expression
// nodes. Later phases use them to skip runtime type checks.
package shape

import "fmt"

// Tag is the closed set of result shapes.
type Tag int

const (
	Unknown Tag = iota
	String
	Bytes
	Bool
	Int
	List
	Tuple
	Dict
	NoneType
	StrOrUnicode
	numTags
)

func (t Tag) String() string {
	switch t {
	case Unknown:
		return "unknown"
	case String:
		return "str"
	case Bytes:
		return "bytes"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case List:
		return "list"
	case Tuple:
		return "tuple"
	case Dict:
		return "dict"
	case NoneType:
		return "NoneType"
	case StrOrUnicode:
		return "str_or_unicode"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared tags.
func (t Tag) Valid() bool {
	return t >= Unknown && t < numTags
}

// IsExact reports whether t pins down a single runtime type.
func (t Tag) IsExact() bool {
	return t != Unknown && t.Valid()
}

// All returns every tag in declaration order.
func All() []Tag {
	out := make([]Tag, 0, numTags)
	for t := Unknown; t < numTags; t++ {
		out = append(out, t)
	}
	return out
}

// Runtime selects the target language version a shape is resolved against.
type Runtime int

const (
	Python3 Runtime = iota
	Python2
)

// ParseRuntime accepts "3", "python3", "2" and "python2".
func ParseRuntime(s string) (Runtime, error) {
	switch s {
	case "3", "py3", "python3":
		return Python3, nil
	case "2", "py2", "python2":
		return Python2, nil
	}
	return Python3, fmt.Errorf("unknown target runtime %q", s)
}

func (r Runtime) String() string {
	if r == Python2 {
		return "python2"
	}
	return "python3"
}

// Resolve maps version dependent tags to the exact tag of the target.
func (t Tag) Resolve(r Runtime) Tag {
	if t == StrOrUnicode && r == Python3 {
		return String
	}
	return t
}

// Declare composes shape traits. Unknown traits are neutral; two different
// exact traits conflict.
func Declare(traits ...Tag) (Tag, error) {
	result := Unknown
	for _, t := range traits {
		if !t.Valid() {
			return Unknown, fmt.Errorf("invalid shape trait %v", t)
		}
		if t == Unknown {
			continue
		}
		if result != Unknown && result != t {
			return Unknown, fmt.Errorf("conflicting shape traits %v and %v", result, t)
		}
		result = t
	}
	return result, nil
}

// MustDeclare is Declare for static descriptor tables.
func MustDeclare(traits ...Tag) Tag {
	t, err := Declare(traits...)
	if err != nil {
		panic(err)
	}
	return t
}
