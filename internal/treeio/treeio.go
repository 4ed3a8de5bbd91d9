// Package treeio reads and writes node trees as JSON.
//
// Every node is an object with its kind; operations list their children in
// role order and name each child's role. Decoding resolves kinds through
// the node registry, so a tree written by a newer catalog fails to load
// with an unknown-kind error instead of loading incorrectly.
package treeio

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"go.starlark.net/starlark"

	cerrors "github.com/serpent-lang/serpent/internal/errors"
	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/position"
)

// Node is the serialized form of a node.
type Node struct {
	Kind         string  `json:"kind"`
	Role         string  `json:"role,omitempty"`
	Span         *Span   `json:"span,omitempty"`
	Name         string  `json:"name,omitempty"`
	Value        *Value  `json:"value,omitempty"`
	UserProvided bool    `json:"user_provided,omitempty"`
	Children     []*Node `json:"children,omitempty"`
}

// Span is a compact position.Span.
type Span struct {
	File      string `json:"file,omitempty"`
	Line      int    `json:"line"`
	Column    int    `json:"col"`
	Offset    int    `json:"offset"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_col"`
	EndOffset int    `json:"end_offset"`
}

// Value is a constant. Exactly one field is set.
type Value struct {
	Str   *string     `json:"str,omitempty"`
	Bytes *string     `json:"bytes,omitempty"`
	Int   *string     `json:"int,omitempty"`
	Float *float64    `json:"float,omitempty"`
	Bool  *bool       `json:"bool,omitempty"`
	None  bool        `json:"none,omitempty"`
	List  []*Value    `json:"list,omitempty"`
	Tuple []*Value    `json:"tuple,omitempty"`
	Dict  [][2]*Value `json:"dict,omitempty"`
	// empty containers need a marker since omitempty drops them
	Empty string `json:"empty,omitempty"`
}

// Encode converts a tree.
func Encode(n nodes.Node) (*Node, error) {
	out := &Node{Kind: string(n.Kind()), Span: encodeSpan(n.SourceRef())}
	switch x := n.(type) {
	case *nodes.Constant:
		if x.IsOmitted() {
			return out, nil
		}
		v, err := EncodeValue(x.Value())
		if err != nil {
			return nil, err
		}
		out.Value, out.UserProvided = v, x.UserProvided()
		return out, nil
	case *nodes.VariableRef:
		out.Name = x.Name()
		return out, nil
	case *nodes.Module:
		out.Name = x.Name()
	}
	var roles nodes.Roles
	if op, ok := n.(*nodes.Operation); ok {
		roles = op.Spec().Roles
	}
	for i, c := range n.ChildNodes() {
		child, err := Encode(c)
		if err != nil {
			return nil, err
		}
		if i < roles.Len() {
			child.Role = roles.Name(i)
		}
		out.Children = append(out.Children, child)
	}
	return out, nil
}

func encodeSpan(s position.Span) *Span {
	if !s.IsValid() {
		return nil
	}
	return &Span{
		File: s.Start.Filename, Line: s.Start.Line, Column: s.Start.Column, Offset: s.Start.Offset,
		EndLine: s.End.Line, EndColumn: s.End.Column, EndOffset: s.End.Offset,
	}
}

func (s *Span) span() position.Span {
	if s == nil {
		return position.Span{}
	}
	return position.Span{
		Start: position.Position{Filename: s.File, Line: s.Line, Column: s.Column, Offset: s.Offset},
		End:   position.Position{Filename: s.File, Line: s.EndLine, Column: s.EndColumn, Offset: s.EndOffset},
	}
}

// EncodeValue converts a constant value.
func EncodeValue(v starlark.Value) (*Value, error) {
	switch x := v.(type) {
	case starlark.String:
		s := string(x)
		return &Value{Str: &s}, nil
	case starlark.Bytes:
		s := base64.StdEncoding.EncodeToString([]byte(x))
		return &Value{Bytes: &s}, nil
	case starlark.Int:
		s := x.String()
		return &Value{Int: &s}, nil
	case starlark.Float:
		f := float64(x)
		return &Value{Float: &f}, nil
	case starlark.Bool:
		b := bool(x)
		return &Value{Bool: &b}, nil
	case starlark.NoneType:
		return &Value{None: true}, nil
	case *starlark.List:
		elems, err := encodeValues(listElems(x))
		if err != nil || len(elems) > 0 {
			return &Value{List: elems}, err
		}
		return &Value{Empty: "list"}, nil
	case starlark.Tuple:
		elems, err := encodeValues(x)
		if err != nil || len(elems) > 0 {
			return &Value{Tuple: elems}, err
		}
		return &Value{Empty: "tuple"}, nil
	case *starlark.Dict:
		if x.Len() == 0 {
			return &Value{Empty: "dict"}, nil
		}
		out := &Value{}
		for _, item := range x.Items() {
			k, err := EncodeValue(item[0])
			if err != nil {
				return nil, err
			}
			val, err := EncodeValue(item[1])
			if err != nil {
				return nil, err
			}
			out.Dict = append(out.Dict, [2]*Value{k, val})
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot encode constant of type %s", v.Type())
}

func listElems(l *starlark.List) []starlark.Value {
	out := make([]starlark.Value, l.Len())
	for i := range out {
		out[i] = l.Index(i)
	}
	return out
}

func encodeValues(vs []starlark.Value) ([]*Value, error) {
	var out []*Value
	for _, v := range vs {
		e, err := EncodeValue(v)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// DecodeValue is the inverse of EncodeValue.
func DecodeValue(v *Value) (starlark.Value, error) {
	switch {
	case v == nil:
		return nil, fmt.Errorf("missing value")
	case v.Str != nil:
		return starlark.String(*v.Str), nil
	case v.Bytes != nil:
		b, err := base64.StdEncoding.DecodeString(*v.Bytes)
		if err != nil {
			return nil, fmt.Errorf("bytes constant: %w", err)
		}
		return starlark.Bytes(b), nil
	case v.Int != nil:
		i, ok := new(big.Int).SetString(*v.Int, 10)
		if !ok {
			return nil, fmt.Errorf("bad int constant %q", *v.Int)
		}
		return starlark.MakeBigInt(i), nil
	case v.Float != nil:
		return starlark.Float(*v.Float), nil
	case v.Bool != nil:
		return starlark.Bool(*v.Bool), nil
	case v.None:
		return starlark.None, nil
	case v.List != nil || v.Empty == "list":
		elems, err := decodeValues(v.List)
		if err != nil {
			return nil, err
		}
		return starlark.NewList(elems), nil
	case v.Tuple != nil || v.Empty == "tuple":
		elems, err := decodeValues(v.Tuple)
		if err != nil {
			return nil, err
		}
		return starlark.Tuple(elems), nil
	case v.Dict != nil || v.Empty == "dict":
		d := starlark.NewDict(len(v.Dict))
		for _, kv := range v.Dict {
			k, err := DecodeValue(kv[0])
			if err != nil {
				return nil, err
			}
			val, err := DecodeValue(kv[1])
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(k, val); err != nil {
				return nil, fmt.Errorf("dict constant: %w", err)
			}
		}
		return d, nil
	}
	return nil, fmt.Errorf("empty value")
}

func decodeValues(vs []*Value) ([]starlark.Value, error) {
	out := make([]starlark.Value, len(vs))
	for i, v := range vs {
		d, err := DecodeValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Decode rebuilds a tree. Operation kinds are resolved in the registry
// and their children checked against the roles.
func Decode(in *Node) (nodes.Node, error) {
	span := in.Span.span()
	spec, err := nodes.Lookup(kinds.Kind(in.Kind))
	if err != nil {
		return nil, err
	}
	switch spec.Kind {
	case nodes.KindOmitted:
		return nodes.NewOmitted(span), nil
	case nodes.KindConstant:
		v, err := DecodeValue(in.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Kind, err)
		}
		return nodes.NewConstant(v, in.UserProvided, span), nil
	case nodes.KindVariableRef:
		return nodes.NewVariableRef(in.Name, span), nil
	case nodes.KindModule:
		m := nodes.NewModule(in.Name, span)
		for _, c := range in.Children {
			n, err := Decode(c)
			if err != nil {
				return nil, err
			}
			if err := m.Append(n); err != nil {
				return nil, err
			}
		}
		return m, nil
	}

	if len(in.Children) != spec.Arity() {
		return nil, cerrors.MissingChild(in.Kind, "", fmt.Sprintf("%d children for roles %s", len(in.Children), spec.Roles))
	}
	children := make([]nodes.Node, len(in.Children))
	for i, c := range in.Children {
		if c.Role != "" && c.Role != spec.Roles.Name(i) {
			return nil, cerrors.InvalidChild(in.Kind, c.Role, fmt.Sprintf("expected role %s at position %d", spec.Roles.Name(i), i))
		}
		n, err := Decode(c)
		if err != nil {
			return nil, err
		}
		children[i] = n
	}
	op, err := nodes.NewOperation(spec, span, children...)
	if err != nil {
		return nil, err
	}
	return op, nil
}

// Write encodes n as indented JSON.
func Write(w io.Writer, n nodes.Node) error {
	enc, err := Encode(n)
	if err != nil {
		return err
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(enc)
}

// Read decodes one JSON tree.
func Read(r io.Reader) (nodes.Node, error) {
	var in Node
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}
	return Decode(&in)
}

// ReadModule decodes a tree that must be a module.
func ReadModule(r io.Reader) (*nodes.Module, error) {
	n, err := Read(r)
	if err != nil {
		return nil, err
	}
	m, ok := n.(*nodes.Module)
	if !ok {
		return nil, fmt.Errorf("tree root is %s, not a module", n.Kind())
	}
	return m, nil
}
