package astbridge

import (
	"fmt"
	"math/big"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/position"
	"github.com/serpent-lang/serpent/internal/shape"
)

// keywordParams are the parameters the compiled language accepts by
// keyword. All other method parameters are positional only.
var keywordParams = map[string]bool{
	"sep":      true,
	"maxsplit": true,
	"keepends": true,
	"tabsize":  true,
	"encoding": true,
	"errors":   true,
}

// families maps receiver shapes to the method family called on them.
var families = map[shape.Tag]string{
	shape.String: "str",
	shape.Bytes:  "bytes",
	shape.Dict:   "dict",
}

// familyOrder is the preference among families when the receiver shape is
// unknown and several families define the method.
var familyOrder = []string{"str", "bytes", "dict"}

// receiverFamily picks the family of a method call. Receivers of unknown
// shape take the first family defining the method.
func receiverFamily(recv nodes.Node, method string) (string, bool) {
	sh := recv.TypeShape().Resolve(shape.Python3)
	if family, ok := families[sh]; ok {
		return family, true
	}
	if sh != shape.Unknown {
		return "", false
	}
	for _, family := range familyOrder {
		if _, _, ok := nodes.Signature(family + "." + method); ok {
			return family, true
		}
	}
	return "", false
}

// ExpressionConverter converts syntax expressions to nodes.
type ExpressionConverter struct {
	spans *Converter
}

// FromSyntax converts e and its subexpressions.
func (ec *ExpressionConverter) FromSyntax(e syntax.Expr) (nodes.Node, error) {
	switch x := e.(type) {
	case *syntax.ParenExpr:
		return ec.FromSyntax(x.X)
	case *syntax.Literal:
		return ec.fromLiteral(x)
	case *syntax.Ident:
		return ec.fromIdent(x), nil
	case *syntax.UnaryExpr:
		return ec.fromUnary(x)
	case *syntax.ListExpr, *syntax.TupleExpr, *syntax.DictExpr:
		v, err := ec.display(x)
		if err != nil {
			return nil, err
		}
		return nodes.NewConstant(v, true, ec.spans.span(x)), nil
	case *syntax.CallExpr:
		return ec.fromCall(x)
	}
	return nil, ec.spans.unsupported(e, fmt.Sprintf("%T", e))
}

func (ec *ExpressionConverter) fromLiteral(lit *syntax.Literal) (nodes.Node, error) {
	v, err := literalValue(lit)
	if err != nil {
		return nil, ec.spans.unsupported(lit, err.Error())
	}
	return nodes.NewConstant(v, true, ec.spans.span(lit)), nil
}

func literalValue(lit *syntax.Literal) (starlark.Value, error) {
	switch v := lit.Value.(type) {
	case int64:
		return starlark.MakeInt64(v), nil
	case *big.Int:
		return starlark.MakeBigInt(v), nil
	case float64:
		return starlark.Float(v), nil
	case string:
		if lit.Token == syntax.BYTES {
			return starlark.Bytes(v), nil
		}
		return starlark.String(v), nil
	}
	return nil, fmt.Errorf("literal %s", lit.Raw)
}

func (ec *ExpressionConverter) fromIdent(id *syntax.Ident) nodes.Node {
	span := ec.spans.span(id)
	switch id.Name {
	case "None":
		return nodes.NewConstant(starlark.None, true, span)
	case "True":
		return nodes.NewConstant(starlark.True, true, span)
	case "False":
		return nodes.NewConstant(starlark.False, true, span)
	}
	return nodes.NewVariableRef(id.Name, span)
}

// fromUnary only handles signed numeric literals.
func (ec *ExpressionConverter) fromUnary(u *syntax.UnaryExpr) (nodes.Node, error) {
	v, err := ec.constant(u)
	if err != nil {
		return nil, err
	}
	return nodes.NewConstant(v, true, ec.spans.span(u)), nil
}

// constant evaluates an expression that must be a literal or a display of
// literals.
func (ec *ExpressionConverter) constant(e syntax.Expr) (starlark.Value, error) {
	switch x := e.(type) {
	case *syntax.ParenExpr:
		return ec.constant(x.X)
	case *syntax.Literal:
		v, err := literalValue(x)
		if err != nil {
			return nil, ec.spans.unsupported(x, err.Error())
		}
		return v, nil
	case *syntax.Ident:
		if c, ok := ec.fromIdent(x).(*nodes.Constant); ok {
			return c.Value(), nil
		}
	case *syntax.UnaryExpr:
		if x.Op != syntax.MINUS && x.Op != syntax.PLUS {
			break
		}
		v, err := ec.constant(x.X)
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case starlark.Int:
			if x.Op == syntax.MINUS {
				return starlark.MakeInt(0).Sub(n), nil
			}
			return n, nil
		case starlark.Float:
			if x.Op == syntax.MINUS {
				return -n, nil
			}
			return n, nil
		}
	case *syntax.ListExpr, *syntax.TupleExpr, *syntax.DictExpr:
		return ec.display(x)
	}
	return nil, ec.spans.unsupported(e, "non-constant value")
}

func (ec *ExpressionConverter) display(e syntax.Expr) (starlark.Value, error) {
	switch x := e.(type) {
	case *syntax.ListExpr:
		elems, err := ec.constants(x.List)
		if err != nil {
			return nil, err
		}
		return starlark.NewList(elems), nil
	case *syntax.TupleExpr:
		elems, err := ec.constants(x.List)
		if err != nil {
			return nil, err
		}
		return starlark.Tuple(elems), nil
	case *syntax.DictExpr:
		d := starlark.NewDict(len(x.List))
		for _, item := range x.List {
			entry := item.(*syntax.DictEntry)
			k, err := ec.constant(entry.Key)
			if err != nil {
				return nil, err
			}
			v, err := ec.constant(entry.Value)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(k, v); err != nil {
				return nil, ec.spans.unsupported(entry, err.Error())
			}
		}
		return d, nil
	}
	return nil, ec.spans.unsupported(e, "display")
}

func (ec *ExpressionConverter) constants(list []syntax.Expr) ([]starlark.Value, error) {
	out := make([]starlark.Value, len(list))
	for i, e := range list {
		v, err := ec.constant(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// callArgs splits call arguments into positional and keyword ones.
func (ec *ExpressionConverter) callArgs(call *syntax.CallExpr) ([]syntax.Expr, []*syntax.BinaryExpr, error) {
	var positional []syntax.Expr
	var keywords []*syntax.BinaryExpr
	for _, a := range call.Args {
		switch x := a.(type) {
		case *syntax.BinaryExpr:
			if x.Op == syntax.EQ {
				keywords = append(keywords, x)
				continue
			}
		case *syntax.UnaryExpr:
			if x.Op == syntax.STAR || x.Op == syntax.STARSTAR {
				return nil, nil, ec.spans.unsupported(a, "argument unpacking")
			}
		}
		positional = append(positional, a)
	}
	return positional, keywords, nil
}

func (ec *ExpressionConverter) fromCall(call *syntax.CallExpr) (nodes.Node, error) {
	positional, keywords, err := ec.callArgs(call)
	if err != nil {
		return nil, err
	}
	span := ec.spans.span(call)

	switch fn := call.Fn.(type) {
	case *syntax.Ident:
		if fn.Name != "len" || len(positional) != 1 || len(keywords) != 0 {
			return nil, ec.spans.unsupported(call, "call of "+fn.Name)
		}
		arg, err := ec.FromSyntax(positional[0])
		if err != nil {
			return nil, err
		}
		return node(nodes.MakeLen(span, arg))
	case *syntax.DotExpr:
		recv, err := ec.FromSyntax(fn.X)
		if err != nil {
			return nil, err
		}
		family, ok := receiverFamily(recv, fn.Name.Name)
		if !ok {
			return nil, ec.spans.unsupported(call, fmt.Sprintf("method %s on a %s receiver", fn.Name.Name, recv.TypeShape()))
		}
		name := family + "." + fn.Name.Name
		if name == "str.format" {
			return ec.fromFormat(call, span, recv, positional, keywords)
		}
		return ec.fromMethod(call, span, name, recv, positional, keywords)
	}
	return nil, ec.spans.unsupported(call, "call")
}

func (ec *ExpressionConverter) fromMethod(call *syntax.CallExpr, span position.Span, name string, recv nodes.Node, positional []syntax.Expr, keywords []*syntax.BinaryExpr) (nodes.Node, error) {
	params, _, ok := nodes.Signature(name)
	if !ok {
		return nil, ec.spans.unsupported(call, "method "+name)
	}
	if len(positional) > len(params) {
		return nil, ec.spans.unsupported(call, fmt.Sprintf("%s takes at most %d arguments", name, len(params)))
	}
	args := make([]nodes.Node, len(params))
	for i, e := range positional {
		n, err := ec.FromSyntax(e)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	for _, kw := range keywords {
		key := kw.X.(*syntax.Ident).Name
		i := indexOf(params, key)
		if i < 0 || !keywordParams[key] {
			return nil, ec.spans.unsupported(kw, fmt.Sprintf("keyword argument %s for %s", key, name))
		}
		if args[i] != nil {
			return nil, ec.spans.unsupported(kw, "argument "+key+" given twice")
		}
		n, err := ec.FromSyntax(kw.Y)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	return node(nodes.MakeOperation(name, span, append([]nodes.Node{recv}, args...)...))
}

// fromFormat packs constant arguments into the positional tuple and the
// keyword dict str.format folds over. There is no node building a tuple
// from computed values, so every argument must be a constant.
func (ec *ExpressionConverter) fromFormat(call *syntax.CallExpr, span position.Span, recv nodes.Node, positional []syntax.Expr, keywords []*syntax.BinaryExpr) (nodes.Node, error) {
	args, err := ec.constants(positional)
	if err != nil {
		return nil, err
	}
	pairs := starlark.NewDict(len(keywords))
	for _, kw := range keywords {
		v, err := ec.constant(kw.Y)
		if err != nil {
			return nil, err
		}
		key := starlark.String(kw.X.(*syntax.Ident).Name)
		if _, found, _ := pairs.Get(key); found {
			return nil, ec.spans.unsupported(kw, "argument "+string(key)+" given twice")
		}
		_ = pairs.SetKey(key, v)
	}
	return node(nodes.MakeOperation("str.format", span, recv,
		nodes.NewConstant(starlark.Tuple(args), true, span),
		nodes.NewConstant(pairs, true, span)))
}

// node keeps a failed factory call from becoming a typed nil Node.
func node(op *nodes.Operation, err error) (nodes.Node, error) {
	if err != nil {
		return nil, err
	}
	return op, nil
}

func indexOf(list []string, s string) int {
	for i, x := range list {
		if x == s {
			return i
		}
	}
	return -1
}
