package nodes

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	cerrors "github.com/serpent-lang/serpent/internal/errors"
	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/shape"
)

// CatalogVersion is bumped whenever kinds are added or removed.
var CatalogVersion = semver.MustParse("1.0.0")

// Registry maps every kind to its descriptor.
var Registry = kinds.NewRegistry[*Spec](CatalogVersion)

// argsNote explains a MayRaise that is true only because argument shapes
// are not checked.
const argsNote = "only if arguments have wrong shapes"

// method describes a source-level method. Each arity variant becomes its
// own Spec.
type method struct {
	family   string
	name     string
	receiver string
	required []string
	optional []string
	shape    shape.Tag
	raises   bool
	note     string
	fold     interface{}
	iterLen  int
	compute  ComputeFunc
}

func newMethod(family, receiver, name string, sh shape.Tag, fold interface{}) *method {
	return &method{family: family, receiver: receiver, name: name, shape: sh, fold: fold}
}

func (m *method) args(names ...string) *method { m.required = names; return m }
func (m *method) opt(names ...string) *method  { m.optional = names; return m }
func (m *method) length(n int) *method         { m.iterLen = n; return m }

// raising marks the operation as raising even without arguments.
func (m *method) raising(note string) *method {
	m.raises, m.note = true, note
	return m
}

func (m *method) custom(c ComputeFunc) *method { m.compute = c; return m }

func (m *method) qualified() string { return m.family + "." + m.name }

// params lists every role after the receiver in source order.
func (m *method) params() []string {
	return append(append([]string(nil), m.required...), m.optional...)
}

func (m *method) specs() []*Spec {
	var out []*Spec
	suffixed := len(m.optional) > 0
	for k := 0; k <= len(m.optional); k++ {
		extras := append(append([]string(nil), m.required...), m.optional[:k]...)
		kind := m.qualified()
		if suffixed && len(extras) > 0 {
			kind += "(" + strings.Join(extras, ",") + ")"
		}
		s := &Spec{
			Kind:     kinds.Kind(kind),
			Roles:    NewRoles(append([]string{m.receiver}, extras...)...),
			Shape:    shape.MustDeclare(m.shape),
			MayRaise: m.raises,
			Note:     m.note,
			Fold:     narrow(m.fold, 1+len(extras)),
			IterLen:  m.iterLen,
			Compute:  m.compute,
		}
		if len(extras) > 0 && !m.raises {
			s.MayRaise, s.Note = true, argsNote
		}
		out = append(out, s)
	}
	return out
}

var (
	// variants holds the arity variants of a method, shortest first.
	variants = map[string][]*Spec{}
	methods  = map[string]*method{}
)

var leafSpecs = []*Spec{
	{Kind: KindConstant, Shape: shape.Unknown, leaf: true},
	{Kind: KindOmitted, Shape: shape.Unknown, leaf: true},
	{Kind: KindVariableRef, Shape: shape.Unknown, leaf: true},
	{Kind: KindModule, Shape: shape.Unknown, leaf: true},
}

func registerSpec(s *Spec) {
	if err := s.validate(); err != nil {
		panic(err)
	}
	Registry.MustRegister(s.Kind, s)
}

func registerMethods(table []*method) {
	for _, m := range table {
		name := m.qualified()
		if _, dup := methods[name]; dup {
			panic(cerrors.DuplicateKind(name, methods[name].family, m.family))
		}
		methods[name] = m
		for _, s := range m.specs() {
			registerSpec(s)
			variants[name] = append(variants[name], s)
		}
	}
}

func init() {
	for _, s := range leafSpecs {
		registerSpec(s)
	}
	registerMethods(strMethods)
	registerMethods(bytesMethods)
	registerMethods(dictMethods)
	registerMethods(builtinMethods)
}

// Lookup returns the descriptor of kind.
func Lookup(kind kinds.Kind) (*Spec, error) {
	return Registry.Lookup(kind)
}

// Signature returns the roles after the receiver of a method such as
// "str.split", and how many of them are required.
func Signature(name string) (params []string, required int, ok bool) {
	m, ok := methods[name]
	if !ok {
		return nil, 0, false
	}
	return m.params(), len(m.required), true
}

// Methods lists the method names ("str.split") in lexical order.
func Methods() []string {
	out := make([]string, 0, len(methods))
	for name := range methods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Variants returns the arity variants of a method, shortest first.
func Variants(name string) []*Spec {
	return append([]*Spec(nil), variants[name]...)
}
