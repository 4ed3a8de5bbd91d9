package nodes

import (
	"strings"

	cerrors "github.com/serpent-lang/serpent/internal/errors"
	"github.com/serpent-lang/serpent/internal/kinds"
)

// Roles is the fixed, ordered tuple of child role names of a node class.
type Roles struct {
	names []string
}

func NewRoles(names ...string) Roles {
	return Roles{names: append([]string(nil), names...)}
}

func (r Roles) Len() int { return len(r.names) }

func (r Roles) Names() []string { return append([]string(nil), r.names...) }

// Name returns the role at position i.
func (r Roles) Name(i int) string { return r.names[i] }

// Index returns the position of role, or -1.
func (r Roles) Index(role string) int {
	for i, n := range r.names {
		if n == role {
			return i
		}
	}
	return -1
}

func (r Roles) String() string {
	return "(" + strings.Join(r.names, ",") + ")"
}

// holder owns the children of a node and keeps their parent links in
// sync. Every mutation bumps version so cached fold attempts go stale.
type holder struct {
	owner    Node
	kind     kinds.Kind
	roles    Roles
	children []Node
	version  int
}

func (h *holder) init(owner Node, kind kinds.Kind, roles Roles, children []Node) error {
	h.owner, h.kind, h.roles = owner, kind, roles
	if len(children) > roles.Len() {
		return cerrors.MissingChild(string(kind), "", "too many children")
	}
	for i := 0; i < roles.Len(); i++ {
		role := roles.Name(i)
		if i >= len(children) || children[i] == nil {
			return cerrors.MissingChild(string(kind), role, "no child given")
		}
		if children[i].Parent() != nil {
			return cerrors.MissingChild(string(kind), role, "child is owned by another node")
		}
		for _, prev := range children[:i] {
			if prev == children[i] {
				return cerrors.MissingChild(string(kind), role, "child given twice")
			}
		}
	}
	h.children = append([]Node(nil), children...)
	for _, c := range h.children {
		c.setParent(owner)
	}
	return nil
}

// Child returns the node in role, nil for an unknown role.
func (h *holder) Child(role string) Node {
	i := h.roles.Index(role)
	if i < 0 {
		return nil
	}
	return h.children[i]
}

// SetChild puts n into role and returns the detached previous child.
func (h *holder) SetChild(role string, n Node) (Node, error) {
	i := h.roles.Index(role)
	if i < 0 {
		return nil, cerrors.InvalidChild(string(h.kind), role, "unknown role")
	}
	if n == nil {
		return nil, cerrors.InvalidChild(string(h.kind), role, "nil child")
	}
	old := h.children[i]
	if old == n {
		return old, nil
	}
	if n.Parent() != nil {
		return nil, cerrors.InvalidChild(string(h.kind), role, "child is owned by another node")
	}
	old.setParent(nil)
	n.setParent(h.owner)
	h.children[i] = n
	h.version++
	return old, nil
}

func (h *holder) ChildNodes() []Node {
	return append([]Node(nil), h.children...)
}

func (h *holder) ReplaceChild(old, new Node) error {
	for i, c := range h.children {
		if c == old {
			_, err := h.SetChild(h.roles.Name(i), new)
			return err
		}
	}
	return cerrors.ChildNotFound(string(h.kind), old)
}

func (h *holder) allConstant() bool {
	for _, c := range h.children {
		if !c.IsCompileTimeConstant() {
			return false
		}
	}
	return true
}
