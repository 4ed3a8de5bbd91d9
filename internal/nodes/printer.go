package nodes

import (
	"fmt"
	"strings"

	"github.com/serpent-lang/serpent/internal/pyexc"
)

// Dump renders a tree one node per line, children indented under their
// parent with their role names.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n, "", 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, role string, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if role != "" {
		b.WriteString(role)
		b.WriteString(": ")
	}
	switch x := n.(type) {
	case *Constant:
		if x.IsOmitted() {
			b.WriteString("<omitted>\n")
			return
		}
		fmt.Fprintf(b, "%s %s\n", x.Kind(), x.value.String())
		return
	case *VariableRef:
		fmt.Fprintf(b, "%s %s\n", x.Kind(), x.name)
		return
	case *Module:
		fmt.Fprintf(b, "%s %s\n", x.Kind(), x.name)
		for _, s := range x.statements {
			dump(b, s, "", depth+1)
		}
		return
	case *Operation:
		fmt.Fprintf(b, "%s [%s]", x.Kind(), x.TypeShape())
		if x.MayRaiseException(pyexc.BaseException) {
			b.WriteString(" may-raise")
		}
		b.WriteString("\n")
		for i, c := range x.children {
			dump(b, c, x.spec.Roles.Name(i), depth+1)
		}
		return
	}
	fmt.Fprintf(b, "%s\n", n.Kind())
}
